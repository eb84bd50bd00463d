package lattice_test

import (
	"testing"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

func TestClassifyRegionsCapturableAndStealable(t *testing.T) {
	// hub region 1 linked to 2, 3, 4
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		nil,
		[][2]ps2.RegionID{{1, 2}, {1, 3}, {1, 4}},
	)

	tt := map[string]struct {
		Owners     map[ps2.RegionID]ps2.FactionID
		Capturable bool
		Stealable  bool
	}{
		"one hostile neighbor": {
			Owners:     map[ps2.RegionID]ps2.FactionID{1: VS, 2: NC, 3: VS, 4: VS},
			Capturable: true,
			Stealable:  false,
		},
		"two distinct hostile neighbors": {
			Owners:     map[ps2.RegionID]ps2.FactionID{1: VS, 2: NC, 3: TR, 4: VS},
			Capturable: true,
			Stealable:  true,
		},
		"same hostile faction twice": {
			Owners:     map[ps2.RegionID]ps2.FactionID{1: VS, 2: NC, 3: NC, 4: VS},
			Capturable: true,
			Stealable:  false,
		},
		"interior region": {
			Owners:     map[ps2.RegionID]ps2.FactionID{1: VS, 2: VS, 3: VS, 4: VS},
			Capturable: false,
			Stealable:  false,
		},
		"neutral region with hostile neighbors": {
			Owners:     map[ps2.RegionID]ps2.FactionID{2: NC, 3: TR, 4: VS},
			Capturable: false,
			Stealable:  false,
		},
		"neutral neighbors do not count as hostile": {
			Owners:     map[ps2.RegionID]ps2.FactionID{1: VS},
			Capturable: false,
			Stealable:  false,
		},
	}

	for name, tc := range tt {
		g := lattice.BuildGraph(z, snapshot(tc.Owners))
		states := lattice.ClassifyRegions(z, g, lattice.Distances{}, lattice.Options{})
		st := states[1]
		if st.Capturable != tc.Capturable {
			t.Errorf("%s: expected capturable=%v; got %v", name, tc.Capturable, st.Capturable)
		}
		if st.Stealable != tc.Stealable {
			t.Errorf("%s: expected stealable=%v; got %v", name, tc.Stealable, st.Stealable)
		}
	}
}

func TestClassifyRegionsRelevance(t *testing.T) {
	// 1(VS) - 2(NC) - 3(NC), 3 - 4(TR)
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {3, 4}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: NC, 3: NC, 4: TR,
	}))

	tt := map[string]struct {
		Viewer   ps2.FactionID
		Expected map[ps2.RegionID]bool
	}{
		"no faction selected: every capturable region is relevant": {
			Viewer:   None,
			Expected: map[ps2.RegionID]bool{1: true, 2: true, 3: true, 4: true},
		},
		"VS viewer: own threatened territory and attackable enemies": {
			Viewer: VS,
			// 1 is VS and under threat; 2 is enemy territory bordering VS;
			// 3 and 4 don't touch VS at all
			Expected: map[ps2.RegionID]bool{1: true, 2: true, 3: false, 4: false},
		},
		"TR viewer": {
			Viewer:   TR,
			Expected: map[ps2.RegionID]bool{1: false, 2: false, 3: true, 4: true},
		},
	}

	for name, tc := range tt {
		states := lattice.ClassifyRegions(z, g, lattice.Distances{}, lattice.Options{Viewer: tc.Viewer})
		for id, expected := range tc.Expected {
			if got := states[id].Relevant; got != expected {
				t.Errorf("%s: region %v: expected relevant=%v; got %v", name, id, expected, got)
			}
		}
	}
}

func TestClassifyRegionsNeutralNeverRelevant(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2},
		nil,
		[][2]ps2.RegionID{{1, 2}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{2: VS}))
	states := lattice.ClassifyRegions(z, g, lattice.Distances{}, lattice.Options{})
	if states[1].Relevant {
		t.Fatal("neutral region must never be relevant")
	}
}

func TestClassifyRegionsDistanceEnrichment(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		[]ps2.RegionID{1},
		[][2]ps2.RegionID{{1, 2}, {2, 3}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: VS, 3: TR,
	}))
	dist := lattice.Distances{
		Warpgate:  lattice.WarpgateDistances(g),
		Frontline: lattice.FrontlineDistances(g),
	}
	states := lattice.ClassifyRegions(z, g, dist, lattice.Options{})

	if st := states[2]; !st.Connected || st.WarpgateDistance != 1 {
		t.Errorf("region 2: expected connected at distance 1; got %+v", st)
	}
	// region 3 is TR with no TR warpgate anywhere: cut off
	if st := states[3]; st.Connected {
		t.Errorf("region 3: expected cut off; got %+v", st)
	}
	if st := states[2]; !st.HasFrontline || st.FrontlineDistance != 0 {
		t.Errorf("region 2: expected frontline distance 0; got %+v", st)
	}
}

func TestClassifyLinks(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {3, 4}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: VS, 3: TR,
	}))

	links := lattice.ClassifyLinks(g)

	tt := map[lattice.LinkKey]lattice.LinkStatus{
		lattice.MakeLinkKey(1, 2): lattice.LinkSafe,
		lattice.MakeLinkKey(2, 3): lattice.LinkContested,
		lattice.MakeLinkKey(3, 4): lattice.LinkInactive,
	}
	for key, expected := range tt {
		st, ok := links[key]
		if !ok {
			t.Errorf("link %v: expected a state entry", key)
			continue
		}
		if st.Status != expected {
			t.Errorf("link %v: expected %s; got %s", key, expected, st.Status)
		}
	}
}

func TestAnalyze(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		[]ps2.RegionID{1},
		[][2]ps2.RegionID{{1, 2}, {2, 3}},
	)
	snap := snapshot(map[ps2.RegionID]ps2.FactionID{1: VS, 2: VS, 3: NC})

	a := lattice.Analyze(z, snap, lattice.Options{Viewer: VS})

	if len(a.Regions) != 3 {
		t.Fatalf("expected 3 region states; got %d", len(a.Regions))
	}
	if len(a.Links) != 2 {
		t.Fatalf("expected 2 link states; got %d", len(a.Links))
	}
	if !a.Captured.Equal(snap.Timestamp) {
		t.Fatalf("expected capture time %v; got %v", snap.Timestamp, a.Captured)
	}
	if !a.Regions[2].Capturable {
		t.Fatal("expected region 2 to be capturable")
	}
}
