package lattice_test

import (
	"slices"
	"testing"
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

const (
	None = ps2.None
	VS   = ps2.VS
	NC   = ps2.NC
	TR   = ps2.TR
)

// testZone builds a zone where region N has facility 100+N.
// warpgates marks which regions are warpgates;
// links are given as region ID pairs.
func testZone(t *testing.T, regions []ps2.RegionID, warpgates []ps2.RegionID, links [][2]ps2.RegionID) *lattice.Zone {
	t.Helper()
	rr := make([]lattice.Region, 0, len(regions))
	for _, id := range regions {
		ftype := ps2.SmallOutpost
		if slices.Contains(warpgates, id) {
			ftype = ps2.Warpgate
		}
		rr = append(rr, lattice.Region{
			ID:           id,
			FacilityID:   ps2.FacilityID(100 + id),
			FacilityType: ftype,
		})
	}
	ll := make([]lattice.Link, 0, len(links))
	for _, l := range links {
		ll = append(ll, lattice.Link{
			A: ps2.FacilityID(100 + l[0]),
			B: ps2.FacilityID(100 + l[1]),
		})
	}
	return lattice.NewZone(ps2.Hossin, "Hossin", 200, 8192, rr, ll)
}

func snapshot(owners map[ps2.RegionID]ps2.FactionID) lattice.Snapshot {
	return lattice.Snapshot{
		ZoneID:    ps2.Hossin,
		Owners:    owners,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewZoneAdjacency(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {2, 1}}, // 2-1 duplicates 1-2 reversed
	)

	tt := map[ps2.RegionID][]ps2.RegionID{
		1: {2},
		2: {1, 3},
		3: {2},
	}
	for id, expected := range tt {
		if got := z.Neighbors(id); !slices.Equal(got, expected) {
			t.Errorf("region %v: expected neighbors %v; got %v", id, expected, got)
		}
	}
	if n := len(z.Links()); n != 2 {
		t.Errorf("expected duplicate link to be dropped; got %d links", n)
	}
}

func TestNewZoneDropsDanglingLinks(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 99}}, // facility 199 doesn't exist
	)
	if n := len(z.Links()); n != 1 {
		t.Fatalf("expected the dangling link to be dropped; got %d links", n)
	}
	if got := z.Neighbors(2); !slices.Equal(got, []ps2.RegionID{1}) {
		t.Fatalf("expected region 2 to only neighbor region 1; got %v", got)
	}
}

func TestMakeLinkKeyCanonical(t *testing.T) {
	if lattice.MakeLinkKey(5, 3) != lattice.MakeLinkKey(3, 5) {
		t.Fatal("expected both orderings of a region pair to produce the same key")
	}
}

func TestRegionsByType(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{3, 1, 2},
		[]ps2.RegionID{3, 1},
		nil,
	)
	if got := z.Warpgates(); !slices.Equal(got, []ps2.RegionID{1, 3}) {
		t.Fatalf("expected sorted warpgates [1 3]; got %v", got)
	}
	if got := z.RegionsByType(ps2.SmallOutpost); !slices.Equal(got, []ps2.RegionID{2}) {
		t.Fatalf("expected [2]; got %v", got)
	}
}

func TestSnapshotDefaultsToNone(t *testing.T) {
	s := snapshot(map[ps2.RegionID]ps2.FactionID{1: VS})
	if got := s.Owner(42); got != None {
		t.Fatalf("expected None for a region missing from the snapshot; got %v", got)
	}
}

func TestBuildGraphDenormalizesOwners(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		[]ps2.RegionID{1},
		[][2]ps2.RegionID{{1, 2}, {2, 3}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{1: VS, 2: TR}))

	if got := g.Owner(1); got != VS {
		t.Errorf("expected VS; got %v", got)
	}
	if got := g.Owner(2); got != TR {
		t.Errorf("expected TR; got %v", got)
	}
	if got := g.Owner(3); got != None {
		t.Errorf("expected None for region absent from snapshot; got %v", got)
	}
	if _, ok := g.Edges[lattice.MakeLinkKey(2, 1)]; !ok {
		t.Error("expected edge between regions 1 and 2")
	}
	if !slices.Equal(g.Neighbors(2), []ps2.RegionID{1, 3}) {
		t.Errorf("expected neighbors [1 3]; got %v", g.Neighbors(2))
	}
}
