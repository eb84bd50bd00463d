package lattice_test

import (
	"slices"
	"testing"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

func TestWarpgateDistancesStopAtHostileTerritory(t *testing.T) {
	// 1(WG,VS) - 2(VS) - 3(VS) - 4(TR)
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		[]ps2.RegionID{1},
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {3, 4}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: VS, 3: VS, 4: TR,
	}))

	dist := lattice.WarpgateDistances(g)

	expected := map[ps2.RegionID]int{1: 0, 2: 1, 3: 2}
	for id, d := range expected {
		r, ok := dist[id]
		if !ok {
			t.Errorf("region %v: expected a distance entry", id)
			continue
		}
		if r.Distance != d {
			t.Errorf("region %v: expected distance %d; got %d", id, d, r.Distance)
		}
	}

	// region 4 is reachable only through hostile territory:
	// it must have no entry at all, not a sentinel distance
	if r, ok := dist[4]; ok {
		t.Errorf("region 4 is cut off from every warpgate; expected no entry, got %+v", r)
	}
}

func TestWarpgateDistancesRecordPaths(t *testing.T) {
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		[]ps2.RegionID{1},
		[][2]ps2.RegionID{{1, 2}, {2, 3}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: NC, 2: NC, 3: NC,
	}))

	dist := lattice.WarpgateDistances(g)
	if got := dist[3].Path; !slices.Equal(got, []ps2.RegionID{1, 2, 3}) {
		t.Fatalf("expected discovery path [1 2 3]; got %v", got)
	}
}

func TestWarpgateDistancesMultipleSeeds(t *testing.T) {
	// two VS warpgates (1 and 5) both adjacent to region 3;
	// the tie breaks toward the seed enqueued first (sorted order)
	z := testZone(t,
		[]ps2.RegionID{1, 3, 5},
		[]ps2.RegionID{1, 5},
		[][2]ps2.RegionID{{1, 3}, {5, 3}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 3: VS, 5: VS,
	}))

	dist := lattice.WarpgateDistances(g)
	r, ok := dist[3]
	if !ok {
		t.Fatal("expected region 3 to be reached")
	}
	if r.Distance != 1 {
		t.Fatalf("expected distance 1; got %d", r.Distance)
	}
	if !slices.Equal(r.Path, []ps2.RegionID{1, 3}) {
		t.Fatalf("expected the branch from warpgate 1 to win the tie; got path %v", r.Path)
	}
}

func TestWarpgatesOfDifferentFactionsSearchIndependently(t *testing.T) {
	// 1(WG,VS) - 2(VS)   3(TR) - 4(WG,TR)
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		[]ps2.RegionID{1, 4},
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {3, 4}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: VS, 3: TR, 4: TR,
	}))

	dist := lattice.WarpgateDistances(g)
	for id, expected := range map[ps2.RegionID]int{1: 0, 2: 1, 3: 1, 4: 0} {
		if r := dist[id]; r.Distance != expected {
			t.Errorf("region %v: expected distance %d; got %d", id, expected, r.Distance)
		}
	}
}

func TestFrontline(t *testing.T) {
	// 1(VS) - 2(VS) - 3(TR); 4(None) - 3
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3, 4},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 3}, {3, 4}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		1: VS, 2: VS, 3: TR,
	}))

	// only the 2-3 edge has two distinct non-neutral owners
	if got := lattice.Frontline(g); !slices.Equal(got, []ps2.RegionID{2, 3}) {
		t.Fatalf("expected frontline [2 3]; got %v", got)
	}
}

func TestFrontlineDistances(t *testing.T) {
	// 0(VS) - 1(VS) - 2(VS) - 3(TR)
	z := testZone(t,
		[]ps2.RegionID{10, 11, 12, 13},
		nil,
		[][2]ps2.RegionID{{10, 11}, {11, 12}, {12, 13}},
	)
	g := lattice.BuildGraph(z, snapshot(map[ps2.RegionID]ps2.FactionID{
		10: VS, 11: VS, 12: VS, 13: TR,
	}))

	dist := lattice.FrontlineDistances(g)

	tt := map[ps2.RegionID]int{
		12: 0, // directly adjacent to enemy territory
		13: 0, // the enemy side of the same edge
		11: 1,
		10: 2, // two hops away through friendly territory
	}
	for id, expected := range tt {
		r, ok := dist[id]
		if !ok {
			t.Errorf("region %v: expected a frontline distance", id)
			continue
		}
		if r.Distance != expected {
			t.Errorf("region %v: expected distance %d; got %d", id, expected, r.Distance)
		}
	}
}

func TestSearchGenericVisitor(t *testing.T) {
	// count edges crossed regardless of ownership to exercise the
	// primitive with a visitor unrelated to the faction queries
	z := testZone(t,
		[]ps2.RegionID{1, 2, 3},
		nil,
		[][2]ps2.RegionID{{1, 2}, {2, 3}},
	)
	g := lattice.BuildGraph(z, snapshot(nil))

	seeds := []lattice.Seed[int]{{Region: 1, Args: 0}}
	got := lattice.Search(g, seeds, func(node lattice.Node, depth int, g *lattice.Graph, _ map[ps2.RegionID]int, _ map[ps2.RegionID]bool) (int, []lattice.Seed[int]) {
		var next []lattice.Seed[int]
		for _, nb := range g.Neighbors(node.Region) {
			next = append(next, lattice.Seed[int]{Region: nb, Args: depth + 1})
		}
		return depth, next
	})

	for id, expected := range map[ps2.RegionID]int{1: 0, 2: 1, 3: 2} {
		if got[id] != expected {
			t.Errorf("region %v: expected depth %d; got %d", id, expected, got[id])
		}
	}
}
