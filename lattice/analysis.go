package lattice

import (
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

// Analysis bundles everything derived from one ownership snapshot.
// It is freshly allocated by [Analyze] and safe for concurrent reads;
// when a new snapshot arrives, run Analyze again and swap the result.
type Analysis struct {
	Zone     *Zone
	Graph    *Graph
	Captured time.Time

	Regions map[ps2.RegionID]RegionState
	Links   map[LinkKey]LinkState

	Warpgate  map[ps2.RegionID]ReachResult
	Frontline map[ps2.RegionID]ReachResult
}

// Analyze runs the full territory analysis pipeline for one snapshot:
// graph construction, connectivity queries, then classification.
func Analyze(zone *Zone, snap Snapshot, opts Options) *Analysis {
	g := BuildGraph(zone, snap)
	dist := Distances{
		Warpgate:  WarpgateDistances(g),
		Frontline: FrontlineDistances(g),
	}
	return &Analysis{
		Zone:      zone,
		Graph:     g,
		Captured:  snap.Timestamp,
		Regions:   ClassifyRegions(zone, g, dist, opts),
		Links:     ClassifyLinks(g),
		Warpgate:  dist.Warpgate,
		Frontline: dist.Frontline,
	}
}
