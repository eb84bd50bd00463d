package lattice

import (
	"log/slog"
	"slices"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

// Node is one region of the ownership graph with its owner denormalized
// from the snapshot the graph was built against.
type Node struct {
	Region       ps2.RegionID
	Facility     ps2.FacilityID
	FacilityType ps2.FacilityTypeID
	Owner        ps2.FactionID
}

// Graph is the ownership graph derived from one (Zone, Snapshot) pair.
//
// A graph is never mutated after [BuildGraph] returns.
// When either input changes it must be discarded and rebuilt;
// readers of an old graph stay safe while a new one is being built.
type Graph struct {
	Nodes map[ps2.RegionID]Node
	Edges map[LinkKey]struct{}

	neighbors map[ps2.RegionID][]ps2.RegionID
}

// BuildGraph derives the ownership graph for a snapshot.
//
// Regions absent from the snapshot are owned by [ps2.None].
// Links whose endpoints cannot both be resolved to regions are dropped,
// matching how [NewZone] treats them; the graph resolves links itself
// so it stays correct even for zones carrying raw link lists.
func BuildGraph(zone *Zone, snap Snapshot) *Graph {
	g := &Graph{
		Nodes:     make(map[ps2.RegionID]Node, len(zone.Regions)),
		Edges:     make(map[LinkKey]struct{}, len(zone.links)),
		neighbors: make(map[ps2.RegionID][]ps2.RegionID, len(zone.Regions)),
	}
	for id, r := range zone.Regions {
		g.Nodes[id] = Node{
			Region:       id,
			Facility:     r.FacilityID,
			FacilityType: r.FacilityType,
			Owner:        snap.Owner(id),
		}
	}
	for _, l := range zone.links {
		ra, okA := zone.RegionForFacility(l.A)
		rb, okB := zone.RegionForFacility(l.B)
		if !okA || !okB {
			slog.Warn("graph: facility link references an unknown facility; edge dropped",
				"facility_a", l.A, "facility_b", l.B)
			continue
		}
		key := MakeLinkKey(ra, rb)
		if _, dup := g.Edges[key]; dup {
			continue
		}
		g.Edges[key] = struct{}{}
		g.neighbors[ra] = append(g.neighbors[ra], rb)
		g.neighbors[rb] = append(g.neighbors[rb], ra)
	}
	for _, n := range g.neighbors {
		slices.Sort(n)
	}
	return g
}

// Neighbors returns the regions sharing an edge with id,
// sorted by region ID.
// The result is owned by the graph and must not be modified.
func (g *Graph) Neighbors(id ps2.RegionID) []ps2.RegionID {
	return g.neighbors[id]
}

// Owner returns the owning faction for a region,
// or [ps2.None] for regions not in the graph.
func (g *Graph) Owner(id ps2.RegionID) ps2.FactionID {
	return g.Nodes[id].Owner
}
