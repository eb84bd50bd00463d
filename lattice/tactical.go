package lattice

import (
	"fmt"
	"slices"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

// RegionState is the tactical classification of one region.
// States are recomputed from scratch on every analysis pass and carry
// no identity between passes.
type RegionState struct {
	Region ps2.RegionID
	Owner  ps2.FactionID

	// Adjacent is the distinct set of factions owning neighboring
	// regions, sorted, including ps2.None when a neighbor is unowned.
	Adjacent []ps2.FactionID

	// Capturable: owned by a faction and bordered by a different one.
	Capturable bool

	// Stealable: capturable with at least two distinct hostile factions
	// adjacent, so a third party could snipe the capture.
	Stealable bool

	// Relevant reports whether the region matters to the viewer;
	// see [Options.Viewer].
	Relevant bool

	// Connected reports whether the region can reach a warpgate through
	// friendly territory. WarpgateDistance is meaningless when false.
	Connected        bool
	WarpgateDistance int

	// HasFrontline reports whether the region has a friendly route to
	// its faction's frontline. FrontlineDistance is meaningless when
	// false.
	HasFrontline      bool
	FrontlineDistance int
}

// LinkStatus classifies a lattice link by its endpoint ownership.
type LinkStatus uint8

const (
	// LinkInactive links touch at least one unowned region.
	LinkInactive LinkStatus = iota
	// LinkSafe links connect two regions held by the same faction.
	LinkSafe
	// LinkContested links connect two different factions;
	// fights happen here.
	LinkContested
)

func (s LinkStatus) String() string {
	switch s {
	case LinkInactive:
		return "inactive"
	case LinkSafe:
		return "safe"
	case LinkContested:
		return "contested"
	default:
		return fmt.Sprintf("invalid_status(%d)", uint8(s))
	}
}

// LinkState is the tactical classification of one lattice link.
type LinkState struct {
	Key    LinkKey
	OwnerA ps2.FactionID
	OwnerB ps2.FactionID
	Status LinkStatus
}

// Options carries the viewer context used for relevance classification.
type Options struct {
	// Viewer is the faction the viewer plays,
	// or ps2.None when no faction is selected.
	Viewer ps2.FactionID
}

// Distances holds the optional connectivity enrichments for
// [ClassifyRegions]. Either map may be nil.
type Distances struct {
	Warpgate  map[ps2.RegionID]ReachResult
	Frontline map[ps2.RegionID]ReachResult
}

// ClassifyRegions derives the tactical state of every region.
//
// Adjacency comes from the zone topology rather than the graph:
// which regions border each other is static and independent of who
// currently owns them.
func ClassifyRegions(zone *Zone, g *Graph, dist Distances, opts Options) map[ps2.RegionID]RegionState {
	out := make(map[ps2.RegionID]RegionState, len(zone.Regions))
	for id := range zone.Regions {
		owner := g.Owner(id)

		var adjacent []ps2.FactionID
		for _, nb := range zone.Neighbors(id) {
			f := g.Owner(nb)
			if !slices.Contains(adjacent, f) {
				adjacent = append(adjacent, f)
			}
		}
		slices.Sort(adjacent)

		hostile := 0
		for _, f := range adjacent {
			if f != ps2.None && f != owner {
				hostile++
			}
		}

		capturable := owner != ps2.None && hostile >= 1
		stealable := capturable && hostile >= 2

		var relevant bool
		switch {
		case owner == ps2.None:
			// neutral regions are never relevant
		case opts.Viewer == ps2.None:
			// nothing selected: anything that can change hands matters
			relevant = capturable
		case owner == opts.Viewer:
			// the viewer's own territory matters when under threat
			relevant = capturable
		default:
			// enemy territory matters when the viewer borders it
			relevant = slices.Contains(adjacent, opts.Viewer)
		}

		st := RegionState{
			Region:     id,
			Owner:      owner,
			Adjacent:   adjacent,
			Capturable: capturable,
			Stealable:  stealable,
			Relevant:   relevant,
		}
		if r, ok := dist.Warpgate[id]; ok {
			st.Connected = true
			st.WarpgateDistance = r.Distance
		}
		if r, ok := dist.Frontline[id]; ok {
			st.HasFrontline = true
			st.FrontlineDistance = r.Distance
		}
		out[id] = st
	}
	return out
}

// ClassifyLinks derives the tactical state of every lattice link.
func ClassifyLinks(g *Graph) map[LinkKey]LinkState {
	out := make(map[LinkKey]LinkState, len(g.Edges))
	for key := range g.Edges {
		a, b := g.Owner(key.A), g.Owner(key.B)
		st := LinkState{Key: key, OwnerA: a, OwnerB: b}
		switch {
		case a == ps2.None || b == ps2.None:
			st.Status = LinkInactive
		case a == b:
			st.Status = LinkSafe
		default:
			st.Status = LinkContested
		}
		out[key] = st
	}
	return out
}
