package lattice

import (
	"slices"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
)

// Seed pairs a starting region with the argument the visitor receives
// when the region is dequeued.
type Seed[A any] struct {
	Region ps2.RegionID
	Args   A
}

// Visitor inspects one dequeued node during a [Search].
// It returns the result recorded for the node and any follow-up seeds
// to enqueue. Seeds for already-visited or unknown regions are
// discarded by the traversal, so visitors are free to return every
// neighbor they care about.
//
// results holds the results recorded so far and visited the regions
// enqueued so far; both are read-only views for the visitor.
type Visitor[A, R any] func(node Node, args A, g *Graph, results map[ps2.RegionID]R, visited map[ps2.RegionID]bool) (R, []Seed[A])

// Search runs a multi-source breadth-first traversal over the graph.
//
// Regions are visited in FIFO order and at most once.
// A region counts as visited the moment it is enqueued,
// not when it is dequeued,
// so when two branches reach a region in the same generation the one
// enqueued first wins deterministically.
func Search[A, R any](g *Graph, seeds []Seed[A], visit Visitor[A, R]) map[ps2.RegionID]R {
	results := make(map[ps2.RegionID]R)
	visited := make(map[ps2.RegionID]bool, len(g.Nodes))

	queue := make([]Seed[A], 0, len(g.Nodes))
	for _, s := range seeds {
		if visited[s.Region] {
			continue
		}
		if _, ok := g.Nodes[s.Region]; !ok {
			continue
		}
		visited[s.Region] = true
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		result, next := visit(g.Nodes[current.Region], current.Args, g, results, visited)
		results[current.Region] = result

		for _, s := range next {
			if visited[s.Region] {
				continue
			}
			if _, ok := g.Nodes[s.Region]; !ok {
				continue
			}
			visited[s.Region] = true
			queue = append(queue, s)
		}
	}
	return results
}

// ReachResult records how a region was reached by a friendly-territory
// traversal: the hop distance from the nearest seed and the discovery
// path, seed first.
type ReachResult struct {
	Distance int
	Path     []ps2.RegionID
}

// friendlyReach searches outward from the start regions,
// expanding only into neighbors owned by the faction of the region
// currently being visited.
// Comparing against the visited region rather than the original seed
// lets the traversal stop naturally at any faction boundary.
func friendlyReach(g *Graph, starts []ps2.RegionID) map[ps2.RegionID]ReachResult {
	seeds := make([]Seed[ReachResult], 0, len(starts))
	for _, id := range starts {
		seeds = append(seeds, Seed[ReachResult]{
			Region: id,
			Args:   ReachResult{Distance: 0, Path: []ps2.RegionID{id}},
		})
	}
	return Search(g, seeds, func(node Node, args ReachResult, g *Graph, _ map[ps2.RegionID]ReachResult, _ map[ps2.RegionID]bool) (ReachResult, []Seed[ReachResult]) {
		var next []Seed[ReachResult]
		for _, nb := range g.Neighbors(node.Region) {
			if g.Owner(nb) != node.Owner {
				continue
			}
			path := append(slices.Clone(args.Path), nb)
			next = append(next, Seed[ReachResult]{
				Region: nb,
				Args:   ReachResult{Distance: args.Distance + 1, Path: path},
			})
		}
		return args, next
	})
}

// WarpgateDistances returns, for every region reachable from a warpgate
// without crossing hostile territory, its hop distance and path to the
// nearest such warpgate.
//
// Regions cut off from their warpgate have no entry at all.
// Absence is the signal: a missing entry is a materially different
// state from any numeric distance and callers must not conflate the
// two.
func WarpgateDistances(g *Graph) map[ps2.RegionID]ReachResult {
	var gates []ps2.RegionID
	for id, n := range g.Nodes {
		if n.FacilityType == ps2.Warpgate {
			gates = append(gates, id)
		}
	}
	slices.Sort(gates)
	return friendlyReach(g, gates)
}

// Frontline returns every region that is on a frontline:
// an endpoint of a lattice link whose two sides are owned by two
// different non-neutral factions.
// Both endpoints of such a link are on the frontline of their
// respective factions. The result is sorted by region ID.
func Frontline(g *Graph) []ps2.RegionID {
	set := make(map[ps2.RegionID]bool)
	for key := range g.Edges {
		a, b := g.Owner(key.A), g.Owner(key.B)
		if a == ps2.None || b == ps2.None || a == b {
			continue
		}
		set[key.A] = true
		set[key.B] = true
	}
	front := make([]ps2.RegionID, 0, len(set))
	for id := range set {
		front = append(front, id)
	}
	slices.Sort(front)
	return front
}

// FrontlineDistances returns each region's hop distance to the nearest
// same-faction frontline region, traversing friendly territory only.
// Frontline regions themselves have distance 0.
// Regions with no friendly route to their faction's frontline
// (including all neutral regions) have no entry.
func FrontlineDistances(g *Graph) map[ps2.RegionID]ReachResult {
	return friendlyReach(g, Frontline(g))
}
