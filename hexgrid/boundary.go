package hexgrid

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Travis-Britz/structures/stack"
)

var (
	// ErrDisjointBoundary is returned when the boundary edges of a
	// cluster do not form a single continuous path.
	// This happens when the cluster is split into disconnected pieces.
	ErrDisjointBoundary = errors.New("hexgrid: boundary edges are not continuous")

	// ErrOpenBoundary is returned when the boundary path never returns
	// to its starting corner.
	ErrOpenBoundary = errors.New("hexgrid: boundary path does not close")
)

// edge is an undirected boundary segment between two corners.
// a is always the lexicographically smaller corner so that the two
// directions of the same segment collapse to one key.
type edge struct {
	a, b vertexKey
}

func canonicalEdge(p, q vertexKey) edge {
	if q.less(p) {
		p, q = q, p
	}
	return edge{a: p, b: q}
}

func (e edge) other(v vertexKey) vertexKey {
	if e.a == v {
		return e.b
	}
	return e.a
}

// orientedEdge is a boundary segment with a direction of travel.
type orientedEdge struct {
	from, to vertexKey
}

// Boundary computes the outline polygon for a cluster of tiles.
//
// Every tile contributes six edges; an edge shared by two tiles in the
// cluster is interior and is discarded, and the edges that occur
// exactly once form the outline.
// The outline is chained into a single cycle and returned as an
// ordered list of world-space corners.
// The final point does not repeat the start;
// the polygon is self-closing.
//
// Clusters whose outline is not one closed cycle
// (disconnected tiles, or tiles only touching at a corner in a way
// that splits the outline) return [ErrDisjointBoundary] or
// [ErrOpenBoundary]. Callers rendering many regions should skip the
// offending region rather than abort the whole map.
func Boundary(cells []Hex, inner float64) ([]Point, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	counts := make(map[edge]int, len(cells)*6)
	corners := make(map[vertexKey]Point, len(cells)*2)
	for _, cell := range cells {
		v := Vertices(cell, inner)
		for i := range v {
			p, q := v[i], v[(i+1)%6]
			kp, kq := quantize(p, inner), quantize(q, inner)
			corners[kp] = p
			counts[canonicalEdge(kp, kq)]++
		}
	}

	outline := make([]edge, 0, len(counts))
	for e, n := range counts {
		if n == 1 {
			outline = append(outline, e)
		}
	}

	cycle, err := orderEdges(outline)
	if err != nil {
		return nil, err
	}

	path := make([]Point, 0, len(cycle))
	for _, e := range cycle {
		path = append(path, corners[e.from])
	}
	return path, nil
}

// orderEdges chains undirected boundary edges into one closed cycle.
//
// Starting from the lexicographically smallest edge,
// the cycle repeatedly extends by an unused edge touching the open
// endpoint. The result is deterministic for any permutation of edges.
func orderEdges(edges []edge) ([]orientedEdge, error) {
	if len(edges) == 0 {
		return nil, nil
	}

	slices.SortFunc(edges, func(p, q edge) int {
		switch {
		case p.a.less(q.a):
			return -1
		case q.a.less(p.a):
			return 1
		case p.b.less(q.b):
			return -1
		case q.b.less(p.b):
			return 1
		default:
			return 0
		}
	})

	byCorner := make(map[vertexKey][]edge, len(edges))
	for _, e := range edges {
		byCorner[e.a] = append(byCorner[e.a], e)
		byCorner[e.b] = append(byCorner[e.b], e)
	}

	start := edges[0]
	cycle := []orientedEdge{{from: start.a, to: start.b}}
	used := map[edge]bool{start: true}

	for len(cycle) < len(edges) {
		open := cycle[len(cycle)-1].to
		extended := false
		for _, e := range byCorner[open] {
			if used[e] {
				continue
			}
			used[e] = true
			cycle = append(cycle, orientedEdge{from: open, to: e.other(open)})
			extended = true
			break
		}
		if !extended {
			return nil, fmt.Errorf("%w: no edge continues from corner %v (%d of %d edges placed)",
				ErrDisjointBoundary, open, len(cycle), len(edges))
		}
	}

	if cycle[len(cycle)-1].to != cycle[0].from {
		return nil, fmt.Errorf("%w: path ends at %v instead of %v",
			ErrOpenBoundary, cycle[len(cycle)-1].to, cycle[0].from)
	}
	return cycle, nil
}

// Contiguous reports whether the tiles form one connected cluster.
// Duplicated tile positions are counted once.
//
// Regions from the game data are expected to be contiguous;
// a false result usually means the upstream data is malformed and
// [Boundary] would fail for the same cluster.
func Contiguous(cells []Hex) bool {
	if len(cells) == 0 {
		return true
	}
	in := make(map[Hex]bool, len(cells))
	for _, c := range cells {
		in[c] = true
	}

	frontier := &stack.Stack[Hex]{}
	visited := map[Hex]bool{cells[0]: true}
	for current, more := cells[0], true; more; current, more = frontier.Pop() {
		for _, next := range current.Neighbors() {
			if in[next] && !visited[next] {
				visited[next] = true
				frontier.Push(next)
			}
		}
	}
	return len(visited) == len(in)
}
