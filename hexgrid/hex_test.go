package hexgrid_test

import (
	"math"
	"testing"

	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
)

func TestCubeRoundTrip(t *testing.T) {
	for x := -8; x <= 8; x++ {
		for y := -8; y <= 8; y++ {
			h := hexgrid.Hex{X: x, Y: y}
			c := h.Cube()
			if c.Q+c.R+c.S != 0 {
				t.Errorf("%v: cube %v does not satisfy q+r+s == 0", h, c)
			}
			if got := c.Hex(); got != h {
				t.Errorf("round trip failed: %v -> %v -> %v", h, c, got)
			}
		}
	}
}

func TestCenterRowOffset(t *testing.T) {
	const inner = 200.0

	tt := map[string]struct {
		Hex       hexgrid.Hex
		ExpectedX float64
	}{
		"origin":            {hexgrid.Hex{X: 0, Y: 0}, 0},
		"even row":          {hexgrid.Hex{X: 2, Y: 2}, 600},
		"odd row":           {hexgrid.Hex{X: 1, Y: 1}, 300},
		"negative even row": {hexgrid.Hex{X: 0, Y: -2}, -200},
		"negative odd row":  {hexgrid.Hex{X: 0, Y: -1}, -100},
		"negative odd row 2": {hexgrid.Hex{X: -1, Y: -3}, -500},
	}

	for name, tc := range tt {
		got := hexgrid.Center(tc.Hex, inner)
		if math.Abs(got.X-tc.ExpectedX) > 1e-9 {
			t.Errorf("%s: expected center x %v for %v; got %v", name, tc.ExpectedX, tc.Hex, got.X)
		}
		// the x offset must agree with the closed form inner*(x + y/2)
		// for every row parity, including negative rows
		want := inner * (float64(tc.Hex.X) + float64(tc.Hex.Y)/2)
		if math.Abs(got.X-want) > 1e-9 {
			t.Errorf("%s: parity branch diverged from closed form: got %v, want %v", name, got.X, want)
		}
	}
}

func TestVerticesSharedBetweenNeighbors(t *testing.T) {
	const inner = 115.0
	// the right edge of a tile and the left edge of its right neighbor
	// are the same segment in world space
	a := hexgrid.Vertices(hexgrid.Hex{X: 0, Y: 0}, inner)
	b := hexgrid.Vertices(hexgrid.Hex{X: 1, Y: 0}, inner)

	// corners 4,5 of a tile lie on its right face; corners 1,2 on the left
	pairs := [][2]hexgrid.Point{
		{a[5], b[1]},
		{a[4], b[2]},
	}
	for i, p := range pairs {
		if math.Abs(p[0].X-p[1].X) > 1e-6 || math.Abs(p[0].Y-p[1].Y) > 1e-6 {
			t.Errorf("pair %d: shared corner mismatch: %v vs %v", i, p[0], p[1])
		}
	}
}

func TestContiguous(t *testing.T) {
	tt := map[string]struct {
		Cells    []hexgrid.Hex
		Expected bool
	}{
		"empty":        {nil, true},
		"single":       {[]hexgrid.Hex{{0, 0}}, true},
		"adjacent":     {[]hexgrid.Hex{{0, 0}, {1, 0}}, true},
		"diagonal gap": {[]hexgrid.Hex{{0, 0}, {2, 0}}, false},
		"ring":         {[]hexgrid.Hex{{0, 0}, {1, 0}, {0, 1}, {1, -1}}, true},
		"duplicate":    {[]hexgrid.Hex{{0, 0}, {0, 0}, {1, 0}}, true},
	}
	for name, tc := range tt {
		if got := hexgrid.Contiguous(tc.Cells); got != tc.Expected {
			t.Errorf("%s: expected %v; got %v", name, tc.Expected, got)
		}
	}
}
