// Package hexgrid converts the game's hex tile coordinates into
// world-space geometry and boundary polygons for map regions.
//
// Tile X,Y use the planetside hex grid returned by the census /map_hex
// endpoint: point-up hexagons where moving up a row shifts the axis.
// See https://www.redblobgames.com/grids/hexagons/ for the general math.
package hexgrid

import (
	"math"
)

// Hex is the position of a single map hex tile in the game's grid.
type Hex struct {
	X, Y int
}

// Cube is the cube-coordinate form of a tile position.
// A valid cube position always satisfies Q+R+S == 0.
type Cube struct {
	Q, R, S int
}

// Cube converts the tile position to cube coordinates.
// The game's axes are rotated relative to the textbook layout,
// which is where the sign flips come from.
func (h Hex) Cube() Cube {
	return Cube{Q: h.X + h.Y, R: -h.Y, S: -h.X}
}

// Hex converts back to the game's tile coordinates.
// It is the inverse of [Hex.Cube].
func (c Cube) Hex() Hex {
	return Hex{X: -c.S, Y: -c.R}
}

// Neighbors returns the six adjacent tile positions.
func (h Hex) Neighbors() [6]Hex {
	return [6]Hex{
		{h.X - 1, h.Y},     // left
		{h.X + 1, h.Y},     // right
		{h.X - 1, h.Y + 1}, // up and left
		{h.X, h.Y + 1},     // up and right
		{h.X, h.Y - 1},     // down and left
		{h.X + 1, h.Y - 1}, // down and right
	}
}

// Point is a world-space coordinate.
// 0,0 is the center of the continent, matching the census coordinate system.
type Point struct {
	X, Y float64
}

// OuterRadius converts the hex size given by census
// (the width, or diameter of the inner circle of a point-up hex)
// to the radius of the outer circle:
// the distance from the center to a corner.
func OuterRadius(inner float64) float64 {
	return inner / math.Sqrt(3)
}

// Center returns the world-space center of a tile.
//
// Rows are offset by half a tile width,
// so even and odd Y take different forms.
// The odd branch uses (Y-1)/2 rather than Y/2 so that integer division
// stays exact for negative rows.
func Center(h Hex, inner float64) Point {
	outer := OuterRadius(inner)
	var x float64
	if h.Y%2 == 0 {
		x = inner * (float64(h.X) + float64(h.Y/2))
	} else {
		x = inner*(float64(h.X)+float64((h.Y-1)/2)) + inner/2
	}
	y := -(1.5*float64(h.Y) + 1) * outer
	return Point{X: x, Y: y}
}

// Vertices returns the six corners of a tile.
// Corner 0 is the top point and the rest follow counter-clockwise,
// with Y growing downward to match graphics coordinates.
func Vertices(h Hex, inner float64) [6]Point {
	c := Center(h, inner)
	outer := OuterRadius(inner)
	var v [6]Point
	for i := range v {
		rad := (math.Pi / 180) * float64(60*i+90)
		v[i] = Point{
			X: c.X + outer*math.Cos(rad),
			Y: c.Y - outer*math.Sin(rad),
		}
	}
	return v
}

// snapDivisor controls the snapping grid used to identify corners.
// Corners are quantized to steps of inner/snapDivisor,
// which is small enough that distinct corners never collide
// (the closest pair is half an outer radius apart)
// and large enough to absorb floating point drift between the three
// tiles that share a corner.
const snapDivisor = 1024

// vertexKey is a corner snapped to the quantization grid.
// Corners computed from different tiles compare equal here.
type vertexKey struct {
	x, y int64
}

func quantize(p Point, inner float64) vertexKey {
	step := inner / snapDivisor
	return vertexKey{
		x: int64(math.Round(p.X / step)),
		y: int64(math.Round(p.Y / step)),
	}
}

func (k vertexKey) less(o vertexKey) bool {
	if k.x != o.x {
		return k.x < o.x
	}
	return k.y < o.y
}
