// Package render draws styled territory maps as raster images or SVG.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"slices"

	"github.com/anthonynsimon/bild/transform"
	"github.com/llgcode/draw2d/draw2dimg"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
	"github.com/brhumphe/ps2-map-analyzer-sub000/style"
)

// Draw renders every region polygon and lattice link of a styled map
// onto img, scaled to the image dimensions.
//
// Note that the coordinate system is shifted from that returned by
// Census: census considers 0,0 to be the center of the map,
// while img has 0,0 at the upper left corner.
//
// A region whose hex footprint cannot be outlined is logged and
// skipped; one malformed region doesn't lose the whole map.
func Draw(img draw.Image, zone *lattice.Zone, sheet *style.Sheet) error {
	if img.Bounds().Empty() {
		return errors.New("render.Draw: image cannot be empty")
	}
	if img.Bounds().Dx() != img.Bounds().Dy() {
		return fmt.Errorf("render.Draw: image bounds must be square; given: %v", img.Bounds())
	}
	if (img.Bounds().Min != image.Point{}) {
		// draw2dimg behaves in unexpected ways when img does not start at 0,0
		return errors.New("render.Draw: image bounds must start at 0,0")
	}

	// scale is the ratio of the destination image size to the full continent size
	scale := float64(img.Bounds().Dx()) / float64(zone.Size)
	toImage := func(p hexgrid.Point) (x, y float64) {
		x = (p.X + float64(zone.Size/2)) * scale
		y = (p.Y + float64(zone.Size/2)) * scale
		return x, y
	}

	gc := draw2dimg.NewGraphicContext(img)

	for _, id := range sortedRegions(zone) {
		region := zone.Regions[id]
		outline, err := hexgrid.Boundary(region.Hexes, float64(zone.HexSize))
		if err != nil {
			slog.Warn("skipping region with malformed outline", "region", id, "name", region.Name, "error", err)
			continue
		}
		rs := sheet.Regions[id]

		gc.SetStrokeColor(rs.Stroke)
		gc.SetLineWidth(rs.StrokeWidth * scale)
		gc.SetFillColor(withOpacity(rs.Fill, rs.Opacity))

		gc.BeginPath()
		for i, p := range outline {
			if i == 0 {
				gc.MoveTo(toImage(p))
			} else {
				gc.LineTo(toImage(p))
			}
		}
		gc.Close()
		gc.FillStroke()
	}

	drawLinks(gc, zone, sheet, toImage, scale)
	return nil
}

func drawLinks(gc *draw2dimg.GraphicContext, zone *lattice.Zone, sheet *style.Sheet, toImage func(hexgrid.Point) (float64, float64), scale float64) {
	for _, key := range sortedLinks(sheet) {
		a, okA := zone.Regions[key.A]
		b, okB := zone.Regions[key.B]
		if !okA || !okB {
			continue
		}
		ls := sheet.Links[key]

		gc.SetStrokeColor(ls.Color)
		gc.SetLineWidth(ls.Width * scale)
		if ls.Dashed {
			gc.SetLineDash([]float64{8 * scale, 8 * scale}, 0)
		} else {
			gc.SetLineDash(nil, 0)
		}

		gc.BeginPath()
		gc.MoveTo(toImage(hexgrid.Point{X: a.FacilityX, Y: a.FacilityY}))
		gc.LineTo(toImage(hexgrid.Point{X: b.FacilityX, Y: b.FacilityY}))
		gc.Stroke()
	}
	gc.SetLineDash(nil, 0)
}

// DrawTerrain scales a terrain image to img's bounds and draws it as
// the background layer.
func DrawTerrain(img draw.Image, terrain image.Image) {
	if terrain.Bounds().Dx() != img.Bounds().Dx() || terrain.Bounds().Dy() != img.Bounds().Dy() {
		terrain = transform.Resize(terrain, img.Bounds().Dx(), img.Bounds().Dy(), transform.Linear)
	}
	draw.Draw(img, img.Bounds(), terrain, terrain.Bounds().Min, draw.Over)
}

func sortedRegions(zone *lattice.Zone) []ps2.RegionID {
	ids := make([]ps2.RegionID, 0, len(zone.Regions))
	for id := range zone.Regions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// withOpacity converts a color to premultiplied alpha at the given
// opacity.
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	if c.A == 0 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := uint8(255 * opacity)
	c.R = uint8(uint16(c.R) * uint16(a) / uint16(c.A))
	c.G = uint8(uint16(c.G) * uint16(a) / uint16(c.A))
	c.B = uint8(uint16(c.B) * uint16(a) / uint16(c.A))
	c.A = a
	return c
}
