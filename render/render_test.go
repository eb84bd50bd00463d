package render_test

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
	"github.com/brhumphe/ps2-map-analyzer-sub000/render"
	"github.com/brhumphe/ps2-map-analyzer-sub000/style"
)

func styledMap(t *testing.T) (*lattice.Zone, *style.Sheet) {
	t.Helper()
	regions := []lattice.Region{
		{
			ID: 1, FacilityID: 101, FacilityType: ps2.Warpgate, Name: "Gate",
			FacilityX: -1000, FacilityY: -1000,
			Hexes: []hexgrid.Hex{{X: -3, Y: 5}, {X: -2, Y: 5}},
		},
		{
			ID: 2, FacilityID: 102, FacilityType: ps2.SmallOutpost, Name: "Outpost",
			FacilityX: 500, FacilityY: 500,
			Hexes: []hexgrid.Hex{{X: 0, Y: 0}},
		},
	}
	zone := lattice.NewZone(ps2.Indar, "Indar", 200, 8192, regions, []lattice.Link{{A: 101, B: 102}})
	snap := lattice.Snapshot{
		ZoneID:    ps2.Indar,
		Owners:    map[ps2.RegionID]ps2.FactionID{1: ps2.VS, 2: ps2.TR},
		Timestamp: time.Now(),
	}
	a := lattice.Analyze(zone, snap, lattice.Options{})
	sheet, err := style.BuildSheet(a, style.Preferences{})
	if err != nil {
		t.Fatal(err)
	}
	return zone, sheet
}

func TestDraw(t *testing.T) {
	zone, sheet := styledMap(t)
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
	if err := render.Draw(img, zone, sheet); err != nil {
		t.Fatal(err)
	}

	// the warpgate sits in the upper left quadrant; something must have
	// been painted there
	painted := false
	for y := 0; y < 256 && !painted; y++ {
		for x := 0; x < 256; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("expected region pixels in the upper left quadrant")
	}
}

func TestDrawRejectsBadBounds(t *testing.T) {
	zone, sheet := styledMap(t)

	if err := render.Draw(image.NewRGBA(image.Rectangle{}), zone, sheet); err == nil {
		t.Error("expected an error for an empty image")
	}
	if err := render.Draw(image.NewRGBA(image.Rect(0, 0, 512, 256)), zone, sheet); err == nil {
		t.Error("expected an error for a non-square image")
	}
	if err := render.Draw(image.NewRGBA(image.Rect(10, 10, 522, 522)), zone, sheet); err == nil {
		t.Error("expected an error for bounds not starting at 0,0")
	}
}

func TestSvg(t *testing.T) {
	zone, sheet := styledMap(t)
	var sb strings.Builder
	n, err := render.Svg(zone, sheet).WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if int64(len(out)) != n {
		t.Errorf("reported %d bytes written, wrote %d", n, len(out))
	}
	if !strings.Contains(out, "<svg") {
		t.Error("missing svg root element")
	}
	if got := strings.Count(out, "<polygon"); got != 2 {
		t.Errorf("expected 2 region polygons; got %d", got)
	}
	if !strings.Contains(out, "<line") {
		t.Error("expected a lattice link line")
	}
	// VS purple fill for the warpgate region
	if !strings.Contains(out, "#440e62") {
		t.Error("expected the VS fill color")
	}
	if !strings.Contains(out, `viewBox="0 0 8192 8192"`) {
		t.Error("expected the viewBox to match the zone size")
	}
}

func TestDrawTerrain(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.Set(x, y, color.White)
		}
	}
	render.DrawTerrain(dst, src)
	if _, _, _, a := dst.At(60, 60).RGBA(); a == 0 {
		t.Error("expected the terrain to cover the whole image after scaling")
	}
}
