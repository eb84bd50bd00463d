package render

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"slices"
	"text/template"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/hexgrid"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
	"github.com/brhumphe/ps2-map-analyzer-sub000/style"
)

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{ .Size }} {{ .Size }}">
<style>
polygon:hover {
	filter: brightness(1.5);
}
polygon {
	transition: 0.4s;
}
</style>
{{- range .Links }}
<line x1="{{ .X1 }}" y1="{{ .Y1 }}" x2="{{ .X2 }}" y2="{{ .Y2 }}" stroke="{{ .Stroke }}" stroke-width="{{ .Width }}"{{ if .Dashed }} stroke-dasharray="16 16"{{ end }}/>
{{- end }}
{{- range .Regions }}
<g id="region{{ .ID }}">
<polygon points="{{ range .Outline }}{{ .X }},{{ .Y }} {{ end }}" fill="{{ .Fill }}" fill-opacity="{{ .Opacity }}" stroke="{{ .Stroke }}" stroke-width="{{ .Width }}"/>
</g>
{{- end }}
</svg>`

var svgTmpl = template.Must(template.New("mapsvg").Parse(svgTemplate))

type svgRegion struct {
	ID      ps2.RegionID
	Fill    string
	Stroke  string
	Width   float64
	Opacity float64
	Outline []svgPoint
}

type svgPoint struct {
	X, Y int64
}

type svgLink struct {
	X1, Y1, X2, Y2 int64
	Stroke         string
	Width          float64
	Dashed         bool
}

type svgMap struct {
	Size    int
	Regions []svgRegion
	Links   []svgLink
}

// Svg builds an SVG document for a styled map.
// Coordinates are shifted so 0,0 is the top left corner,
// matching the viewBox.
func Svg(zone *lattice.Zone, sheet *style.Sheet) io.WriterTo {
	half := int64(zone.Size / 2)
	doc := svgMap{Size: zone.Size}

	for _, key := range sortedLinks(sheet) {
		a, okA := zone.Regions[key.A]
		b, okB := zone.Regions[key.B]
		if !okA || !okB {
			continue
		}
		ls := sheet.Links[key]
		doc.Links = append(doc.Links, svgLink{
			X1:     int64(a.FacilityX) + half,
			Y1:     int64(a.FacilityY) + half,
			X2:     int64(b.FacilityX) + half,
			Y2:     int64(b.FacilityY) + half,
			Stroke: cssColor(ls.Color),
			Width:  ls.Width,
			Dashed: ls.Dashed,
		})
	}

	for _, id := range sortedRegions(zone) {
		region := zone.Regions[id]
		outline, err := hexgrid.Boundary(region.Hexes, float64(zone.HexSize))
		if err != nil {
			slog.Warn("skipping region with malformed outline", "region", id, "name", region.Name, "error", err)
			continue
		}
		rs := sheet.Regions[id]
		sr := svgRegion{
			ID:      id,
			Fill:    cssColor(rs.Fill),
			Stroke:  cssColor(rs.Stroke),
			Width:   rs.StrokeWidth,
			Opacity: rs.Opacity,
		}
		for _, p := range outline {
			sr.Outline = append(sr.Outline, svgPoint{X: int64(p.X) + half, Y: int64(p.Y) + half})
		}
		doc.Regions = append(doc.Regions, sr)
	}
	return doc
}

func (doc svgMap) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	err := svgTmpl.Execute(counter, doc)
	return counter.n, err
}

type countingWriter struct {
	n int64
	w io.Writer
}

func (c *countingWriter) Write(p []byte) (n int, err error) {
	n, err = c.w.Write(p)
	c.n += int64(n)
	return
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func sortedLinks(sheet *style.Sheet) []lattice.LinkKey {
	keys := make([]lattice.LinkKey, 0, len(sheet.Links))
	for key := range sheet.Links {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b lattice.LinkKey) int {
		if a.A != b.A {
			return int(a.A - b.A)
		}
		return int(a.B - b.B)
	})
	return keys
}
