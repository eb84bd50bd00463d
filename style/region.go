package style

import (
	"image/color"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

// FactionColors are the base colors used for filling regions by owning
// faction. Rules darken them for cutoff territory and adjust opacity
// separately, so alpha here stays opaque except for None.
var FactionColors = [5]color.RGBA{
	{0x00, 0x00, 0x00, 0x00}, // ps2.None
	{0x44, 0x0e, 0x62, 0xff}, // ps2.VS
	{0x00, 0x4b, 0x80, 0xff}, // ps2.NC
	{0x9e, 0x0b, 0x0f, 0xff}, // ps2.TR
	{0x80, 0x80, 0x80, 0xff}, // ps2.NSO
}

// RegionStyle is the resolved visual state of one region polygon.
type RegionStyle struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64

	// Opacity applies to the fill; 0 is invisible, 1 fully opaque.
	Opacity float64
}

// RegionPatch is a partial [RegionStyle]. Nil fields leave the current
// value untouched.
type RegionPatch struct {
	Fill        *color.RGBA
	Stroke      *color.RGBA
	StrokeWidth *float64
	Opacity     *float64
}

func (p RegionPatch) ApplyTo(s *RegionStyle) {
	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
}

// RegionContext is the input to region styling rules:
// one region's tactical state plus the viewer's display preferences.
type RegionContext struct {
	State  lattice.RegionState
	Viewer ps2.FactionID

	// FadeDistant enables the frontline distance fade rule.
	FadeDistant bool
	Fade        FadeParams
}

// FadeParams tunes the distance fade rule.
type FadeParams struct {
	MaxDistance  int
	Curve        Easing
	StartOpacity float64
	EndOpacity   float64
}

// DefaultFade fades fully opaque frontline territory down to nearly
// invisible over five lattice hops.
var DefaultFade = FadeParams{
	MaxDistance:  5,
	Curve:        EaseOut,
	StartOpacity: 0.45,
	EndOpacity:   0.08,
}

// Region rule ids.
const (
	RuleRegionOwnership  RuleID = "region.ownership"
	RuleRegionCutoff     RuleID = "region.cutoff"
	RuleRegionCapturable RuleID = "region.capturable"
	RuleRegionStealable  RuleID = "region.stealable"
	RuleRegionIrrelevant RuleID = "region.irrelevant"
	RuleRegionFade       RuleID = "region.fade"
)

// DefaultRegionOrder is the evaluation order for the built-in region
// rules. Later entries win on contested fields,
// so the fade runs last and the base ownership fill runs first.
func DefaultRegionOrder() []RuleID {
	return []RuleID{
		RuleRegionOwnership,
		RuleRegionCutoff,
		RuleRegionCapturable,
		RuleRegionStealable,
		RuleRegionIrrelevant,
		RuleRegionFade,
	}
}

func rgba(c color.RGBA) *color.RGBA { return &c }
func f64(v float64) *float64        { return &v }

// RegionRules returns the built-in region styling rules.
func RegionRules() []Rule[RegionContext, RegionStyle, RegionPatch] {
	return []Rule[RegionContext, RegionStyle, RegionPatch]{
		{
			ID: RuleRegionOwnership,
			Then: func(ctx RegionContext, _ RegionStyle) RegionPatch {
				return RegionPatch{
					Fill:        rgba(FactionColors[ctx.State.Owner]),
					Stroke:      rgba(color.RGBA{0xff, 0xff, 0xff, 0xff}),
					StrokeWidth: f64(3),
					Opacity:     f64(0.45),
				}
			},
		},
		{
			ID: RuleRegionCutoff,
			When: func(ctx RegionContext) bool {
				return ctx.State.Owner != ps2.None && !ctx.State.Connected
			},
			Then: func(_ RegionContext, current RegionStyle) RegionPatch {
				// darken whatever fill the earlier rules chose
				darkened := current.Fill
				darkened.R /= 2
				darkened.G /= 2
				darkened.B /= 2
				return RegionPatch{Fill: rgba(darkened)}
			},
		},
		{
			ID: RuleRegionCapturable,
			When: func(ctx RegionContext) bool {
				return ctx.State.Capturable
			},
			Then: func(_ RegionContext, _ RegionStyle) RegionPatch {
				return RegionPatch{
					Stroke:      rgba(color.RGBA{0xff, 0xd7, 0x00, 0xff}),
					StrokeWidth: f64(5),
				}
			},
		},
		{
			ID: RuleRegionStealable,
			When: func(ctx RegionContext) bool {
				return ctx.State.Stealable
			},
			Then: func(_ RegionContext, _ RegionStyle) RegionPatch {
				return RegionPatch{
					Stroke:      rgba(color.RGBA{0xff, 0x66, 0x00, 0xff}),
					StrokeWidth: f64(6),
				}
			},
		},
		{
			ID: RuleRegionIrrelevant,
			When: func(ctx RegionContext) bool {
				return !ctx.State.Relevant
			},
			Then: func(_ RegionContext, _ RegionStyle) RegionPatch {
				return RegionPatch{Opacity: f64(0.15)}
			},
		},
		{
			ID: RuleRegionFade,
			When: func(ctx RegionContext) bool {
				return ctx.FadeDistant && ctx.State.HasFrontline
			},
			Then: func(ctx RegionContext, _ RegionStyle) RegionPatch {
				p := ctx.Fade
				if p.MaxDistance <= 0 {
					p = DefaultFade
				}
				t := float64(ctx.State.FrontlineDistance) / float64(p.MaxDistance)
				return RegionPatch{
					Opacity: f64(p.Curve.Interpolate(p.StartOpacity, p.EndOpacity, t)),
				}
			},
		},
	}
}

// NewRegionRuleSet builds the rule set for the built-in region rules.
func NewRegionRuleSet() (*RuleSet[RegionContext, RegionStyle, RegionPatch], error) {
	return NewRuleSet(RegionRules()...)
}
