package style

import (
	"image/color"

	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

// LinkStyle is the resolved visual state of one lattice link line.
type LinkStyle struct {
	Color  color.RGBA
	Width  float64
	Dashed bool
}

// LinkPatch is a partial [LinkStyle].
type LinkPatch struct {
	Color  *color.RGBA
	Width  *float64
	Dashed *bool
}

func (p LinkPatch) ApplyTo(s *LinkStyle) {
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Width != nil {
		s.Width = *p.Width
	}
	if p.Dashed != nil {
		s.Dashed = *p.Dashed
	}
}

// LinkContext is the input to link styling rules.
type LinkContext struct {
	State  lattice.LinkState
	Viewer ps2.FactionID
}

// Link rule ids.
const (
	RuleLinkBase      RuleID = "link.base"
	RuleLinkInactive  RuleID = "link.inactive"
	RuleLinkContested RuleID = "link.contested"
	RuleLinkOwn       RuleID = "link.own"
)

// DefaultLinkOrder is the evaluation order for the built-in link rules.
func DefaultLinkOrder() []RuleID {
	return []RuleID{
		RuleLinkBase,
		RuleLinkOwn,
		RuleLinkContested,
		RuleLinkInactive,
	}
}

func boolp(v bool) *bool { return &v }

// LinkRules returns the built-in link styling rules.
func LinkRules() []Rule[LinkContext, LinkStyle, LinkPatch] {
	return []Rule[LinkContext, LinkStyle, LinkPatch]{
		{
			ID: RuleLinkBase,
			Then: func(_ LinkContext, _ LinkStyle) LinkPatch {
				return LinkPatch{
					Color: rgba(color.RGBA{0xb0, 0xb0, 0xb0, 0xff}),
					Width: f64(2),
				}
			},
		},
		{
			ID: RuleLinkOwn,
			When: func(ctx LinkContext) bool {
				return ctx.State.Status == lattice.LinkSafe &&
					ctx.Viewer != ps2.None &&
					ctx.State.OwnerA == ctx.Viewer
			},
			Then: func(ctx LinkContext, _ LinkStyle) LinkPatch {
				return LinkPatch{Color: rgba(FactionColors[ctx.Viewer])}
			},
		},
		{
			ID: RuleLinkContested,
			When: func(ctx LinkContext) bool {
				return ctx.State.Status == lattice.LinkContested
			},
			Then: func(_ LinkContext, _ LinkStyle) LinkPatch {
				return LinkPatch{
					Color: rgba(color.RGBA{0xff, 0xa5, 0x00, 0xff}),
					Width: f64(4),
				}
			},
		},
		{
			ID: RuleLinkInactive,
			When: func(ctx LinkContext) bool {
				return ctx.State.Status == lattice.LinkInactive
			},
			Then: func(_ LinkContext, _ LinkStyle) LinkPatch {
				return LinkPatch{
					Color:  rgba(color.RGBA{0x50, 0x50, 0x50, 0xff}),
					Width:  f64(1),
					Dashed: boolp(true),
				}
			},
		},
	}
}

// NewLinkRuleSet builds the rule set for the built-in link rules.
func NewLinkRuleSet() (*RuleSet[LinkContext, LinkStyle, LinkPatch], error) {
	return NewRuleSet(LinkRules()...)
}
