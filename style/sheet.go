package style

import (
	ps2 "github.com/brhumphe/ps2-map-analyzer-sub000"
	"github.com/brhumphe/ps2-map-analyzer-sub000/lattice"
)

// Preferences are the viewer's display settings for one evaluation.
type Preferences struct {
	// Viewer is the faction the viewer plays, or ps2.None.
	Viewer ps2.FactionID

	// FadeDistant fades regions by their distance to the frontline.
	FadeDistant bool
	Fade        FadeParams

	// Disabled removes rules from the evaluation order without
	// touching the rule sets themselves.
	Disabled map[RuleID]bool

	// RegionOrder and LinkOrder override the default evaluation orders
	// when non-nil. Unknown ids are skipped by the engine.
	RegionOrder []RuleID
	LinkOrder   []RuleID
}

func (p Preferences) regionOrder() []RuleID {
	return p.filter(p.RegionOrder, DefaultRegionOrder)
}

func (p Preferences) linkOrder() []RuleID {
	return p.filter(p.LinkOrder, DefaultLinkOrder)
}

func (p Preferences) filter(order []RuleID, fallback func() []RuleID) []RuleID {
	if order == nil {
		order = fallback()
	}
	if len(p.Disabled) == 0 {
		return order
	}
	kept := make([]RuleID, 0, len(order))
	for _, id := range order {
		if !p.Disabled[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// Sheet holds the resolved styles for every region and link of one
// analysis pass, plus the per-rule traces that produced them.
type Sheet struct {
	Regions map[ps2.RegionID]RegionStyle
	Links   map[lattice.LinkKey]LinkStyle

	RegionTraces map[ps2.RegionID][]Step[RegionStyle, RegionPatch]
	LinkTraces   map[lattice.LinkKey][]Step[LinkStyle, LinkPatch]
}

// BuildSheet evaluates the built-in rules for every region and link of
// an analysis.
func BuildSheet(a *lattice.Analysis, prefs Preferences) (*Sheet, error) {
	regionRules, err := NewRegionRuleSet()
	if err != nil {
		return nil, err
	}
	linkRules, err := NewLinkRuleSet()
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Regions:      make(map[ps2.RegionID]RegionStyle, len(a.Regions)),
		Links:        make(map[lattice.LinkKey]LinkStyle, len(a.Links)),
		RegionTraces: make(map[ps2.RegionID][]Step[RegionStyle, RegionPatch], len(a.Regions)),
		LinkTraces:   make(map[lattice.LinkKey][]Step[LinkStyle, LinkPatch], len(a.Links)),
	}

	regionOrder := prefs.regionOrder()
	for id, state := range a.Regions {
		ctx := RegionContext{
			State:       state,
			Viewer:      prefs.Viewer,
			FadeDistant: prefs.FadeDistant,
			Fade:        prefs.Fade,
		}
		res := regionRules.Evaluate(regionOrder, ctx, RegionStyle{})
		sheet.Regions[id] = res.Style
		sheet.RegionTraces[id] = res.Trace
	}

	linkOrder := prefs.linkOrder()
	for key, state := range a.Links {
		ctx := LinkContext{State: state, Viewer: prefs.Viewer}
		res := linkRules.Evaluate(linkOrder, ctx, LinkStyle{})
		sheet.Links[key] = res.Style
		sheet.LinkTraces[key] = res.Trace
	}
	return sheet, nil
}
