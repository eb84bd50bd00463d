// Package style turns tactical classification into visual properties
// through ordered rule evaluation.
//
// The engine is generic over a context type C (classification plus
// viewer preferences) and a style type D. Rules produce patches:
// partial styles whose set fields overwrite the running result.
// Evaluating a rule list folds the patches in order,
// so later rules win on any field they touch,
// and the full per-rule trace is kept for debugging why a property
// ended up with its value.
package style

import (
	"fmt"
	"log/slog"
)

// RuleID names a rule within a rule set.
type RuleID string

// Patch is a partial update applied onto a style of type D.
// Implementations only overwrite the fields they carry.
type Patch[D any] interface {
	ApplyTo(*D)
}

// Rule decides whether it applies to a context and, when it does,
// what patch to contribute.
// A nil When means the rule is always applicable.
type Rule[C any, D any, P Patch[D]] struct {
	ID   RuleID
	When func(C) bool
	Then func(ctx C, current D) P
}

// RuleSet is a fixed collection of uniquely named rules.
// The evaluation order is not a property of the set;
// callers pass an ordered id list to [RuleSet.Evaluate].
type RuleSet[C any, D any, P Patch[D]] struct {
	rules map[RuleID]Rule[C, D, P]
}

// NewRuleSet builds a rule set,
// rejecting duplicate rule ids at construction time.
// A duplicate is a programming error, not a runtime data error.
func NewRuleSet[C any, D any, P Patch[D]](rules ...Rule[C, D, P]) (*RuleSet[C, D, P], error) {
	rs := &RuleSet[C, D, P]{rules: make(map[RuleID]Rule[C, D, P], len(rules))}
	for _, r := range rules {
		if _, dup := rs.rules[r.ID]; dup {
			return nil, fmt.Errorf("style: duplicate rule id %q", r.ID)
		}
		rs.rules[r.ID] = r
	}
	return rs, nil
}

// Step records what one rule contributed during an evaluation.
type Step[D any, P Patch[D]] struct {
	Rule       RuleID
	Applicable bool

	// Patch is the patch the rule produced;
	// only meaningful when Applicable is true.
	Patch P
}

// Result is the outcome of one evaluation:
// the final merged style and the per-rule trace that produced it.
type Result[D any, P Patch[D]] struct {
	Style D
	Trace []Step[D, P]
}

// Evaluate runs the rules named by order against ctx,
// folding each produced patch onto initial.
//
// Ids not present in the set are skipped with a warning;
// a stale preference file naming a removed rule should degrade,
// not break the map.
func (rs *RuleSet[C, D, P]) Evaluate(order []RuleID, ctx C, initial D) Result[D, P] {
	res := Result[D, P]{
		Style: initial,
		Trace: make([]Step[D, P], 0, len(order)),
	}
	for _, id := range order {
		rule, ok := rs.rules[id]
		if !ok {
			slog.Warn("style: unknown rule id skipped", "rule", id)
			continue
		}
		step := Step[D, P]{Rule: id}
		if rule.When == nil || rule.When(ctx) {
			step.Applicable = true
			step.Patch = rule.Then(ctx, res.Style)
			step.Patch.ApplyTo(&res.Style)
		}
		res.Trace = append(res.Trace, step)
	}
	return res
}
