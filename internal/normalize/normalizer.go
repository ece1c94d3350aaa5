package normalize

import (
	"bytes"
	"encoding/json"
	"log"

	"ruleforge/domain/rules"
	"ruleforge/ports"
)

// DegradedPlaceholder is the single explanatory rule injected when a
// generation payload's outer shape is unrecognizable, so the user sees
// the degradation rather than silence.
const DegradedPlaceholder = "Rule generation returned an unrecognizable response - please try again."

// Warning records a non-fatal structural repair: a rule arrived missing
// required fields and was fixed up. Observable for diagnostics, never
// surfaced as an error.
type Warning struct {
	Category rules.Category `json:"category"`
	Field    string         `json:"field"`
	Detail   string         `json:"detail"`
}

// Outcome is the result of normalization. Degraded distinguishes "the
// payload was structurally unusable and a placeholder set was
// substituted" from "normalized cleanly (possibly with repairs)".
type Outcome struct {
	RuleSet  rules.RuleSet `json:"rules"`
	Degraded bool          `json:"degraded"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Normalizer converts the two raw generation payloads into a
// guaranteed-schema RuleSet. It never returns an error: rule-shape
// irregularities are repaired in place and a structurally unusable
// payload yields a fixed degraded RuleSet.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize merges the dimensional and cross-column payloads, coerces
// every category to a list, canonicalizes field names, and guarantees
// every structured rule with columns carries a pseudo_sql check.
func (n *Normalizer) Normalize(dim *ports.DimensionalResult, cross *ports.CrossColumnResult) Outcome {
	if dim == nil || dim.Rules == nil {
		log.Printf("[Normalizer] dimensional payload missing top-level rules object, substituting degraded rule set")
		return Outcome{RuleSet: DegradedRuleSet(), Degraded: true}
	}

	merged := rules.NewRuleSet()
	for _, cat := range rules.Dimensions {
		merged[cat] = CoerceCategoryValue(dim.Rules[string(cat)])
	}
	if cross != nil {
		merged[rules.CrossColumn] = CoerceCategoryValue(cross.CrossColumnRules)
	}

	outcome := Outcome{RuleSet: merged}
	for _, cat := range rules.Categories {
		for i := range merged[cat] {
			item := &merged[cat][i]
			if item.Structured == nil {
				continue
			}
			outcome.Warnings = append(outcome.Warnings, n.normalizeRule(item.Structured, cat)...)
		}
	}

	if len(outcome.Warnings) > 0 {
		log.Printf("[Normalizer] normalized %d rules with %d structural repairs",
			merged.TotalRules(), len(outcome.Warnings))
	}
	return outcome
}

// normalizeRule canonicalizes one structured rule in place and returns
// the repairs that were needed.
func (n *Normalizer) normalizeRule(r *rules.Rule, cat rules.Category) []Warning {
	var warnings []Warning

	if len(r.Columns) == 0 && len(r.ColumnsInvolved) > 0 {
		r.Columns = r.ColumnsInvolved
		warnings = append(warnings, Warning{Category: cat, Field: "columns",
			Detail: "renamed columns_involved to columns"})
	}
	r.ColumnsInvolved = nil

	if r.Type == "" && r.ValidationType != "" {
		r.Type = r.ValidationType
		warnings = append(warnings, Warning{Category: cat, Field: "type",
			Detail: "renamed validation_type to type"})
	}
	r.ValidationType = ""

	if r.Type == "" {
		r.Type = "unknown"
		warnings = append(warnings, Warning{Category: cat, Field: "type",
			Detail: "missing type tag, defaulted to unknown"})
	}

	if r.Rule == "" {
		r.Rule = "No rule description available"
		warnings = append(warnings, Warning{Category: cat, Field: "rule",
			Detail: "missing rule description"})
	}

	if !r.HasSQL() {
		if sql := SynthesizeSQL(r, cat); sql != "" {
			r.PseudoSQL = sql
			warnings = append(warnings, Warning{Category: cat, Field: "pseudo_sql",
				Detail: "synthesized missing SQL check"})
		} else {
			r.PseudoSQL = ""
			warnings = append(warnings, Warning{Category: cat, Field: "pseudo_sql",
				Detail: "no columns listed, SQL check unavailable"})
		}
	}

	return warnings
}

// CoerceCategoryValue guarantees the RuleSet invariant for one category
// value: null or absent yields an empty list, a non-list scalar is
// wrapped as a single-element list, and a list passes through
// unchanged. Idempotent over already-coerced values.
func CoerceCategoryValue(raw json.RawMessage) []rules.RuleItem {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []rules.RuleItem{}
	}

	if trimmed[0] == '[' {
		var items []rules.RuleItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			log.Printf("[Normalizer] unreadable category list, coercing to empty: %v", err)
			return []rules.RuleItem{}
		}
		if items == nil {
			return []rules.RuleItem{}
		}
		return items
	}

	var item rules.RuleItem
	if err := json.Unmarshal(trimmed, &item); err != nil {
		log.Printf("[Normalizer] unreadable category scalar, coercing to empty: %v", err)
		return []rules.RuleItem{}
	}
	return []rules.RuleItem{item}
}

// DegradedRuleSet is the fixed fallback substituted when a payload's
// outer shape is unrecognizable: all seven categories present, accuracy
// holding a single explanatory placeholder, everything else empty.
func DegradedRuleSet() rules.RuleSet {
	rs := rules.NewRuleSet()
	rs[rules.Accuracy] = []rules.RuleItem{rules.PlainRule(DegradedPlaceholder)}
	return rs
}
