package rules

import (
	"encoding/json"
	"strings"
)

// Category is a rule category key: one of the six quality dimensions
// plus cross_column.
type Category string

const (
	Accuracy     Category = "accuracy"
	Completeness Category = "completeness"
	Uniqueness   Category = "uniqueness"
	Consistency  Category = "consistency"
	Timeliness   Category = "timeliness"
	Validity     Category = "validity"
	CrossColumn  Category = "cross_column"
)

// Dimensions are the six fixed quality dimensions, in canonical order.
var Dimensions = []Category{Accuracy, Completeness, Uniqueness, Consistency, Timeliness, Validity}

// Categories are all rule categories, dimensions first, in canonical order.
var Categories = []Category{Accuracy, Completeness, Uniqueness, Consistency, Timeliness, Validity, CrossColumn}

// NoSQLAvailable marks a rule for which no SQL check could be produced.
const NoSQLAvailable = "No SQL code available"

// PlaceholderTable is the literal table name used in every generated
// SQL check so the output stays dataset-agnostic.
const PlaceholderTable = "table_name"

var displayTitles = map[Category]string{
	Accuracy:     "Accuracy Rules",
	Completeness: "Completeness Rules",
	Uniqueness:   "Uniqueness Rules",
	Consistency:  "Consistency Rules",
	Timeliness:   "Timeliness Rules",
	Validity:     "Validity Rules",
	CrossColumn:  "Cross-Column Rules",
}

// DisplayTitle returns the human-readable title for a category.
func (c Category) DisplayTitle() string {
	if title, ok := displayTitles[c]; ok {
		return title
	}
	words := strings.Fields(strings.ReplaceAll(string(c), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// StringList decodes a JSON value that may be either a single string
// or an array of strings. Generators emit both shapes for `columns`.
type StringList []string

func (sl *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*sl = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*sl = StringList(many)
	return nil
}

// Rule is a structured validation rule. Generators may use either the
// canonical field names (columns/type) or the cross-column variants
// (columns_involved/validation_type); normalization collapses the
// variants into the canonical fields.
type Rule struct {
	Rule            string     `json:"rule"`
	Columns         StringList `json:"columns,omitempty"`
	Type            string     `json:"type,omitempty"`
	PseudoSQL       string     `json:"pseudo_sql,omitempty"`
	ColumnsInvolved StringList `json:"columns_involved,omitempty"`
	ValidationType  string     `json:"validation_type,omitempty"`
}

// EffectiveColumns returns the canonical column list, falling back to
// columns_involved when the canonical field is empty.
func (r *Rule) EffectiveColumns() []string {
	if len(r.Columns) > 0 {
		return r.Columns
	}
	return r.ColumnsInvolved
}

// EffectiveType returns the canonical type tag, falling back to
// validation_type, then "unknown".
func (r *Rule) EffectiveType() string {
	if r.Type != "" {
		return r.Type
	}
	if r.ValidationType != "" {
		return r.ValidationType
	}
	return "unknown"
}

// HasSQL reports whether the rule carries a usable SQL check.
func (r *Rule) HasSQL() bool {
	return r.PseudoSQL != "" && r.PseudoSQL != NoSQLAvailable
}

// RuleItem is the tagged union the generator contract allows per array
// element: either a structured rule object or a bare string.
type RuleItem struct {
	Plain      string
	Structured *Rule
}

// IsPlain reports whether the item is a bare string rule.
func (ri *RuleItem) IsPlain() bool {
	return ri.Structured == nil
}

// Text returns the human-readable rule description for either variant.
func (ri *RuleItem) Text() string {
	if ri.Structured != nil {
		return ri.Structured.Rule
	}
	return ri.Plain
}

// PlainRule wraps a bare string as a rule item.
func PlainRule(text string) RuleItem {
	return RuleItem{Plain: text}
}

// StructuredRule wraps a structured rule as a rule item.
func StructuredRule(r Rule) RuleItem {
	return RuleItem{Structured: &r}
}

func (ri *RuleItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		ri.Plain = s
		ri.Structured = nil
		return nil
	}
	var r Rule
	if err := json.Unmarshal(data, &r); err == nil {
		ri.Structured = &r
		return nil
	}
	// Scalar that is neither string nor object (number, bool): keep
	// the raw token as a plain rule rather than failing ingestion.
	ri.Plain = strings.Trim(string(data), `"`)
	ri.Structured = nil
	return nil
}

func (ri RuleItem) MarshalJSON() ([]byte, error) {
	if ri.Structured != nil {
		return json.Marshal(ri.Structured)
	}
	return json.Marshal(ri.Plain)
}

// RuleSet maps every canonical category to its rule list. A normalized
// RuleSet always has exactly the seven canonical keys, each mapped to a
// non-nil (possibly empty) list.
type RuleSet map[Category][]RuleItem

// NewRuleSet returns a RuleSet with all seven categories present and empty.
func NewRuleSet() RuleSet {
	rs := make(RuleSet, len(Categories))
	for _, cat := range Categories {
		rs[cat] = []RuleItem{}
	}
	return rs
}

// TotalRules counts rules across all categories.
func (rs RuleSet) TotalRules() int {
	total := 0
	for _, items := range rs {
		total += len(items)
	}
	return total
}
