package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ruleforge/domain/kpi"
	"ruleforge/domain/rules"
)

// RulesDocument is the exportable wrapper around a normalized rule set.
type RulesDocument struct {
	GeneratedAt string        `json:"generated_at"`
	Rules       rules.RuleSet `json:"rules"`
}

// RulesJSON serializes the rule set with a generation timestamp.
func RulesJSON(ruleSet rules.RuleSet) ([]byte, error) {
	doc := RulesDocument{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Rules:       ruleSet,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// SQLScript concatenates every rule's SQL check into one script. Each
// statement gets a comment header naming the category, description, and
// columns; rules without a SQL check are skipped.
func SQLScript(ruleSet rules.RuleSet) string {
	var b strings.Builder
	b.WriteString("-- Data Quality Rules - Pseudo SQL Code\n")
	b.WriteString(fmt.Sprintf("-- Generated on: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	for _, cat := range rules.Categories {
		for _, item := range ruleSet[cat] {
			r := item.Structured
			if r == nil || !r.HasSQL() {
				continue
			}
			b.WriteString(fmt.Sprintf("-- %s: %s\n", strings.ToUpper(string(cat)), r.Rule))
			b.WriteString(fmt.Sprintf("-- Columns: %s\n", strings.Join(r.EffectiveColumns(), ", ")))
			b.WriteString(r.PseudoSQL)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// HasSQL reports whether the rule set contains at least one SQL check,
// so callers can skip offering an empty script.
func HasSQL(ruleSet rules.RuleSet) bool {
	for _, items := range ruleSet {
		for _, item := range items {
			if item.Structured != nil && item.Structured.HasSQL() {
				return true
			}
		}
	}
	return false
}

// KPIReportJSON serializes the full KPI export document.
func KPIReportJSON(doc kpi.ExportDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// FormatRulesForDisplay maps category keys to human-readable section
// titles, preserving the canonical category order.
func FormatRulesForDisplay(ruleSet rules.RuleSet) []DisplaySection {
	sections := make([]DisplaySection, 0, len(rules.Categories))
	for _, cat := range rules.Categories {
		sections = append(sections, DisplaySection{
			Title: cat.DisplayTitle(),
			Rules: ruleSet[cat],
		})
	}
	return sections
}

// DisplaySection is one titled rule group for presentation.
type DisplaySection struct {
	Title string           `json:"title"`
	Rules []rules.RuleItem `json:"rules"`
}
