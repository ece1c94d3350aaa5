package kpi

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ruleforge/domain/kpi"
	"ruleforge/domain/rules"
	"ruleforge/internal/profiling"
)

// Analyzer accumulates KPI counters over one normalized rule set. All
// state is reset at the start of every Analyze call, so an instance is
// effectively scoped to one report's lifetime and holds nothing across
// regenerations.
type Analyzer struct {
	report        kpi.Report
	categoryOrder []string
	typeOrder     []string
}

// NewAnalyzer creates an analyzer with zeroed counters.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.report = kpi.Report{
		RulesByCategory:      make(map[string]int),
		CategoryDistribution: make(map[string]float64),
		ColumnCoverage:       make(map[string]int),
		ValidationTypes:      make(map[string]int),
		QualityDimensions:    make(map[string]int, len(rules.Dimensions)),
	}
	for _, dim := range rules.Dimensions {
		a.report.QualityDimensions[string(dim)] = 0
	}
	a.categoryOrder = nil
	a.typeOrder = nil
}

// Analyze computes the KPI report for one rule set, optionally enriched
// with dataset context. Counters are rebuilt from scratch on every call.
func (a *Analyzer) Analyze(ruleSet rules.RuleSet, stats *profiling.BasicStats) *kpi.Report {
	a.reset()
	a.report.GenerationTimestamp = time.Now().Format(time.RFC3339)

	for _, cat := range categoryKeys(ruleSet) {
		items := ruleSet[cat]
		a.categoryOrder = append(a.categoryOrder, string(cat))
		a.report.RulesByCategory[string(cat)] = len(items)
		a.report.TotalRules += len(items)

		if _, isDimension := a.report.QualityDimensions[string(cat)]; isDimension {
			a.report.QualityDimensions[string(cat)] = len(items)
		}

		for i := range items {
			item := &items[i]
			if item.Structured != nil {
				a.analyzeRuleDetails(item.Structured, cat)
			} else {
				a.report.RuleComplexity.SimpleRules++
			}
		}
	}

	a.calculatePercentages()

	if stats != nil {
		a.addDataContext(*stats)
	}

	return &a.report
}

func (a *Analyzer) analyzeRuleDetails(r *rules.Rule, cat rules.Category) {
	if r.HasSQL() {
		a.report.RulesWithSQL++
	} else {
		a.report.RulesWithoutSQL++
	}

	columns := r.EffectiveColumns()
	switch {
	case cat == rules.CrossColumn:
		a.report.RuleComplexity.CrossColumnRules++
	case len(columns) > 1:
		a.report.RuleComplexity.ComplexRules++
	default:
		a.report.RuleComplexity.SimpleRules++
	}

	for _, col := range columns {
		a.report.ColumnCoverage[col]++
	}

	vtype := r.EffectiveType()
	if _, seen := a.report.ValidationTypes[vtype]; !seen {
		a.typeOrder = append(a.typeOrder, vtype)
	}
	a.report.ValidationTypes[vtype]++
}

func (a *Analyzer) calculatePercentages() {
	total := a.report.TotalRules
	if total == 0 {
		return
	}

	a.report.SQLCoveragePercentage = round2(float64(a.report.RulesWithSQL) / float64(total) * 100)
	for cat, count := range a.report.RulesByCategory {
		a.report.CategoryDistribution[cat] = round2(float64(count) / float64(total) * 100)
	}
}

func (a *Analyzer) addDataContext(stats profiling.BasicStats) {
	ctx := &kpi.DataContext{
		TotalRows:                stats.RowCount,
		TotalColumns:             stats.ColumnCount,
		ColumnsWithMissingValues: stats.ColumnsWithMissing(),
	}
	if stats.ColumnCount > 0 {
		ctx.RulesPerColumn = round2(float64(a.report.TotalRules) / float64(stats.ColumnCount))
	}
	if stats.RowCount > 0 {
		ctx.RulesPerRow = round4(float64(a.report.TotalRules) / float64(stats.RowCount))
	}
	a.report.DataContext = ctx
}

// QualityScore is the weighted composite in [0, 100]: 40% SQL coverage,
// 30% category diversity (distinct non-empty categories over six), 30%
// complexity balance. Zero exactly when no rules were analyzed.
func (a *Analyzer) QualityScore() float64 {
	if a.report.TotalRules == 0 {
		return 0
	}

	sqlCoverageScore := a.report.SQLCoveragePercentage / 100

	nonEmpty := 0
	for _, count := range a.report.RulesByCategory {
		if count > 0 {
			nonEmpty++
		}
	}
	categoryDiversityScore := math.Min(float64(nonEmpty)/6, 1)

	// Cross-column rules sit outside the simple/complex balance; a mix
	// close to 50/50 scores highest, no simple/complex rules at all
	// scores a neutral 0.5.
	complexityBalanceScore := 0.5
	totalComplexity := a.report.RuleComplexity.SimpleRules + a.report.RuleComplexity.ComplexRules
	if totalComplexity > 0 {
		simpleRatio := float64(a.report.RuleComplexity.SimpleRules) / float64(totalComplexity)
		complexityBalanceScore = 1 - math.Abs(0.5-simpleRatio)*2
	}

	score := sqlCoverageScore*0.4 + categoryDiversityScore*0.3 + complexityBalanceScore*0.3
	return round1(score * 100)
}

// SummaryMetrics returns the headline dashboard numbers.
func (a *Analyzer) SummaryMetrics() kpi.SummaryMetrics {
	metrics := kpi.SummaryMetrics{
		TotalRules:        a.report.TotalRules,
		SQLCoverage:       fmt.Sprintf("%v%%", a.report.SQLCoveragePercentage),
		TopCategory:       "N/A",
		MostCoveredColumn: "N/A",
		ComplexityRatio: fmt.Sprintf("%d/%d",
			a.report.RuleComplexity.ComplexRules, a.report.RuleComplexity.SimpleRules),
	}

	if top, ok := maxByCount(a.report.RulesByCategory); ok && a.report.TotalRules > 0 {
		metrics.TopCategory = top
	}
	if top, ok := maxByCount(a.report.ColumnCoverage); ok {
		metrics.MostCoveredColumn = top
	}
	return metrics
}

// CategoryBreakdown lists categories with counts and percentages in the
// order they were encountered during analysis.
func (a *Analyzer) CategoryBreakdown() kpi.CategoryBreakdown {
	breakdown := kpi.CategoryBreakdown{
		Categories:  []string{},
		Counts:      []int{},
		Percentages: []float64{},
	}
	for _, cat := range a.categoryOrder {
		breakdown.Categories = append(breakdown.Categories, titleLabel(cat))
		breakdown.Counts = append(breakdown.Counts, a.report.RulesByCategory[cat])
		breakdown.Percentages = append(breakdown.Percentages, a.report.CategoryDistribution[cat])
	}
	return breakdown
}

// ValidationTypeBreakdown lists validation type tags in encounter order.
func (a *Analyzer) ValidationTypeBreakdown() kpi.ValidationTypeBreakdown {
	breakdown := kpi.ValidationTypeBreakdown{Types: []string{}, Counts: []int{}}
	for _, vtype := range a.typeOrder {
		breakdown.Types = append(breakdown.Types, vtype)
		breakdown.Counts = append(breakdown.Counts, a.report.ValidationTypes[vtype])
	}
	return breakdown
}

// ColumnCoverageAnalysis ranks columns by rule count, descending; ties
// break alphabetically so the ranking is stable.
func (a *Analyzer) ColumnCoverageAnalysis() kpi.ColumnCoverage {
	coverage := kpi.ColumnCoverage{Columns: []string{}, Coverage: []int{}}
	if len(a.report.ColumnCoverage) == 0 {
		return coverage
	}

	columns := make([]string, 0, len(a.report.ColumnCoverage))
	for col := range a.report.ColumnCoverage {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		ci, cj := a.report.ColumnCoverage[columns[i]], a.report.ColumnCoverage[columns[j]]
		if ci != cj {
			return ci > cj
		}
		return columns[i] < columns[j]
	})

	for _, col := range columns {
		coverage.Columns = append(coverage.Columns, col)
		coverage.Coverage = append(coverage.Coverage, a.report.ColumnCoverage[col])
	}
	return coverage
}

// ExportReport bundles the metadata header, summary metrics, full KPI
// state, and all breakdown views into one serializable document.
func (a *Analyzer) ExportReport() kpi.ExportDocument {
	return kpi.ExportDocument{
		ReportMetadata: kpi.ReportMetadata{
			GeneratedAt: a.report.GenerationTimestamp,
			ReportType:  "Data Quality Rules KPI Analysis",
			ReportID:    uuid.NewString(),
		},
		ExecutiveSummary:   a.SummaryMetrics(),
		DetailedAnalysis:   &a.report,
		CategoryBreakdown:  a.CategoryBreakdown(),
		ValidationAnalysis: a.ValidationTypeBreakdown(),
		ColumnCoverage:     a.ColumnCoverageAnalysis(),
	}
}

// categoryKeys returns the canonical categories first, then any extra
// keys a non-normalized rule set might carry, in sorted order.
func categoryKeys(ruleSet rules.RuleSet) []rules.Category {
	keys := make([]rules.Category, 0, len(ruleSet))
	seen := make(map[rules.Category]bool, len(ruleSet))
	for _, cat := range rules.Categories {
		if _, ok := ruleSet[cat]; ok {
			keys = append(keys, cat)
			seen[cat] = true
		}
	}
	extras := make([]rules.Category, 0)
	for cat := range ruleSet {
		if !seen[cat] {
			extras = append(extras, cat)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	return append(keys, extras...)
}

// maxByCount picks the key with the highest count; ties break
// alphabetically.
func maxByCount(counts map[string]int) (string, bool) {
	best := ""
	bestCount := -1
	for key, count := range counts {
		if count > bestCount || (count == bestCount && key < best) {
			best = key
			bestCount = count
		}
	}
	return best, bestCount >= 0
}

func titleLabel(category string) string {
	words := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
