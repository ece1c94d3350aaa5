package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleforge/domain/rules"
	"ruleforge/internal/profiling"
)

func sqlRule(text, column, ruleType string) rules.RuleItem {
	return rules.StructuredRule(rules.Rule{
		Rule:      text,
		Columns:   rules.StringList{column},
		Type:      ruleType,
		PseudoSQL: "SELECT * FROM table_name WHERE " + column + " IS NULL",
	})
}

func testRuleSet() rules.RuleSet {
	rs := rules.NewRuleSet()
	rs[rules.Accuracy] = []rules.RuleItem{
		sqlRule("age is plausible", "age", "range"),
		sqlRule("age is present", "age", "null_check"),
	}
	rs[rules.Validity] = []rules.RuleItem{
		rules.StructuredRule(rules.Rule{
			Rule:      "email and age are consistent",
			Columns:   rules.StringList{"email", "age"},
			Type:      "logical",
			PseudoSQL: "SELECT * FROM table_name WHERE email IS NULL",
		}),
	}
	rs[rules.CrossColumn] = []rules.RuleItem{
		rules.StructuredRule(rules.Rule{
			Rule:      "active customers are adults",
			Columns:   rules.StringList{"active", "age"},
			Type:      "business",
			PseudoSQL: "SELECT * FROM table_name WHERE active = true AND age < 18",
		}),
	}
	return rs
}

func TestAnalyzeCounts(t *testing.T) {
	analyzer := NewAnalyzer()
	report := analyzer.Analyze(testRuleSet(), nil)

	assert.Equal(t, 4, report.TotalRules)
	assert.Equal(t, 4, report.RulesWithSQL)
	assert.Equal(t, 0, report.RulesWithoutSQL)
	assert.Equal(t, 100.0, report.SQLCoveragePercentage)

	assert.Equal(t, 2, report.RuleComplexity.SimpleRules)
	assert.Equal(t, 1, report.RuleComplexity.ComplexRules)
	assert.Equal(t, 1, report.RuleComplexity.CrossColumnRules)

	assert.Equal(t, 2, report.QualityDimensions["accuracy"])
	assert.Equal(t, 0, report.QualityDimensions["completeness"])

	// age appears in all four rules
	assert.Equal(t, 4, report.ColumnCoverage["age"])
	assert.Equal(t, 1, report.ColumnCoverage["email"])

	assert.Equal(t, 1, report.ValidationTypes["range"])
	assert.Equal(t, 1, report.ValidationTypes["business"])
}

func TestQualityScore(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)

	// 0.4*1.0 (SQL) + 0.3*0.5 (3 of 6 categories) + 0.3*(2/3) (balance) = 0.75
	assert.Equal(t, 75.0, analyzer.QualityScore())
}

func TestQualityScoreZeroWhenNoRules(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(rules.NewRuleSet(), nil)
	assert.Equal(t, 0.0, analyzer.QualityScore())
}

func TestQualityScoreBounds(t *testing.T) {
	sets := []rules.RuleSet{
		rules.NewRuleSet(),
		testRuleSet(),
		func() rules.RuleSet {
			rs := rules.NewRuleSet()
			rs[rules.Accuracy] = []rules.RuleItem{rules.PlainRule("a bare rule")}
			return rs
		}(),
	}

	for _, rs := range sets {
		analyzer := NewAnalyzer()
		analyzer.Analyze(rs, nil)
		score := analyzer.QualityScore()
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestBareStringRulesCountAsSimple(t *testing.T) {
	rs := rules.NewRuleSet()
	rs[rules.Completeness] = []rules.RuleItem{rules.PlainRule("all fields must be filled")}

	analyzer := NewAnalyzer()
	report := analyzer.Analyze(rs, nil)

	assert.Equal(t, 1, report.TotalRules)
	assert.Equal(t, 1, report.RuleComplexity.SimpleRules)
	assert.Equal(t, 0, report.RulesWithSQL)
	assert.Equal(t, 0, report.RulesWithoutSQL)
}

func TestDataContextGuardsZeroDenominators(t *testing.T) {
	stats := profiling.BasicStats{
		RowCount:      0,
		ColumnCount:   2,
		MissingValues: map[string]int{"a": 0, "b": 0},
	}

	analyzer := NewAnalyzer()
	report := analyzer.Analyze(testRuleSet(), &stats)

	require.NotNil(t, report.DataContext)
	assert.Equal(t, 0.0, report.DataContext.RulesPerRow)
	assert.Equal(t, 2.0, report.DataContext.RulesPerColumn)
}

func TestSummaryMetrics(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)

	summary := analyzer.SummaryMetrics()
	assert.Equal(t, 4, summary.TotalRules)
	assert.Equal(t, "100%", summary.SQLCoverage)
	assert.Equal(t, "accuracy", summary.TopCategory)
	assert.Equal(t, "age", summary.MostCoveredColumn)
	assert.Equal(t, "1/2", summary.ComplexityRatio)
}

func TestColumnCoverageRankingDescending(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)

	coverage := analyzer.ColumnCoverageAnalysis()
	require.NotEmpty(t, coverage.Columns)
	assert.Equal(t, "age", coverage.Columns[0])
	for i := 1; i < len(coverage.Coverage); i++ {
		assert.GreaterOrEqual(t, coverage.Coverage[i-1], coverage.Coverage[i])
	}
}

func TestAnalyzeResetsStateBetweenCalls(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)
	report := analyzer.Analyze(rules.NewRuleSet(), nil)

	assert.Equal(t, 0, report.TotalRules)
	assert.Empty(t, report.ColumnCoverage)
	assert.Equal(t, 0.0, analyzer.QualityScore())
	assert.Equal(t, 0, report.RuleComplexity.SimpleRules)
}

func TestCategoryBreakdownOrderAndLabels(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)

	breakdown := analyzer.CategoryBreakdown()
	require.Len(t, breakdown.Categories, len(rules.Categories))
	assert.Equal(t, "Accuracy", breakdown.Categories[0])
	assert.Equal(t, "Cross Column", breakdown.Categories[len(breakdown.Categories)-1])
	assert.Equal(t, 2, breakdown.Counts[0])
	assert.Equal(t, 50.0, breakdown.Percentages[0])
}

func TestExportReport(t *testing.T) {
	analyzer := NewAnalyzer()
	analyzer.Analyze(testRuleSet(), nil)

	doc := analyzer.ExportReport()
	assert.Equal(t, "Data Quality Rules KPI Analysis", doc.ReportMetadata.ReportType)
	assert.NotEmpty(t, doc.ReportMetadata.ReportID)
	assert.NotEmpty(t, doc.ReportMetadata.GeneratedAt)
	require.NotNil(t, doc.DetailedAnalysis)
	assert.Equal(t, 4, doc.DetailedAnalysis.TotalRules)
	assert.Equal(t, 4, doc.ExecutiveSummary.TotalRules)
}
