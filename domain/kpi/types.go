package kpi

// RuleComplexity buckets rules by how many columns they constrain.
type RuleComplexity struct {
	SimpleRules      int `json:"simple_rules"`
	ComplexRules     int `json:"complex_rules"`
	CrossColumnRules int `json:"cross_column_rules"`
}

// DataContext holds dataset-relative KPI metrics, present only when
// the analyzer was given dataset statistics.
type DataContext struct {
	TotalRows                int     `json:"total_rows"`
	TotalColumns             int     `json:"total_columns"`
	ColumnsWithMissingValues int     `json:"columns_with_missing_values"`
	RulesPerColumn           float64 `json:"rules_per_column"`
	RulesPerRow              float64 `json:"rules_per_row"`
}

// Report is the full KPI state computed from one normalized rule set.
// It is rebuilt from scratch on every analysis pass.
type Report struct {
	GenerationTimestamp   string             `json:"generation_timestamp"`
	TotalRules            int                `json:"total_rules"`
	RulesByCategory       map[string]int     `json:"rules_by_category"`
	RulesWithSQL          int                `json:"rules_with_sql"`
	RulesWithoutSQL       int                `json:"rules_without_sql"`
	SQLCoveragePercentage float64            `json:"sql_coverage_percentage"`
	CategoryDistribution  map[string]float64 `json:"category_distribution"`
	RuleComplexity        RuleComplexity     `json:"rule_complexity"`
	ColumnCoverage        map[string]int     `json:"column_coverage"`
	ValidationTypes       map[string]int     `json:"validation_types"`
	QualityDimensions     map[string]int     `json:"data_quality_dimensions"`
	DataContext           *DataContext       `json:"data_context,omitempty"`
}

// SummaryMetrics are the headline numbers for dashboard display.
type SummaryMetrics struct {
	TotalRules        int    `json:"total_rules"`
	SQLCoverage       string `json:"sql_coverage"`
	TopCategory       string `json:"top_category"`
	MostCoveredColumn string `json:"most_covered_column"`
	ComplexityRatio   string `json:"complexity_ratio"`
}

// CategoryBreakdown is the per-category chart view: parallel slices in
// the order categories were first encountered during analysis.
type CategoryBreakdown struct {
	Categories  []string  `json:"categories"`
	Counts      []int     `json:"counts"`
	Percentages []float64 `json:"percentages"`
}

// ValidationTypeBreakdown lists observed validation type tags and counts.
type ValidationTypeBreakdown struct {
	Types  []string `json:"types"`
	Counts []int    `json:"counts"`
}

// ColumnCoverage ranks columns by the number of rules referencing them.
type ColumnCoverage struct {
	Columns  []string `json:"columns"`
	Coverage []int    `json:"coverage"`
}

// ReportMetadata heads an exported KPI report.
type ReportMetadata struct {
	GeneratedAt string `json:"generated_at"`
	ReportType  string `json:"report_type"`
	ReportID    string `json:"report_id"`
}

// ExportDocument bundles the full KPI state with all breakdown views
// into one serializable report.
type ExportDocument struct {
	ReportMetadata     ReportMetadata          `json:"report_metadata"`
	ExecutiveSummary   SummaryMetrics          `json:"executive_summary"`
	DetailedAnalysis   *Report                 `json:"detailed_analysis"`
	CategoryBreakdown  CategoryBreakdown       `json:"category_breakdown"`
	ValidationAnalysis ValidationTypeBreakdown `json:"validation_analysis"`
	ColumnCoverage     ColumnCoverage          `json:"column_coverage"`
}
