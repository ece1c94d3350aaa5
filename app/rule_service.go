package app

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ruleforge/ai"
	"ruleforge/domain/dataset"
	"ruleforge/domain/kpi"
	"ruleforge/domain/rules"
	"ruleforge/internal/errors"
	kpianalyzer "ruleforge/internal/kpi"
	"ruleforge/internal/normalize"
	"ruleforge/internal/profiling"
	"ruleforge/ports"
)

// GenerationResult bundles everything one generation cycle produces:
// the normalized rule set, its degradation/repair status, and the full
// KPI analysis.
type GenerationResult struct {
	GenerationID string                            `json:"generation_id"`
	RuleSet      rules.RuleSet                     `json:"rules"`
	Degraded     bool                              `json:"degraded"`
	Warnings     []normalize.Warning               `json:"warnings,omitempty"`
	Report       *kpi.Report                       `json:"kpi_report"`
	QualityScore float64                           `json:"quality_score"`
	Summary      kpi.SummaryMetrics                `json:"summary_metrics"`
	Categories   kpi.CategoryBreakdown             `json:"category_breakdown"`
	Columns      kpi.ColumnCoverage                `json:"column_coverage"`
	Validations  kpi.ValidationTypeBreakdown       `json:"validation_analysis"`
	KPIExport    kpi.ExportDocument                `json:"-"`
	BasicStats   profiling.BasicStats              `json:"basic_stats"`
	Correlations profiling.CorrelationMatrix       `json:"-"`
	ColumnTypes  map[string]profiling.InferredType `json:"-"`
}

// RuleService runs the full pipeline: profile, prompt, generate,
// normalize, aggregate. Stateless across calls; each session owns its
// own instance and each call builds a fresh analyzer.
type RuleService struct {
	generator  ports.RuleGeneratorPort
	normalizer *normalize.Normalizer
	sampleRows int
}

// NewRuleService creates a rule service over one generator boundary.
func NewRuleService(generator ports.RuleGeneratorPort, sampleRows int) *RuleService {
	if sampleRows <= 0 {
		sampleRows = 5
	}
	return &RuleService{
		generator:  generator,
		normalizer: normalize.New(),
		sampleRows: sampleRows,
	}
}

// GenerateRules runs one full generation cycle for a dataset. The two
// generation calls run concurrently but both must complete before
// normalization: a failure of either fails the whole request, no
// partial rule set is normalized.
func (s *RuleService) GenerateRules(ctx context.Context, ds *dataset.Dataset, userContext string) (*GenerationResult, error) {
	generationID := uuid.NewString()
	log.Printf("[RuleService] generation %s starting: %d rows, %d columns",
		generationID, ds.RowCount(), ds.ColumnCount())

	profiler := profiling.NewProfiler(ds)
	inputs := ai.PromptInputs{
		Columns:      ds.Columns,
		ColumnTypes:  profiler.InferTypes(),
		Profiles:     profiler.ProfileColumns(),
		Sample:       profiler.Sample(s.sampleRows),
		Correlations: profiler.Correlate(),
		UserContext:  userContext,
	}

	dimensionalPrompt, err := ai.BuildDimensionalPrompt(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dimensional prompt")
	}
	crossColumnPrompt, err := ai.BuildCrossColumnPrompt(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build cross-column prompt")
	}

	var dimensional *ports.DimensionalResult
	var crossColumn *ports.CrossColumnResult

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var genErr error
		dimensional, genErr = s.generator.GenerateDimensionalRules(groupCtx, dimensionalPrompt)
		return genErr
	})
	group.Go(func() error {
		var genErr error
		crossColumn, genErr = s.generator.GenerateCrossColumnRules(groupCtx, crossColumnPrompt)
		return genErr
	})
	if err := group.Wait(); err != nil {
		log.Printf("[RuleService] generation %s failed: %v", generationID, err)
		return nil, err
	}

	outcome := s.normalizer.Normalize(dimensional, crossColumn)
	if outcome.Degraded {
		log.Printf("[RuleService] generation %s degraded: unrecognizable payload shape", generationID)
	}

	stats := profiler.BasicStats()
	analyzer := kpianalyzer.NewAnalyzer()
	report := analyzer.Analyze(outcome.RuleSet, &stats)

	result := &GenerationResult{
		GenerationID: generationID,
		RuleSet:      outcome.RuleSet,
		Degraded:     outcome.Degraded,
		Warnings:     outcome.Warnings,
		Report:       report,
		QualityScore: analyzer.QualityScore(),
		Summary:      analyzer.SummaryMetrics(),
		Categories:   analyzer.CategoryBreakdown(),
		Columns:      analyzer.ColumnCoverageAnalysis(),
		Validations:  analyzer.ValidationTypeBreakdown(),
		KPIExport:    analyzer.ExportReport(),
		BasicStats:   stats,
		Correlations: inputs.Correlations,
		ColumnTypes:  inputs.ColumnTypes,
	}

	log.Printf("[RuleService] generation %s complete: %d rules, quality score %.1f",
		generationID, report.TotalRules, result.QualityScore)
	return result, nil
}
