package ai

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"ruleforge/domain/dataset"
	"ruleforge/internal/profiling"
)

// PromptInputs carries everything the two generation requests are
// rendered from. UserContext is optional free text forwarded verbatim.
type PromptInputs struct {
	Columns      []string // dataset column order
	ColumnTypes  map[string]profiling.InferredType
	Profiles     map[string]profiling.ColumnProfile
	Sample       []dataset.Row
	Correlations profiling.CorrelationMatrix
	UserContext  string
}

// BuildDimensionalPrompt renders the request for rules across the six
// fixed quality dimensions.
func BuildDimensionalPrompt(in PromptInputs) (string, error) {
	sampleJSON, err := json.MarshalIndent(in.Sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode data sample: %w", err)
	}

	columnInfo := map[string]any{
		"types":    in.ColumnTypes,
		"profiles": in.Profiles,
	}
	columnJSON, err := json.MarshalIndent(columnInfo, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode column info: %w", err)
	}

	return renderTemplate(dimensionalTemplate, map[string]string{
		"DATA_SAMPLE":  string(sampleJSON),
		"COLUMN_INFO":  string(columnJSON),
		"USER_CONTEXT": contextBlock(in.UserContext),
	}), nil
}

// BuildCrossColumnPrompt renders the request for rules spanning two or
// more columns, given the column list and correlation matrix.
func BuildCrossColumnPrompt(in PromptInputs) (string, error) {
	columns := in.Columns
	if len(columns) == 0 {
		columns = make([]string, 0, len(in.ColumnTypes))
		for col := range in.ColumnTypes {
			columns = append(columns, col)
		}
		sort.Strings(columns)
	}

	columnsJSON, err := json.Marshal(columns)
	if err != nil {
		return "", fmt.Errorf("failed to encode column list: %w", err)
	}
	correlationsJSON, err := json.MarshalIndent(in.Correlations, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode correlations: %w", err)
	}

	return renderTemplate(crossColumnTemplate, map[string]string{
		"COLUMNS":      string(columnsJSON),
		"CORRELATIONS": string(correlationsJSON),
		"USER_CONTEXT": contextBlock(in.UserContext),
	}), nil
}

func contextBlock(userContext string) string {
	userContext = strings.TrimSpace(userContext)
	if userContext == "" {
		return ""
	}
	return "Additional context provided by the user:\n" + userContext
}

// renderTemplate replaces {PLACEHOLDER} markers with values.
func renderTemplate(template string, replacements map[string]string) string {
	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, "{"+placeholder+"}", value)
	}

	log.Printf("[PromptBuilder] Rendered prompt length: %d characters", len(result))
	return result
}
