package llm

import (
	"context"
	"log"

	"ruleforge/internal/config"
	"ruleforge/internal/errors"
	"ruleforge/ports"
)

// Generator implements ports.RuleGeneratorPort against a
// chat-completion service. One synchronous request per logical ask, no
// retries: retry policy, if any, belongs to the transport.
type Generator struct {
	dimensional *StructuredClient[ports.DimensionalResult]
	crossColumn *StructuredClient[ports.CrossColumnResult]
}

// NewGenerator creates a generator with a fixed model identity.
func NewGenerator(cfg config.AIConfig) *Generator {
	return &Generator{
		dimensional: NewStructuredClient[ports.DimensionalResult](cfg),
		crossColumn: NewStructuredClient[ports.CrossColumnResult](cfg),
	}
}

// GenerateDimensionalRules asks for rules across the six quality
// dimensions.
func (g *Generator) GenerateDimensionalRules(ctx context.Context, prompt string) (*ports.DimensionalResult, error) {
	result, err := g.dimensional.GetJSONResponse(ctx, prompt)
	if err != nil {
		log.Printf("[Generator] dimensional rules call failed: %v", err)
		return nil, errors.GenerationFailure("dimensional rule generation failed", err)
	}
	return result, nil
}

// GenerateCrossColumnRules asks for rules spanning two or more columns.
func (g *Generator) GenerateCrossColumnRules(ctx context.Context, prompt string) (*ports.CrossColumnResult, error) {
	result, err := g.crossColumn.GetJSONResponse(ctx, prompt)
	if err != nil {
		log.Printf("[Generator] cross-column rules call failed: %v", err)
		return nil, errors.GenerationFailure("cross-column rule generation failed", err)
	}
	return result, nil
}
