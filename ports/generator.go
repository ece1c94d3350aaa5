package ports

import (
	"context"
	"encoding/json"
)

// DimensionalResult is the raw payload of a dimensional-rules
// generation call. Category values stay raw: the normalizer owns all
// shape coercion, so a generator that returns null or a scalar for a
// category does not fail here.
type DimensionalResult struct {
	Rules map[string]json.RawMessage `json:"rules"`
}

// CrossColumnResult is the raw payload of a cross-column generation call.
type CrossColumnResult struct {
	CrossColumnRules json.RawMessage `json:"cross_column_rules"`
}

// RuleGeneratorPort is the boundary to the external rule-generating
// service. One synchronous call per logical ask; transport, auth, and
// malformed-JSON failures surface as errors with no retry at this
// layer.
type RuleGeneratorPort interface {
	GenerateDimensionalRules(ctx context.Context, prompt string) (*DimensionalResult, error)
	GenerateCrossColumnRules(ctx context.Context, prompt string) (*CrossColumnResult, error)
}
