package profiling

// InferredType classifies a column after sampling its values.
type InferredType string

const (
	TypeInteger InferredType = "integer"
	TypeFloat   InferredType = "float"
	TypeDate    InferredType = "date"
	TypeBoolean InferredType = "boolean"
	TypeString  InferredType = "string"
	TypeUnknown InferredType = "unknown"
)

// IsNumeric reports whether the type carries numeric statistics.
func (t InferredType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// ColumnProfile is the descriptive profile of one column. Numeric
// statistics are present iff the inferred type is numeric.
type ColumnProfile struct {
	UniqueCount  int      `json:"unique_count"`
	MissingCount int      `json:"missing_count"`
	SampleValues []any    `json:"sample_values"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Mean         *float64 `json:"mean,omitempty"`
	Std          *float64 `json:"std,omitempty"`
}

// BasicStats summarizes the dataset shape before any generation runs.
type BasicStats struct {
	RowCount      int            `json:"row_count"`
	ColumnCount   int            `json:"column_count"`
	MissingValues map[string]int `json:"missing_values"`
}

// ColumnsWithMissing counts columns that have at least one missing cell.
func (s BasicStats) ColumnsWithMissing() int {
	n := 0
	for _, count := range s.MissingValues {
		if count > 0 {
			n++
		}
	}
	return n
}

// CorrelationMatrix maps column -> column -> Pearson coefficient.
// Populated only when the dataset has at least two numeric columns.
type CorrelationMatrix map[string]map[string]float64
