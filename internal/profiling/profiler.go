package profiling

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"ruleforge/domain/dataset"
)

// DefaultTypeSampleCap bounds how many non-missing values are sampled
// per column during type inference.
const DefaultTypeSampleCap = 100

// Profiler derives column types, descriptive profiles, and pairwise
// correlations from an already-parsed dataset. All operations are pure
// and non-failing: malformed cells fall through the missing-value
// convention instead of raising.
type Profiler struct {
	ds            *dataset.Dataset
	typeSampleCap int
}

// NewProfiler creates a profiler over one dataset.
func NewProfiler(ds *dataset.Dataset) *Profiler {
	return &Profiler{ds: ds, typeSampleCap: DefaultTypeSampleCap}
}

// InferTypes classifies every column. The check order is fixed and
// significant: date before numeric before boolean before string, so a
// column of date-like strings is a date even when every value would
// also survive other checks.
func (p *Profiler) InferTypes() map[string]InferredType {
	types := make(map[string]InferredType, len(p.ds.Columns))
	for _, col := range p.ds.Columns {
		types[col] = p.inferColumnType(col)
	}
	return types
}

func (p *Profiler) inferColumnType(col string) InferredType {
	sample := p.sampleColumn(col, p.typeSampleCap)
	if len(sample) == 0 {
		return TypeUnknown
	}

	if _, ok := parseDate(sample[0]); ok {
		return TypeDate
	}

	if numeric, allWhole := checkNumeric(sample); numeric {
		if allWhole {
			return TypeInteger
		}
		return TypeFloat
	}

	if allBoolean(sample) {
		return TypeBoolean
	}

	return TypeString
}

// ProfileColumns builds the per-column descriptive profiles. Numeric
// min/max/mean/std are attached only for numeric-typed columns.
func (p *Profiler) ProfileColumns() map[string]ColumnProfile {
	types := p.InferTypes()
	profiles := make(map[string]ColumnProfile, len(p.ds.Columns))

	for _, col := range p.ds.Columns {
		profile := ColumnProfile{
			UniqueCount:  p.uniqueCount(col),
			MissingCount: p.missingCount(col),
			SampleValues: p.sampleColumn(col, 5),
		}

		if types[col].IsNumeric() {
			if values := p.numericValues(col); len(values) > 0 {
				minVal, _ := stats.Min(values)
				maxVal, _ := stats.Max(values)
				meanVal, _ := stats.Mean(values)
				profile.Min = &minVal
				profile.Max = &maxVal
				profile.Mean = &meanVal
				// sample std needs two values; NaN would poison JSON encoding
				if len(values) > 1 {
					if stdVal, err := stats.StandardDeviationSample(values); err == nil && !math.IsNaN(stdVal) {
						profile.Std = &stdVal
					}
				}
			}
		}

		profiles[col] = profile
	}
	return profiles
}

// Correlate computes the pairwise Pearson correlation matrix over all
// numeric columns, using pairwise-complete observations. Empty when
// fewer than two numeric columns exist.
func (p *Profiler) Correlate() CorrelationMatrix {
	types := p.InferTypes()
	numericCols := make([]string, 0)
	for _, col := range p.ds.Columns {
		if types[col].IsNumeric() {
			numericCols = append(numericCols, col)
		}
	}
	if len(numericCols) < 2 {
		return CorrelationMatrix{}
	}

	matrix := make(CorrelationMatrix, len(numericCols))
	for _, col := range numericCols {
		matrix[col] = make(map[string]float64, len(numericCols))
	}

	for i, colX := range numericCols {
		matrix[colX][colX] = 1.0
		for _, colY := range numericCols[i+1:] {
			r := p.pearson(colX, colY)
			matrix[colX][colY] = r
			matrix[colY][colX] = r
		}
	}
	return matrix
}

func (p *Profiler) pearson(colX, colY string) float64 {
	var xs, ys []float64
	for _, row := range p.ds.Rows {
		x, okX := asFloat(row[colX])
		y, okY := asFloat(row[colY])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// Sample returns the first n rows as field -> value records.
func (p *Profiler) Sample(n int) []dataset.Row {
	return p.ds.Head(n)
}

// BasicStats reports row/column counts and per-column missing counts.
func (p *Profiler) BasicStats() BasicStats {
	missing := make(map[string]int, len(p.ds.Columns))
	for _, col := range p.ds.Columns {
		missing[col] = p.missingCount(col)
	}
	return BasicStats{
		RowCount:      p.ds.RowCount(),
		ColumnCount:   p.ds.ColumnCount(),
		MissingValues: missing,
	}
}

func (p *Profiler) sampleColumn(col string, limit int) []any {
	out := make([]any, 0, limit)
	for _, row := range p.ds.Rows {
		if dataset.IsMissing(row[col]) {
			continue
		}
		out = append(out, row[col])
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (p *Profiler) missingCount(col string) int {
	n := 0
	for _, row := range p.ds.Rows {
		if dataset.IsMissing(row[col]) {
			n++
		}
	}
	return n
}

func (p *Profiler) uniqueCount(col string) int {
	seen := make(map[string]struct{})
	for _, row := range p.ds.Rows {
		if dataset.IsMissing(row[col]) {
			continue
		}
		seen[fmt.Sprintf("%v", row[col])] = struct{}{}
	}
	return len(seen)
}

func (p *Profiler) numericValues(col string) []float64 {
	values := make([]float64, 0, len(p.ds.Rows))
	for _, row := range p.ds.Rows {
		if v, ok := asFloat(row[col]); ok {
			values = append(values, v)
		}
	}
	return values
}

// dateLayouts are the formats a text cell may carry and still count as
// a date. Bare numerics are deliberately absent so integer columns are
// never misread as dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"January 2, 2006",
}

func parseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// checkNumeric reports whether every sampled value parses as a number,
// and whether all of them are whole.
func checkNumeric(sample []any) (numeric bool, allWhole bool) {
	allWhole = true
	for _, v := range sample {
		f, ok := asFloat(v)
		if !ok {
			return false, false
		}
		if f != math.Trunc(f) {
			allWhole = false
		}
	}
	return true, allWhole
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func allBoolean(sample []any) bool {
	for _, v := range sample {
		switch val := v.(type) {
		case bool:
		case string:
			lower := strings.ToLower(strings.TrimSpace(val))
			if lower != "true" && lower != "false" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
