package normalize

import (
	"fmt"
	"strings"

	"ruleforge/domain/rules"
)

// sqlHeuristic pairs a predicate with a synthesizer. The table is
// evaluated top-down and the first match wins, so new heuristics are
// row additions rather than deeper branch nesting.
type sqlHeuristic struct {
	name    string
	matches func(text, ruleType string, cols []string) bool
	build   func(cols []string) string
}

var sqlHeuristics = []sqlHeuristic{
	{
		name: "null_check",
		matches: func(text, ruleType string, cols []string) bool {
			return ruleType == "null_check" || strings.Contains(text, "null")
		},
		build: nullCheckSQL,
	},
	{
		name: "unique",
		matches: func(text, ruleType string, cols []string) bool {
			return ruleType == "unique" || ruleType == "composite_unique" || strings.Contains(text, "unique")
		},
		build: func(cols []string) string {
			colList := strings.Join(cols, ", ")
			return fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s HAVING COUNT(*) > 1",
				colList, rules.PlaceholderTable, colList)
		},
	},
	{
		name: "range",
		matches: func(text, ruleType string, cols []string) bool {
			return ruleType == "range" || strings.Contains(text, "between")
		},
		build: func(cols []string) string {
			if col, ok := findColumn(cols, "age"); ok {
				return fmt.Sprintf("SELECT * FROM %s WHERE %s < 0 OR %s > 120", rules.PlaceholderTable, col, col)
			}
			if col, ok := findColumn(cols, "salary"); ok {
				return fmt.Sprintf("SELECT * FROM %s WHERE %s < 0", rules.PlaceholderTable, col)
			}
			return nullCheckSQL(cols)
		},
	},
	{
		name: "pattern",
		matches: func(text, ruleType string, cols []string) bool {
			return ruleType == "pattern" || ruleType == "format" ||
				strings.Contains(text, "format") || strings.Contains(text, "pattern")
		},
		build: func(cols []string) string {
			if col, ok := findColumn(cols, "email"); ok {
				return fmt.Sprintf(`SELECT * FROM %s WHERE %s NOT REGEXP '^[A-Za-z0-9._%%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$'`,
					rules.PlaceholderTable, col)
			}
			if col, ok := findColumn(cols, "date"); ok {
				return fmt.Sprintf(`SELECT * FROM %s WHERE %s NOT REGEXP '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'`,
					rules.PlaceholderTable, col)
			}
			return nullCheckSQL(cols)
		},
	},
	{
		name: "active_name_consistency",
		matches: func(text, ruleType string, cols []string) bool {
			return mentions(text, cols, "active") && mentions(text, cols, "name")
		},
		build: func(cols []string) string {
			return fmt.Sprintf("SELECT * FROM %s WHERE active = true AND (name IS NULL OR name = '')", rules.PlaceholderTable)
		},
	},
	{
		name: "active_age_business",
		matches: func(text, ruleType string, cols []string) bool {
			return mentions(text, cols, "active") && mentions(text, cols, "age")
		},
		build: func(cols []string) string {
			return fmt.Sprintf("SELECT * FROM %s WHERE active = true AND age < 18", rules.PlaceholderTable)
		},
	},
	{
		name: "department_membership",
		matches: func(text, ruleType string, cols []string) bool {
			return mentions(text, cols, "department")
		},
		build: func(cols []string) string {
			return fmt.Sprintf("SELECT * FROM %s WHERE department NOT IN ('HR', 'Engineering', 'Sales', 'Marketing', 'Finance')", rules.PlaceholderTable)
		},
	},
	{
		name: "default_null_check",
		matches: func(text, ruleType string, cols []string) bool {
			return true
		},
		build: nullCheckSQL,
	},
}

func nullCheckSQL(cols []string) string {
	predicates := make([]string, len(cols))
	for i, col := range cols {
		predicates[i] = col + " IS NULL"
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s", rules.PlaceholderTable, strings.Join(predicates, " OR "))
}

// mentions reports whether the rule text or one of its column names
// contains the fragment.
func mentions(text string, cols []string, fragment string) bool {
	if strings.Contains(text, fragment) {
		return true
	}
	_, ok := findColumn(cols, fragment)
	return ok
}

// findColumn returns the first column whose lowercase name contains the
// given fragment.
func findColumn(cols []string, fragment string) (string, bool) {
	for _, col := range cols {
		if strings.Contains(strings.ToLower(col), fragment) {
			return col, true
		}
	}
	return "", false
}

// SynthesizeSQL builds a best-effort violation query for a rule that
// arrived without one. It never fails; when the rule lists no columns
// there is nothing to synthesize against and the empty string is
// returned, which downstream consumers treat as "no SQL available".
func SynthesizeSQL(r *rules.Rule, category rules.Category) string {
	cols := r.EffectiveColumns()
	if len(cols) == 0 {
		return ""
	}

	text := strings.ToLower(r.Rule)
	ruleType := strings.ToLower(r.EffectiveType())

	for _, h := range sqlHeuristics {
		if h.matches(text, ruleType, cols) {
			return h.build(cols)
		}
	}
	return ""
}
