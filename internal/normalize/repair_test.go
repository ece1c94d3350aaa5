package normalize

import (
	"testing"

	"ruleforge/domain/rules"
)

func TestSynthesizeSQL(t *testing.T) {
	tests := []struct {
		name     string
		rule     rules.Rule
		category rules.Category
		want     string
	}{
		{
			name:     "age range heuristic",
			rule:     rules.Rule{Rule: "age must be positive", Columns: rules.StringList{"age"}, Type: "range"},
			category: rules.Accuracy,
			want:     "SELECT * FROM table_name WHERE age < 0 OR age > 120",
		},
		{
			name:     "salary range heuristic",
			rule:     rules.Rule{Rule: "salary must be between bounds", Columns: rules.StringList{"salary"}, Type: "range"},
			category: rules.Accuracy,
			want:     "SELECT * FROM table_name WHERE salary < 0",
		},
		{
			name:     "single column null check",
			rule:     rules.Rule{Rule: "email must not be null", Columns: rules.StringList{"email"}, Type: "null_check"},
			category: rules.Completeness,
			want:     "SELECT * FROM table_name WHERE email IS NULL",
		},
		{
			name:     "multi column null check chains with OR",
			rule:     rules.Rule{Rule: "required fields must not be null", Columns: rules.StringList{"a", "b"}, Type: "null_check"},
			category: rules.Completeness,
			want:     "SELECT * FROM table_name WHERE a IS NULL OR b IS NULL",
		},
		{
			name:     "unique rule groups by column",
			rule:     rules.Rule{Rule: "ids are unique", Columns: rules.StringList{"id"}, Type: "unique"},
			category: rules.Uniqueness,
			want:     "SELECT id, COUNT(*) FROM table_name GROUP BY id HAVING COUNT(*) > 1",
		},
		{
			name:     "composite unique groups by all columns",
			rule:     rules.Rule{Rule: "order lines are unique", Columns: rules.StringList{"order_id", "line_no"}, Type: "composite_unique"},
			category: rules.Uniqueness,
			want:     "SELECT order_id, line_no, COUNT(*) FROM table_name GROUP BY order_id, line_no HAVING COUNT(*) > 1",
		},
		{
			name:     "active and age business rule",
			rule:     rules.Rule{Rule: "active customers must be at least 18 years of age", Columns: rules.StringList{"active", "age"}, Type: "business"},
			category: rules.CrossColumn,
			want:     "SELECT * FROM table_name WHERE active = true AND age < 18",
		},
		{
			name:     "active and name logical rule",
			rule:     rules.Rule{Rule: "active records must have a name", Columns: rules.StringList{"active", "name"}, Type: "logical"},
			category: rules.Consistency,
			want:     "SELECT * FROM table_name WHERE active = true AND (name IS NULL OR name = '')",
		},
		{
			name:     "department membership rule",
			rule:     rules.Rule{Rule: "department must be a known department", Columns: rules.StringList{"department"}, Type: "categorical"},
			category: rules.Validity,
			want:     "SELECT * FROM table_name WHERE department NOT IN ('HR', 'Engineering', 'Sales', 'Marketing', 'Finance')",
		},
		{
			name:     "default falls back to null check",
			rule:     rules.Rule{Rule: "status looks reasonable", Columns: rules.StringList{"status"}, Type: "business"},
			category: rules.Consistency,
			want:     "SELECT * FROM table_name WHERE status IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeSQL(&tt.rule, tt.category)
			if got != tt.want {
				t.Errorf("SynthesizeSQL() =\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestSynthesizeSQLEmailPattern(t *testing.T) {
	r := rules.Rule{Rule: "email must match the standard format", Columns: rules.StringList{"email"}, Type: "pattern"}
	got := SynthesizeSQL(&r, rules.Validity)
	if got == "" {
		t.Fatal("expected a pattern rejection query")
	}
	if want := "SELECT * FROM table_name WHERE email NOT REGEXP"; len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("unexpected query: %s", got)
	}
}

func TestSynthesizeSQLDatePattern(t *testing.T) {
	r := rules.Rule{Rule: "dates must use ISO format", Columns: rules.StringList{"start_date"}, Type: "pattern"}
	got := SynthesizeSQL(&r, rules.Timeliness)
	want := `SELECT * FROM table_name WHERE start_date NOT REGEXP '^[0-9]{4}-[0-9]{2}-[0-9]{2}$'`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSynthesizeSQLNoColumns(t *testing.T) {
	r := rules.Rule{Rule: "something should hold", Type: "business"}
	if got := SynthesizeSQL(&r, rules.Consistency); got != "" {
		t.Errorf("no columns must yield no SQL, got %s", got)
	}
}
