package ai

// Prompt templates use {PLACEHOLDER} markers resolved by renderTemplate.
// Both templates pin the generator to a single JSON object, a mandatory
// pseudo_sql field, and the literal table name "table_name" so the
// output stays dataset-agnostic. The normalizer relies on this
// contract to keep repair work bounded.

const dimensionalTemplate = `Analyze this data sample and generate data quality rules. Focus on:
1. Accuracy: Identify plausible value ranges and patterns
2. Completeness: Required vs optional fields
3. Uniqueness: Fields that should be unique
4. Consistency: Cross-field validations
5. Timeliness: Date-related validations
6. Validity: Format and type validations

Data sample:
{DATA_SAMPLE}

Column info (inferred types and profiles):
{COLUMN_INFO}

{USER_CONTEXT}

Requirements for every rule:
- Include all four fields: "rule" (description), "columns" (list of column names), "type" (validation category), and "pseudo_sql".
- "pseudo_sql" must ALWAYS be present: a SELECT statement that returns the rows violating the rule.
- Use the literal table name "table_name" in every SQL statement so the rules are dataset-agnostic.

Respond with a single JSON object in exactly this format:
{
    "rules": {
        "accuracy": [{"rule": "...", "columns": ["..."], "type": "...", "pseudo_sql": "SELECT * FROM table_name WHERE ..."}],
        "completeness": [...],
        "uniqueness": [...],
        "consistency": [...],
        "timeliness": [...],
        "validity": [...]
    }
}`

const crossColumnTemplate = `Generate cross-column validation rules based on these columns and their correlations.

Columns:
{COLUMNS}

Correlations:
{CORRELATIONS}

{USER_CONTEXT}

Requirements for every rule:
- Each rule must span at least two columns.
- Include all four fields: "rule" (description), "columns_involved" (list of column names), "validation_type" (category), and "pseudo_sql".
- "pseudo_sql" must ALWAYS be present: a SELECT statement that returns the rows violating the rule.
- Use the literal table name "table_name" in every SQL statement so the rules are dataset-agnostic.

Respond with a single JSON object in exactly this format:
{
    "cross_column_rules": [
        {"rule": "rule description", "columns_involved": ["col1", "col2"], "validation_type": "type", "pseudo_sql": "SELECT * FROM table_name WHERE ..."}
    ]
}`
