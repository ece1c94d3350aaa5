package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"ruleforge/adapters/llm"
	"ruleforge/adapters/reader"
	"ruleforge/app"
	"ruleforge/internal/config"
	"ruleforge/internal/export"
)

// One-shot pipeline run: read a dataset file, generate and normalize
// rules, and write the three export documents next to each other.
func main() {
	filePath := flag.String("file", "", "path to a CSV or XLSX dataset")
	userContext := flag.String("context", "", "optional free-text context about the data")
	outDir := flag.String("out", ".", "directory for export files")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -file data.csv [-context \"...\"] [-out dir]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("[CLI] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CLI] configuration error: %v", err)
	}

	ds, err := reader.NewDataReader(*filePath).Read()
	if err != nil {
		log.Fatalf("[CLI] failed to read dataset: %v", err)
	}

	generator := llm.NewGenerator(cfg.AI)
	service := app.NewRuleService(generator, cfg.Data.SampleRows)

	result, err := service.GenerateRules(context.Background(), ds, *userContext)
	if err != nil {
		log.Fatalf("[CLI] rule generation failed: %v", err)
	}

	if result.Degraded {
		log.Printf("[CLI] warning: generation payload was unrecognizable, exported rule set is a placeholder")
	}

	rulesJSON, err := export.RulesJSON(result.RuleSet)
	if err != nil {
		log.Fatalf("[CLI] failed to encode rules: %v", err)
	}
	writeFile(*outDir, "data_quality_rules.json", rulesJSON)

	if export.HasSQL(result.RuleSet) {
		writeFile(*outDir, "data_quality_rules.sql", []byte(export.SQLScript(result.RuleSet)))
	}

	kpiJSON, err := export.KPIReportJSON(result.KPIExport)
	if err != nil {
		log.Fatalf("[CLI] failed to encode KPI report: %v", err)
	}
	writeFile(*outDir, "data_quality_kpi_report.json", kpiJSON)

	fmt.Printf("Generated %d rules (quality score %.1f/100) from %d rows x %d columns\n",
		result.Report.TotalRules, result.QualityScore, result.BasicStats.RowCount, result.BasicStats.ColumnCount)
}

func writeFile(dir, name string, data []byte) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("[CLI] failed to write %s: %v", path, err)
	}
	log.Printf("[CLI] wrote %s", path)
}
