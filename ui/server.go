package ui

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"ruleforge/adapters/reader"
	"ruleforge/app"
	"ruleforge/domain/dataset"
	"ruleforge/domain/rules"
	"ruleforge/internal/errors"
	"ruleforge/internal/export"
	kpianalyzer "ruleforge/internal/kpi"
	"ruleforge/internal/profiling"
)

// Server exposes the rule-generation pipeline over HTTP. Every request
// is self-contained: the dataset travels with the request and nothing
// is persisted across calls.
type Server struct {
	router  *gin.Engine
	service *app.RuleService
	port    string
}

// NewServer wires the HTTP routes over one rule service.
func NewServer(service *app.RuleService, port string) *Server {
	s := &Server{
		router:  gin.New(),
		service: service,
		port:    port,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/preview", s.handlePreview)
	api.POST("/generate", s.handleGenerate)
	api.POST("/export/rules", s.handleExportRules)
	api.POST("/export/sql", s.handleExportSQL)
	api.POST("/export/kpi", s.handleExportKPI)
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	log.Printf("[Server] listening on :%s", s.port)
	return s.router.Run(":" + s.port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handlePreview parses an uploaded dataset and returns its first rows,
// basic stats, and inferred column types without calling the generator.
func (s *Server) handlePreview(c *gin.Context) {
	ds, ok := s.datasetFromRequest(c)
	if !ok {
		return
	}

	profiler := profiling.NewProfiler(ds)
	stats := profiler.BasicStats()
	c.JSON(http.StatusOK, gin.H{
		"preview":                     orderedPreview(ds, 5),
		"columns":                     ds.Columns,
		"column_types":                profiler.InferTypes(),
		"basic_stats":                 stats,
		"columns_with_missing_values": stats.ColumnsWithMissing(),
	})
}

// handleGenerate runs the full pipeline for an uploaded dataset plus
// optional free-text context.
func (s *Server) handleGenerate(c *gin.Context) {
	ds, ok := s.datasetFromRequest(c)
	if !ok {
		return
	}
	userContext := c.PostForm("context")

	result, err := s.service.GenerateRules(c.Request.Context(), ds, userContext)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generation_id":      result.GenerationID,
		"rules":              result.RuleSet,
		"display_sections":   export.FormatRulesForDisplay(result.RuleSet),
		"degraded":           result.Degraded,
		"warnings":           result.Warnings,
		"kpi_report":         result.Report,
		"quality_score":      result.QualityScore,
		"summary_metrics":    result.Summary,
		"category_breakdown": result.Categories,
		"column_coverage":    result.Columns,
		"validation_types":   result.Validations,
		"basic_stats":        result.BasicStats,
	})
}

// exportRequest is a rule set posted back for export formatting.
type exportRequest struct {
	Rules rules.RuleSet         `json:"rules" binding:"required"`
	Stats *profiling.BasicStats `json:"basic_stats,omitempty"`
}

func (s *Server) handleExportRules(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, errors.DatasetError("request body must carry a rules object", err))
		return
	}

	doc, err := export.RulesJSON(req.Rules)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data_quality_rules.json"`)
	c.Data(http.StatusOK, "application/json", doc)
}

func (s *Server) handleExportSQL(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, errors.DatasetError("request body must carry a rules object", err))
		return
	}

	if !export.HasSQL(req.Rules) {
		s.renderError(c, errors.New(errors.CodeDataset, "rule set contains no SQL checks"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data_quality_rules.sql"`)
	c.Data(http.StatusOK, "text/plain", []byte(export.SQLScript(req.Rules)))
}

func (s *Server) handleExportKPI(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, errors.DatasetError("request body must carry a rules object", err))
		return
	}

	analyzer := kpianalyzer.NewAnalyzer()
	analyzer.Analyze(req.Rules, req.Stats)
	doc, err := export.KPIReportJSON(analyzer.ExportReport())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="data_quality_kpi_report.json"`)
	c.Data(http.StatusOK, "application/json", doc)
}

// datasetFromRequest reads the uploaded file from the multipart form.
// On failure it writes the error response and returns ok=false.
func (s *Server) datasetFromRequest(c *gin.Context) (*dataset.Dataset, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.renderError(c, errors.DatasetError("request must include a dataset file upload", err))
		return nil, false
	}

	ds, err := parseUpload(fileHeader)
	if err != nil {
		s.renderError(c, err)
		return nil, false
	}
	return ds, true
}

func parseUpload(fileHeader *multipart.FileHeader) (*dataset.Dataset, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.DatasetError("failed to open uploaded file", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		return reader.ReadCSV(file)
	case ".xlsx":
		return reader.ReadExcel(file)
	default:
		return nil, errors.DatasetError(fmt.Sprintf("unsupported file type: %s", fileHeader.Filename), nil)
	}
}

// orderedPreview returns the head rows as column-ordered value lists so
// JSON consumers keep the original column order.
func orderedPreview(ds *dataset.Dataset, n int) [][]any {
	head := ds.Head(n)
	preview := make([][]any, 0, len(head))
	for _, row := range head {
		values := make([]any, len(ds.Columns))
		for i, col := range ds.Columns {
			values[i] = row[col]
		}
		preview = append(preview, values)
	}
	return preview
}

// renderError maps the error taxonomy onto HTTP responses. Users always
// get a readable message, never a stack trace.
func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeDataset:
		status = http.StatusBadRequest
	case errors.CodeGeneration:
		status = http.StatusBadGateway
	}

	log.Printf("[Server] request failed (%s): %v", code, err)
	c.JSON(status, gin.H{"code": code, "error": err.Error()})
}
