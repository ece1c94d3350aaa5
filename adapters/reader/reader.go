package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ruleforge/domain/dataset"
	"ruleforge/internal/errors"
)

// DataReader loads CSV and XLSX files into an in-memory Dataset.
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader for the given file, choosing the
// format from the extension. Unsupported extensions are rejected at
// read time rather than guessed at.
func NewDataReader(filePath string) *DataReader {
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Dataset. All failures surface as dataset
// errors and abort the pipeline before profiling.
func (r *DataReader) Read() (*dataset.Dataset, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetError(fmt.Sprintf("file not found: %s", r.filePath), err)
	}

	switch r.fileType {
	case "csv":
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, errors.DatasetError("failed to open CSV file", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.DatasetError(fmt.Sprintf("unsupported file type: %s", r.filePath), nil)
	}
}

// ReadCSV parses CSV content into a Dataset. The first record is the
// header; empty cells become missing values.
func ReadCSV(src io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DatasetError("failed to parse CSV content", err)
	}
	if len(records) == 0 {
		return nil, errors.DatasetError("CSV content is empty", nil)
	}

	return buildDataset(records)
}

// ReadExcel parses XLSX content from a stream, e.g. a multipart upload.
func ReadExcel(src io.Reader) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.DatasetError("failed to open Excel content", err)
	}
	defer f.Close()
	return datasetFromWorkbook(f)
}

func (r *DataReader) readExcel() (*dataset.Dataset, error) {
	startTime := time.Now()

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.DatasetError("failed to open Excel file", err)
	}
	defer f.Close()

	ds, err := datasetFromWorkbook(f)
	if err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Read %d rows x %d columns in %v",
		ds.RowCount(), ds.ColumnCount(), time.Since(startTime))
	return ds, nil
}

func datasetFromWorkbook(f *excelize.File) (*dataset.Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DatasetError("Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DatasetError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	if len(rows) == 0 {
		return nil, errors.DatasetError("Excel sheet is empty", nil)
	}

	return buildDataset(rows)
}

// buildDataset converts header + records into a Dataset. Short records
// leave trailing columns missing; extra cells are dropped.
func buildDataset(records [][]string) (*dataset.Dataset, error) {
	header := records[0]
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		columns = append(columns, name)
	}
	if len(columns) == 0 {
		return nil, errors.DatasetError("header row has no columns", nil)
	}

	rows := make([]dataset.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			if i < len(record) && strings.TrimSpace(record[i]) != "" {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}

	return &dataset.Dataset{Columns: columns, Rows: rows}, nil
}
