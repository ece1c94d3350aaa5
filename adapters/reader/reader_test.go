package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ruleforge/internal/errors"
)

func TestReadCSV(t *testing.T) {
	csvContent := "name,age,email\nAlice,34,a@example.com\nBob,28,b@example.com\n"

	ds, err := ReadCSV(strings.NewReader(csvContent))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if got := ds.ColumnCount(); got != 3 {
		t.Errorf("columns = %d, want 3", got)
	}
	if got := ds.RowCount(); got != 2 {
		t.Errorf("rows = %d, want 2", got)
	}
	if ds.Columns[0] != "name" || ds.Columns[2] != "email" {
		t.Errorf("header order lost: %v", ds.Columns)
	}
	if ds.Rows[0]["name"] != "Alice" {
		t.Errorf("first row name = %v, want Alice", ds.Rows[0]["name"])
	}
}

func TestReadCSVEmptyCellsBecomeMissing(t *testing.T) {
	csvContent := "name,age\nAlice,\n,28\n"

	ds, err := ReadCSV(strings.NewReader(csvContent))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if ds.Rows[0]["age"] != nil {
		t.Errorf("empty cell should be nil, got %v", ds.Rows[0]["age"])
	}
	if ds.Rows[1]["name"] != nil {
		t.Errorf("empty cell should be nil, got %v", ds.Rows[1]["name"])
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	// short record leaves trailing columns missing
	csvContent := "a,b,c\n1,2\n"

	ds, err := ReadCSV(strings.NewReader(csvContent))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if ds.Rows[0]["c"] != nil {
		t.Errorf("missing trailing cell should be nil, got %v", ds.Rows[0]["c"])
	}
}

func TestReadCSVBlankHeadersGetNames(t *testing.T) {
	csvContent := "name,,age\nAlice,x,34\n"

	ds, err := ReadCSV(strings.NewReader(csvContent))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if ds.Columns[1] != "column_2" {
		t.Errorf("blank header = %q, want column_2", ds.Columns[1])
	}
	if ds.Rows[0]["column_2"] != "x" {
		t.Errorf("value under generated header = %v, want x", ds.Rows[0]["column_2"])
	}
}

func TestReadCSVEmptyContent(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for empty content")
	}
	if errors.CodeOf(err) != errors.CodeDataset {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.CodeDataset)
	}
}

func TestDataReaderReadsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("id,label\n1,x\n2,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := NewDataReader(path).Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if ds.RowCount() != 2 {
		t.Errorf("rows = %d, want 2", ds.RowCount())
	}
}

func TestDataReaderMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.csv")).Read()
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.CodeOf(err) != errors.CodeDataset {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.CodeDataset)
	}
}

func TestDataReaderRejectsUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("id,label\n1,x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewDataReader(path).Read()
	if err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
	if errors.CodeOf(err) != errors.CodeDataset {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.CodeDataset)
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Errorf("error should name the unsupported type, got %q", err.Error())
	}
}

func TestDataReaderChoosesTypeFromExtension(t *testing.T) {
	if r := NewDataReader("data.csv"); r.fileType != "csv" {
		t.Errorf("fileType = %s, want csv", r.fileType)
	}
	if r := NewDataReader("data.XLSX"); r.fileType != "xlsx" {
		t.Errorf("fileType = %s, want xlsx", r.fileType)
	}
}

func TestReadExcelRejectsGarbage(t *testing.T) {
	_, err := ReadExcel(strings.NewReader("definitely not a zip archive"))
	if err == nil {
		t.Fatal("expected an error for non-xlsx content")
	}
	if errors.CodeOf(err) != errors.CodeDataset {
		t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.CodeDataset)
	}
}
