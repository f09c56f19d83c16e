package tabular

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "riskhypo/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReader_CSV(t *testing.T) {
	path := writeFile(t, "input.csv", " Province ,TotalPremium,TotalClaims\nGauteng, 100 ,0\nKZN,200,50\n")

	table, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	// Headers and cells are trimmed.
	if table.Columns[0] != "Province" {
		t.Errorf("header not trimmed: %q", table.Columns[0])
	}
	if table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", table.Len())
	}
	if v, _ := table.Rows[0].Get("TotalPremium"); v != "100" {
		t.Errorf("cell not trimmed: %q", v)
	}
}

func TestReader_PipeDelimitedTxt(t *testing.T) {
	path := writeFile(t, "rating.txt", "Province|TotalPremium|TotalClaims\nGauteng|100|0\n")

	table, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if v, ok := table.Rows[0].Get("Province"); !ok || v != "Gauteng" {
		t.Errorf("pipe-delimited parse failed: %q", v)
	}
}

func TestReader_TxtSniffsCommas(t *testing.T) {
	// A .txt file that is actually comma-separated.
	path := writeFile(t, "rating.txt", "Province,TotalPremium,TotalClaims\nGauteng,100,0\n")

	table, err := NewReader(path).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Columns) != 3 {
		t.Errorf("columns = %v, want 3 after comma sniff", table.Columns)
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.csv")).ReadTable()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if apperrors.GetCode(err) != apperrors.CodeNoInputData {
		t.Errorf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodeNoInputData)
	}
}

func TestReader_HeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "Province,TotalPremium\n")
	if _, err := NewReader(path).ReadTable(); err == nil {
		t.Fatal("a header-only file has no usable data")
	}
}
