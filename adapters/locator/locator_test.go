package locator

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "riskhypo/internal/errors"
)

func TestLocate_FirstExistingWins(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.csv")
	if err := os.WriteFile(second, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New([]string{filepath.Join(dir, "first.csv"), second})
	path, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != second {
		t.Errorf("path = %q, want %q", path, second)
	}
}

func TestLocate_NothingFoundIsTerminal(t *testing.T) {
	l := New([]string{filepath.Join(t.TempDir(), "absent.csv")})
	_, err := l.Locate()
	if err == nil {
		t.Fatal("expected error when no candidate exists")
	}
	if apperrors.GetCode(err) != apperrors.CodeNoInputData {
		t.Errorf("code = %s, want %s", apperrors.GetCode(err), apperrors.CodeNoInputData)
	}
}

func TestReadTable_LoadsLocatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("Province,TotalPremium\nA,100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := New([]string{path}).ReadTable()
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("rows = %d, want 1", table.Len())
	}
}
