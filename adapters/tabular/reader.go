// Package tabular reads the raw insurance dataset from CSV, pipe-delimited
// text or Excel files into a dataset.Table.
package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"riskhypo/domain/dataset"
	apperrors "riskhypo/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading CSV, delimited-text and Excel files
type Reader struct {
	filePath string
	fileType string // "csv", "txt" or "xlsx"
}

// NewReader creates a reader for the given file, inferring the format from
// its extension. Unknown extensions are treated as CSV.
func NewReader(filePath string) *Reader {
	fileType := "csv"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx":
		fileType = "xlsx"
	case ".txt":
		fileType = "txt"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a Table with trimmed headers and cells
func (r *Reader) ReadTable() (*dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, apperrors.NoInputData(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcel()
	default:
		return r.readDelimited()
	}
}

// readDelimited reads CSV and pipe-delimited text files. For .txt inputs the
// delimiter defaults to '|' but falls back to ',' when the header line
// clearly uses commas.
func (r *Reader) readDelimited() (*dataset.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.MalformedInput(fmt.Sprintf("failed to open %s", r.filePath), err)
	}
	defer file.Close()

	sep := ','
	if r.fileType == "txt" {
		sep = sniffDelimiter(file)
		if _, err := file.Seek(0, 0); err != nil {
			return nil, apperrors.MalformedInput("failed to rewind input file", err)
		}
	}

	reader := csv.NewReader(file)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.MalformedInput(fmt.Sprintf("failed to parse %s", r.filePath), err)
	}
	if len(rows) < 2 {
		return nil, apperrors.NoInputData("input file must have a header row and at least one data row")
	}

	log.Printf("[tabular] %s read with sep=%q (%d rows)", r.filePath, sep, len(rows)-1)
	return dataset.NewTable(rows[0], rows[1:]), nil
}

// readExcel reads Sheet1 of an Excel workbook
func (r *Reader) readExcel() (*dataset.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.MalformedInput("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, apperrors.MalformedInput("failed to read Sheet1", err)
	}
	if len(rows) < 2 {
		return nil, apperrors.NoInputData("Excel file must have a header row and at least one data row")
	}

	log.Printf("[tabular] %s read from Sheet1 (%d rows)", r.filePath, len(rows)-1)
	return dataset.NewTable(rows[0], rows[1:]), nil
}

// sniffDelimiter inspects the first line: more commas than pipes means the
// .txt file is really comma-separated.
func sniffDelimiter(file *os.File) rune {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if scanner.Scan() {
		first := scanner.Text()
		if strings.Count(first, ",") > strings.Count(first, "|") {
			return ','
		}
	}
	return '|'
}
