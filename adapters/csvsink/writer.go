// Package csvsink writes assembled segment tables to CSV files, one file per
// table. Missing and inapplicable cells are emitted as empty fields so a real
// zero is never conflated with "undefined".
package csvsink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"riskhypo/domain/core"
	"riskhypo/domain/insurance"
	"riskhypo/domain/report"
	"riskhypo/domain/stats"
	apperrors "riskhypo/internal/errors"
)

// Header is the fixed column order of every emitted table
var Header = []string{
	"segment_value", "policies", "claims_count", "claim_freq",
	"total_premium", "total_claims", "loss_ratio",
	"z_freq_vs_rest", "p_freq_vs_rest",
	"mw_stat_severity_vs_rest", "p_severity_vs_rest",
}

// Sink writes tables into a directory
type Sink struct {
	outDir string
}

// New creates a CSV sink rooted at outDir, creating it if needed
func New(outDir string) (*Sink, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, apperrors.SinkError(fmt.Sprintf("failed to create output dir %s", outDir), err)
	}
	return &Sink{outDir: outDir}, nil
}

// SaveTable writes one table as <name>.csv
func (s *Sink) SaveTable(_ context.Context, _ core.RunID, name string, table report.Table) error {
	path := filepath.Join(s.outDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return apperrors.SinkError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return apperrors.SinkError("failed to write header", err)
	}
	for _, row := range table.Rows {
		record := []string{
			row.SegmentValue,
			strconv.Itoa(row.Policies),
			strconv.Itoa(row.ClaimsCount),
			formatNumeric(row.ClaimFreq),
			formatFloat(row.TotalPremium),
			formatFloat(row.TotalClaims),
			formatNumeric(row.LossRatio),
		}
		record = append(record, formatResult(row.FreqVsRest)...)
		record = append(record, formatResult(row.SeverityVsRest)...)
		if err := w.Write(record); err != nil {
			return apperrors.SinkError("failed to write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.SinkError(fmt.Sprintf("failed to flush %s", path), err)
	}
	return nil
}

// Path returns the file a table of the given name is written to
func (s *Sink) Path(name string) string {
	return filepath.Join(s.outDir, name+".csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatNumeric(n insurance.Numeric) string {
	if !n.Valid {
		return ""
	}
	return formatFloat(n.Value)
}

// formatResult renders (statistic, p_value), both empty when inapplicable
func formatResult(r stats.Result) []string {
	if !r.Applicable {
		return []string{"", ""}
	}
	return []string{formatFloat(r.Statistic), formatFloat(r.PValue)}
}
