// Package profiling produces the data-quality profile of a raw dataset:
// descriptive statistics for the financial columns, missing-value counts and
// transaction-month parseability.
package profiling

import (
	"time"

	"github.com/montanaflynn/stats"

	"riskhypo/domain/dataset"
	"riskhypo/domain/insurance"
)

// ColumnSummary holds descriptive statistics for one numeric column
type ColumnSummary struct {
	Column string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Profile is the complete data-quality report for a table
type Profile struct {
	Rows          int
	Columns       int
	Numeric       []ColumnSummary
	MissingCounts map[string]int
	ParsedMonths  int // TransactionMonth cells that parse as dates
}

// monthFormats are the TransactionMonth layouts seen in the raw exports
var monthFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"1/2/2006",
}

// Profiler computes data-quality profiles
type Profiler struct{}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Analyze profiles the table. Numeric columns are cleaned with the same
// coercion the normalizer uses, so the reported counts match the effective
// sample sizes downstream.
func (p *Profiler) Analyze(t *dataset.Table) (*Profile, error) {
	profile := &Profile{
		Rows:          t.Len(),
		Columns:       len(t.Columns),
		MissingCounts: make(map[string]int),
	}
	schema := dataset.NewSchema(t)

	for _, col := range t.Columns {
		for _, row := range t.Rows {
			if _, ok := row.Get(col); !ok {
				profile.MissingCounts[col]++
			}
		}
	}

	for _, col := range []string{dataset.ColTotalPremium, dataset.ColTotalClaims, dataset.ColCustomValue} {
		if !schema.Has(col) {
			continue
		}
		summary, err := describeColumn(t, col)
		if err != nil {
			return nil, err
		}
		profile.Numeric = append(profile.Numeric, summary)
	}

	if schema.Has(dataset.ColTransactionMonth) {
		for _, row := range t.Rows {
			if v, ok := row.Get(dataset.ColTransactionMonth); ok && parsesAsMonth(v) {
				profile.ParsedMonths++
			}
		}
	}

	return profile, nil
}

func describeColumn(t *dataset.Table, col string) (ColumnSummary, error) {
	var values []float64
	for _, row := range t.Rows {
		if raw, ok := row.Get(col); ok {
			if n := insurance.CleanNumeric(raw); n.Valid {
				values = append(values, n.Value)
			}
		}
	}

	summary := ColumnSummary{Column: col, Count: len(values)}
	if len(values) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(values); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviationSample(values); err != nil {
		// A single observation has no sample stddev; report 0.
		summary.StdDev = 0
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return summary, err
	}
	if summary.Q25, err = stats.Percentile(values, 25); err != nil {
		return summary, err
	}
	if summary.Q75, err = stats.Percentile(values, 75); err != nil {
		return summary, err
	}
	return summary, nil
}

func parsesAsMonth(v string) bool {
	for _, layout := range monthFormats {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
