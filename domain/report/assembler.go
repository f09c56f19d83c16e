// Package report merges segment aggregates with group-vs-rest test results
// into the ranked tables the pipeline emits, one table per segmentation
// column.
package report

import (
	"riskhypo/domain/insurance"
	"riskhypo/domain/segment"
	"riskhypo/domain/stats"
)

// Row is one emitted table row: a segment's aggregates plus its two
// comparisons against the complement of the dataset.
type Row struct {
	SegmentValue   string
	Policies       int
	ClaimsCount    int
	ClaimFreq      insurance.Numeric
	TotalPremium   float64
	TotalClaims    float64
	LossRatio      insurance.Numeric
	FreqVsRest     stats.Result // two-proportion z on claim frequency
	SeverityVsRest stats.Result // Mann-Whitney U on claim severity
}

// Table is one complete segment report, ordered by policy count descending
type Table struct {
	Column string
	Rows   []Row
}

// Assemble builds the segment-vs-rest table for one categorical column. The
// rest side of each comparison is recomputed per group as the exact
// complement: frequency counts come from the remainder of the non-missing
// partition, and the severity sample is every other record's severity
// (records with a missing segment value fall into the rest sample).
func Assemble(records []insurance.PolicyRecord, column string, topN int) Table {
	agg := segment.Summarize(records, column, topN)

	// Severity samples per segment value; records without the attribute
	// contribute to every group's complement.
	severityByValue := make(map[string][]float64)
	var missingSeverity []float64
	totalSeverity := 0
	for _, rec := range records {
		if !rec.ClaimSeverity.Valid {
			continue
		}
		totalSeverity++
		if v, ok := rec.Attr(column); ok && v != "" {
			severityByValue[v] = append(severityByValue[v], rec.ClaimSeverity.Value)
		} else {
			missingSeverity = append(missingSeverity, rec.ClaimSeverity.Value)
		}
	}

	rows := make([]Row, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		row := Row{
			SegmentValue: g.Value,
			Policies:     g.Policies,
			ClaimsCount:  g.ClaimsCount,
			ClaimFreq:    g.ClaimFrequency(),
			TotalPremium: g.TotalPremium,
			TotalClaims:  g.TotalClaims,
			LossRatio:    g.LossRatio(),
		}

		restN := agg.TotalPolicies - g.Policies
		restK := agg.TotalClaims - g.ClaimsCount
		if restN > 0 {
			row.FreqVsRest = stats.TwoProportionZ(g.ClaimsCount, g.Policies, restK, restN)
		} else {
			row.FreqVsRest = stats.Inapplicable(stats.TestProportionZ, "empty complement")
		}

		groupSample := severityByValue[g.Value]
		restSample := make([]float64, 0, totalSeverity-len(groupSample))
		for v, s := range severityByValue {
			if v != g.Value {
				restSample = append(restSample, s...)
			}
		}
		restSample = append(restSample, missingSeverity...)
		row.SeverityVsRest = stats.MannWhitneyU(groupSample, restSample)

		rows = append(rows, row)
	}

	return Table{Column: column, Rows: rows}
}
