// Package segment groups normalized policy records by a categorical column
// and reduces each group to the counts and sums the risk tables are built
// from.
package segment

import (
	"sort"

	"riskhypo/domain/insurance"
)

// Summary is one row of an aggregation: all records sharing one value of the
// segment column.
type Summary struct {
	Value        string
	Policies     int
	ClaimsCount  int
	TotalPremium float64
	TotalClaims  float64
}

// ClaimFrequency returns the fraction of the group's policies with a claim
func (s Summary) ClaimFrequency() insurance.Numeric {
	if s.Policies == 0 {
		return insurance.Missing()
	}
	return insurance.Num(float64(s.ClaimsCount) / float64(s.Policies))
}

// LossRatio returns total claims over total premium, missing when the
// premium sum is 0.
func (s Summary) LossRatio() insurance.Numeric {
	if s.TotalPremium == 0 {
		return insurance.Missing()
	}
	return insurance.Num(s.TotalClaims / s.TotalPremium)
}

// Aggregation is the result of partitioning a record set by one column.
// Totals cover the full non-missing partition even when a top-N cut trims
// Groups, so vs-rest complements stay exact. Dropped counts records whose
// segment value was missing; together with the groups they account for every
// record exactly once.
type Aggregation struct {
	Column         string
	Groups         []Summary
	TotalPolicies  int
	TotalClaims    int // claim-occurred count over the partition
	DroppedMissing int
	DroppedPremium float64 // premium sum of the dropped-missing records
}

// Summarize partitions records by the given attribute column. Records with a
// missing value are dropped from grouping (they stay visible through the
// Dropped counters). Policies are counted as unique PolicyIDs when the
// records carry them, falling back to row count. Groups are ordered by
// policy count descending, ties broken by segment value ascending; topN > 0
// keeps only the first topN groups after that sort.
func Summarize(records []insurance.PolicyRecord, column string, topN int) Aggregation {
	type bucket struct {
		rows      int
		claims    int
		premium   float64
		claimsSum float64
		policyIDs map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	agg := Aggregation{Column: column}

	for _, rec := range records {
		value, ok := rec.Attr(column)
		if !ok || value == "" {
			agg.DroppedMissing++
			agg.DroppedPremium += rec.Premium.OrZero()
			continue
		}
		b := buckets[value]
		if b == nil {
			b = &bucket{policyIDs: make(map[string]struct{})}
			buckets[value] = b
		}
		b.rows++
		if rec.ClaimOccurred {
			b.claims++
		}
		b.premium += rec.Premium.OrZero()
		b.claimsSum += rec.Claims.OrZero()
		if rec.PolicyID != "" {
			b.policyIDs[rec.PolicyID] = struct{}{}
		}
	}

	groups := make([]Summary, 0, len(buckets))
	for value, b := range buckets {
		policies := b.rows
		// Unique-policy counting when the group's rows carry IDs.
		if len(b.policyIDs) > 0 {
			policies = len(b.policyIDs)
		}
		groups = append(groups, Summary{
			Value:        value,
			Policies:     policies,
			ClaimsCount:  b.claims,
			TotalPremium: b.premium,
			TotalClaims:  b.claimsSum,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Policies != groups[j].Policies {
			return groups[i].Policies > groups[j].Policies
		}
		return groups[i].Value < groups[j].Value
	})

	for _, g := range groups {
		agg.TotalPolicies += g.Policies
		agg.TotalClaims += g.ClaimsCount
	}

	if topN > 0 && len(groups) > topN {
		groups = groups[:topN]
	}
	agg.Groups = groups

	return agg
}

// TopValues returns the segment values of the first n groups, in order
func (a Aggregation) TopValues(n int) []string {
	if n > len(a.Groups) {
		n = len(a.Groups)
	}
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = a.Groups[i].Value
	}
	return values
}
