// Package stats implements the hypothesis tests used for segment-vs-rest
// risk comparisons: a pooled two-proportion z-test, Pearson's chi-square
// independence test, Kruskal-Wallis and Mann-Whitney U. Each test is a pure
// function returning either an applicable Result or the explicit
// inapplicable state; p-values come from gonum's exact distributions.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample-size gates for the rank tests
const (
	DefaultMinGroupSize   = 20 // Kruskal-Wallis: minimum per-group sample
	MinMannWhitneySamples = 10 // Mann-Whitney: minimum per-side sample
)

// MissingCategory is the explicit bucket the chi-square test uses for
// records whose segment value is absent.
const MissingCategory = "MISSING"

// TwoProportionZ tests H0: p1 = p2 for proportions k1/n1 and k2/n2 under a
// pooled-variance null, two-sided. Inapplicable when either n is zero or the
// pooled standard error degenerates (pooled proportion of 0 or 1).
func TwoProportionZ(k1, n1, k2, n2 int) Result {
	if n1 == 0 || n2 == 0 {
		return Inapplicable(TestProportionZ, "empty sample")
	}

	p1 := float64(k1) / float64(n1)
	p2 := float64(k2) / float64(n2)
	pPool := float64(k1+k2) / float64(n1+n2)
	se := math.Sqrt(pPool * (1 - pPool) * (1/float64(n1) + 1/float64(n2)))
	if se == 0 || math.IsNaN(se) {
		return Inapplicable(TestProportionZ, "degenerate pooled variance")
	}

	z := (p1 - p2) / se
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	return applicable(TestProportionZ, z, p)
}

// ChiSquareIndependence tests independence of segment value and claim
// occurrence over the entire dataset. Missing segment values are coerced to
// the MissingCategory bucket rather than dropped. labels and occurred must
// be parallel slices, one entry per record.
func ChiSquareIndependence(labels []string, occurred []bool) Result {
	if len(labels) != len(occurred) || len(labels) == 0 {
		return Inapplicable(TestChiSquare, "empty sample")
	}

	counts := make(map[string][2]int)
	for i, label := range labels {
		if label == "" {
			label = MissingCategory
		}
		cell := counts[label]
		if occurred[i] {
			cell[1]++
		} else {
			cell[0]++
		}
		counts[label] = cell
	}

	if len(counts) < 2 {
		return Inapplicable(TestChiSquare, "fewer than 2 segment categories")
	}

	// Deterministic row order for the contingency table.
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := len(keys)
	rowTotals := make([]float64, rows)
	colTotals := [2]float64{}
	total := 0.0
	for i, k := range keys {
		cell := counts[k]
		rowTotals[i] = float64(cell[0] + cell[1])
		colTotals[0] += float64(cell[0])
		colTotals[1] += float64(cell[1])
		total += rowTotals[i]
	}

	chi2 := 0.0
	for i, k := range keys {
		cell := counts[k]
		for j := 0; j < 2; j++ {
			expected := rowTotals[i] * colTotals[j] / total
			if expected > 0 {
				observed := float64(cell[j])
				diff := observed - expected
				chi2 += diff * diff / expected
			}
		}
	}

	df := float64(rows - 1) // (rows-1) * (cols-1), cols fixed at 2
	p := distuv.ChiSquared{K: df}.Survival(chi2)
	return applicable(TestChiSquare, chi2, p)
}

// KruskalWallis runs the rank-based H test across the given samples,
// discarding any sample smaller than minGroupSize first. At least two
// qualifying samples are required; otherwise the test is inapplicable. The
// statistic is tie-corrected and the p-value uses the asymptotic chi-square
// approximation with k-1 degrees of freedom.
func KruskalWallis(samples [][]float64, minGroupSize int) Result {
	if minGroupSize <= 0 {
		minGroupSize = DefaultMinGroupSize
	}

	var qualifying [][]float64
	for _, s := range samples {
		if len(s) >= minGroupSize {
			qualifying = append(qualifying, s)
		}
	}
	if len(qualifying) < 2 {
		return Inapplicable(TestKruskalWallis, "fewer than 2 groups meet the minimum size")
	}

	var combined []float64
	for _, s := range qualifying {
		combined = append(combined, s...)
	}
	n := float64(len(combined))

	ranks, tieSizes := midranks(combined)

	// Sum of squared rank totals per group.
	h := 0.0
	offset := 0
	for _, s := range qualifying {
		var rankSum float64
		for i := range s {
			rankSum += ranks[offset+i]
		}
		h += rankSum * rankSum / float64(len(s))
		offset += len(s)
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	correction := 1 - tieCorrectionSum(tieSizes)/(n*n*n-n)
	if correction == 0 {
		return Inapplicable(TestKruskalWallis, "all observations are identical")
	}
	h /= correction

	df := float64(len(qualifying) - 1)
	p := distuv.ChiSquared{K: df}.Survival(h)
	return applicable(TestKruskalWallis, h, p)
}

// MannWhitneyU compares two samples with the two-sided Mann-Whitney U test,
// using the tie-corrected normal approximation with continuity correction.
// The statistic is the U of the first sample. Inapplicable when either side
// has fewer than MinMannWhitneySamples observations.
func MannWhitneyU(x, y []float64) Result {
	if len(x) < MinMannWhitneySamples || len(y) < MinMannWhitneySamples {
		return Inapplicable(TestMannWhitney, "fewer than 10 observations in a sample")
	}

	n1 := float64(len(x))
	n2 := float64(len(y))
	n := n1 + n2

	combined := make([]float64, 0, len(x)+len(y))
	combined = append(combined, x...)
	combined = append(combined, y...)
	ranks, tieSizes := midranks(combined)

	var rankSum float64
	for i := range x {
		rankSum += ranks[i]
	}
	u := rankSum - n1*(n1+1)/2

	mean := n1 * n2 / 2
	variance := n1 * n2 / 12 * ((n + 1) - tieCorrectionSum(tieSizes)/(n*(n-1)))
	if variance <= 0 {
		return Inapplicable(TestMannWhitney, "degenerate rank variance")
	}

	// Continuity correction pulls the statistic half a rank toward the mean.
	numerator := u - mean
	switch {
	case numerator > 0:
		numerator -= 0.5
	case numerator < 0:
		numerator += 0.5
	}

	z := numerator / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return applicable(TestMannWhitney, u, p)
}
