package app

import (
	"fmt"
	"io"

	"riskhypo/domain/dataset"
	"riskhypo/domain/insurance"
	"riskhypo/domain/segment"
	"riskhypo/domain/stats"
	"riskhypo/internal/config"
)

// HypothesisService runs the fixed battery of risk-uniformity hypotheses and
// writes a plain-language report: claim frequency and severity across
// provinces, frequency and margin across the busiest postal codes, and
// frequency and severity between genders.
type HypothesisService struct {
	cfg *config.Config
}

// NewHypothesisService creates a hypothesis service
func NewHypothesisService(cfg *config.Config) *HypothesisService {
	return &HypothesisService{cfg: cfg}
}

// Run normalizes the table and writes the full textual report to w. Missing
// columns produce skip messages; only a completely unusable dataset is an
// error.
func (s *HypothesisService) Run(t *dataset.Table, w io.Writer) error {
	schema := dataset.NewSchema(t)
	records := insurance.NewNormalizer(schema).Normalize(t)

	fmt.Fprintln(w, "--- Overall Summary ---")
	s.writeOverall(records, w)

	s.provinceTests(records, schema, w)
	s.postalCodeTests(records, schema, w)
	s.genderTests(records, schema, w)
	return nil
}

func (s *HypothesisService) writeOverall(records []insurance.PolicyRecord, w io.Writer) {
	var totalPremium, totalClaims float64
	for _, rec := range records {
		totalPremium += rec.Premium.OrZero()
		totalClaims += rec.Claims.OrZero()
	}
	if totalPremium != 0 {
		fmt.Fprintf(w, "Overall: TotalPremium=%.2f, TotalClaims=%.2f, LossRatio=%.4f\n",
			totalPremium, totalClaims, totalClaims/totalPremium)
	} else {
		fmt.Fprintf(w, "Overall: TotalPremium=%.2f, TotalClaims=%.2f, LossRatio=undefined\n",
			totalPremium, totalClaims)
	}
}

func (s *HypothesisService) provinceTests(records []insurance.PolicyRecord, schema dataset.Schema, w io.Writer) {
	if !schema.Has(dataset.ColProvince) {
		fmt.Fprintln(w, "Province column not found — skipping province tests")
		return
	}

	fmt.Fprintln(w, "\nTest: Claim frequency across Provinces (Chi-square)")
	res := stats.ChiSquareIndependence(attrLabels(records, dataset.ColProvince), occurredFlags(records))
	writeResult(w, "Chi2", res, "claim frequency across provinces")

	fmt.Fprintln(w, "\nTest: Claim severity across Provinces (Kruskal-Wallis)")
	samples := numericSamplesByAttr(records, dataset.ColProvince, severityOf)
	kw := stats.KruskalWallis(samples, s.cfg.Tests.MinGroupSize)
	if !kw.Applicable {
		fmt.Fprintln(w, "Not enough groups with sufficient claims for severity test")
		return
	}
	writeResult(w, "KW_stat", kw, "claim severity across provinces")
}

func (s *HypothesisService) postalCodeTests(records []insurance.PolicyRecord, schema dataset.Schema, w io.Writer) {
	if !schema.Has(dataset.ColPostalCode) {
		fmt.Fprintln(w, "PostalCode column not found — skipping zip code tests")
		return
	}

	topN := s.cfg.TopN.PostalCodes
	agg := segment.Summarize(records, dataset.ColPostalCode, topN)
	top := make(map[string]bool, len(agg.Groups))
	for _, g := range agg.Groups {
		top[g.Value] = true
	}

	var subset []insurance.PolicyRecord
	for _, rec := range records {
		if v, ok := rec.Attr(dataset.ColPostalCode); ok && top[v] {
			subset = append(subset, rec)
		}
	}
	fmt.Fprintf(w, "\nTop postal codes used for tests: %v\n", agg.TopValues(topN))

	fmt.Fprintf(w, "\nTest: Claim frequency across top PostalCodes (Chi-square)\n")
	res := stats.ChiSquareIndependence(attrLabels(subset, dataset.ColPostalCode), occurredFlags(subset))
	writeResult(w, "Chi2", res, "claim frequency across top postal codes")

	fmt.Fprintf(w, "\nTest: Margin differences across top PostalCodes (Kruskal-Wallis)\n")
	samples := numericSamplesByAttr(subset, dataset.ColPostalCode, marginOf)
	kw := stats.KruskalWallis(samples, s.cfg.Tests.MinGroupSize)
	if !kw.Applicable {
		fmt.Fprintln(w, "Not enough data for margin test across postal codes")
		return
	}
	writeResult(w, "KW_stat", kw, "margin across top postal codes")
}

func (s *HypothesisService) genderTests(records []insurance.PolicyRecord, schema dataset.Schema, w io.Writer) {
	if !schema.Has(dataset.ColGender) {
		fmt.Fprintln(w, "Gender column not found — skipping gender tests")
		return
	}

	fmt.Fprintln(w, "\nTest: Claim frequency between Genders (Chi-square)")
	res := stats.ChiSquareIndependence(attrLabels(records, dataset.ColGender), occurredFlags(records))
	if !res.Applicable {
		fmt.Fprintln(w, "Not enough gender categories for chi-square test")
		return
	}
	writeResult(w, "Chi2", res, "claim frequency between genders")

	fmt.Fprintln(w, "\nTest: Claim severity between Genders (Mann-Whitney U)")
	var male, female []float64
	for _, rec := range records {
		if !rec.ClaimSeverity.Valid {
			continue
		}
		switch g, _ := rec.Attr(dataset.ColGender); g {
		case "Male":
			male = append(male, rec.ClaimSeverity.Value)
		case "Female":
			female = append(female, rec.ClaimSeverity.Value)
		}
	}
	mw := stats.MannWhitneyU(male, female)
	if !mw.Applicable {
		fmt.Fprintln(w, "Insufficient gender-labeled claims for Mann-Whitney test")
		return
	}
	writeResult(w, "Mann-Whitney U stat", mw, "claim severity between genders")
}

// writeResult prints statistic, p-value and the fixed decision wording
func writeResult(w io.Writer, statLabel string, r stats.Result, subject string) {
	fmt.Fprintf(w, "%s=%.3f, p=%.4g\n", statLabel, r.Statistic, r.PValue)
	fmt.Fprintln(w, r.Conclusion(subject))
}

// attrLabels extracts the column's value per record, empty when missing
func attrLabels(records []insurance.PolicyRecord, column string) []string {
	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i], _ = rec.Attr(column)
	}
	return labels
}

// occurredFlags extracts the claim-occurred flag per record
func occurredFlags(records []insurance.PolicyRecord) []bool {
	flags := make([]bool, len(records))
	for i, rec := range records {
		flags[i] = rec.ClaimOccurred
	}
	return flags
}

func severityOf(rec insurance.PolicyRecord) insurance.Numeric { return rec.ClaimSeverity }
func marginOf(rec insurance.PolicyRecord) insurance.Numeric   { return rec.Margin }

// numericSamplesByAttr forms one sample per attribute value from the chosen
// metric, dropping missing values. Sample order follows the first-seen order
// of the attribute values; the rank tests are order-invariant.
func numericSamplesByAttr(records []insurance.PolicyRecord, column string, metric func(insurance.PolicyRecord) insurance.Numeric) [][]float64 {
	index := make(map[string]int)
	var samples [][]float64
	for _, rec := range records {
		v, ok := rec.Attr(column)
		if !ok || v == "" {
			continue
		}
		m := metric(rec)
		if !m.Valid {
			continue
		}
		i, seen := index[v]
		if !seen {
			i = len(samples)
			index[v] = i
			samples = append(samples, nil)
		}
		samples[i] = append(samples[i], m.Value)
	}
	return samples
}
