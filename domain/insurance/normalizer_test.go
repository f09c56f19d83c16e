package insurance

import (
	"math"
	"testing"

	"riskhypo/domain/dataset"
)

func TestCleanNumeric(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    float64
		missing bool
	}{
		{"plain", "123.45", 123.45, false},
		{"thousands separators", "1,234,567.89", 1234567.89, false},
		{"surrounding whitespace", "  250.00  ", 250, false},
		{"currency symbol", "R1,500.50", 1500.50, false},
		{"parenthesized negative", "(123.45)", -123.45, false},
		{"negative", "-42", -42, false},
		{"empty", "", 0, true},
		{"garbage", "N/A", 0, true},
		{"letters", "abc123", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanNumeric(tc.raw)
			if tc.missing {
				if got.Valid {
					t.Fatalf("CleanNumeric(%q) = %v, want missing", tc.raw, got.Value)
				}
				return
			}
			if !got.Valid {
				t.Fatalf("CleanNumeric(%q) is missing, want %v", tc.raw, tc.want)
			}
			if math.Abs(got.Value-tc.want) > 1e-9 {
				t.Fatalf("CleanNumeric(%q) = %v, want %v", tc.raw, got.Value, tc.want)
			}
		})
	}
}

func testTable(header []string, rows [][]string) *dataset.Table {
	return dataset.NewTable(header, rows)
}

func TestNormalize_DerivedMetrics(t *testing.T) {
	table := testTable(
		[]string{"PolicyID", "Province", "TotalPremium", "TotalClaims"},
		[][]string{
			{"P1", "A", "100", "0"},
			{"P2", "A", "100", "50"},
			{"P3", "B", "0", "25"},
			{"P4", "B", "100", "bogus"},
		},
	)

	records := NewNormalizer(dataset.NewSchema(table)).Normalize(table)
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	// No claim: severity missing, not zero.
	if records[0].ClaimOccurred {
		t.Error("P1 should have no claim")
	}
	if records[0].ClaimSeverity.Valid {
		t.Error("P1 severity should be missing")
	}
	if !records[0].Margin.Valid || records[0].Margin.Value != 100 {
		t.Errorf("P1 margin = %+v, want 100", records[0].Margin)
	}
	if !records[0].LossRatio.Valid || records[0].LossRatio.Value != 0 {
		t.Errorf("P1 loss ratio = %+v, want 0", records[0].LossRatio)
	}

	// Claim occurred: severity equals the claim amount.
	if !records[1].ClaimOccurred {
		t.Error("P2 should have a claim")
	}
	if !records[1].ClaimSeverity.Valid || records[1].ClaimSeverity.Value != 50 {
		t.Errorf("P2 severity = %+v, want 50", records[1].ClaimSeverity)
	}
	if records[1].LossRatio.Value != 0.5 {
		t.Errorf("P2 loss ratio = %v, want 0.5", records[1].LossRatio.Value)
	}

	// Zero premium: loss ratio undefined, margin still defined.
	if records[2].LossRatio.Valid {
		t.Error("P3 loss ratio should be missing for zero premium")
	}
	if !records[2].Margin.Valid || records[2].Margin.Value != -25 {
		t.Errorf("P3 margin = %+v, want -25", records[2].Margin)
	}

	// Unparseable claims: coerced to missing, claim treated as not occurred.
	if records[3].Claims.Valid {
		t.Error("P4 claims should be missing")
	}
	if records[3].ClaimOccurred {
		t.Error("P4 should not count as a claim")
	}
	if records[3].Margin.Valid {
		t.Error("P4 margin should be missing when claims are missing")
	}
}

func TestNormalize_AbsentPremiumColumn(t *testing.T) {
	table := testTable(
		[]string{"Province", "TotalClaims"},
		[][]string{
			{"A", "50"},
			{"B", "0"},
		},
	)

	records := NewNormalizer(dataset.NewSchema(table)).Normalize(table)
	for i, rec := range records {
		if rec.Margin.Valid {
			t.Errorf("record %d: margin should be missing without a premium column", i)
		}
		if rec.LossRatio.Valid {
			t.Errorf("record %d: loss ratio should be missing without a premium column", i)
		}
	}
	// Claim occurrence still derives from claims alone.
	if !records[0].ClaimOccurred || records[1].ClaimOccurred {
		t.Error("claim occurrence should not depend on the premium column")
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	table := testTable(
		[]string{"TotalPremium", "TotalClaims"},
		[][]string{{"1,000", "10"}},
	)
	NewNormalizer(dataset.NewSchema(table)).Normalize(table)
	if table.Rows[0]["TotalPremium"] != "1,000" {
		t.Error("normalization must not mutate the raw table")
	}
}
