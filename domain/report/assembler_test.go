package report

import (
	"reflect"
	"testing"

	"riskhypo/domain/dataset"
	"riskhypo/domain/stats"
	"riskhypo/internal/testkit"
)

func TestAssemble_OrderingAndShape(t *testing.T) {
	records := testkit.GenerateRecords(testkit.DefaultConfig())
	table := Assemble(records, dataset.ColProvince, 0)

	if table.Column != dataset.ColProvince {
		t.Errorf("column = %q", table.Column)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 provinces, got %d", len(table.Rows))
	}
	for i := 1; i < len(table.Rows); i++ {
		if table.Rows[i].Policies > table.Rows[i-1].Policies {
			t.Error("rows must be ordered by policy count descending")
		}
	}
	for _, row := range table.Rows {
		if row.ClaimFreq.Valid && (row.ClaimFreq.Value < 0 || row.ClaimFreq.Value > 1) {
			t.Errorf("claim frequency out of bounds: %+v", row.ClaimFreq)
		}
	}
}

func TestAssemble_DetectsFrequencyContrast(t *testing.T) {
	// The default synthetic dataset has a 30% vs 5% claim-rate split.
	records := testkit.GenerateRecords(testkit.DefaultConfig())
	table := Assemble(records, dataset.ColProvince, 0)

	for _, row := range table.Rows {
		if !row.FreqVsRest.Applicable {
			t.Fatalf("frequency test inapplicable for %s: %s", row.SegmentValue, row.FreqVsRest.Reason)
		}
		if !row.FreqVsRest.Significant() {
			t.Errorf("province %s should differ from rest, p=%v", row.SegmentValue, row.FreqVsRest.PValue)
		}
	}

	// Severity also differs by construction (4000 vs 2500 means).
	for _, row := range table.Rows {
		if !row.SeverityVsRest.Applicable {
			t.Fatalf("severity test inapplicable for %s: %s", row.SegmentValue, row.SeverityVsRest.Reason)
		}
	}
}

func TestAssemble_SmallGroupsInapplicable(t *testing.T) {
	cfg := testkit.DefaultConfig()
	cfg.Rows = 40 // too few claims for the rank test on either side
	cfg.ClaimRates = map[string]float64{"Gauteng": 0.10, "Western Cape": 0.10}
	records := testkit.GenerateRecords(cfg)

	table := Assemble(records, dataset.ColProvince, 0)
	for _, row := range table.Rows {
		if row.SeverityVsRest.Applicable {
			t.Errorf("severity test for %s should be inapplicable with so few claims", row.SegmentValue)
		}
		if row.SeverityVsRest.Kind != stats.TestMannWhitney {
			t.Errorf("severity test kind = %q", row.SeverityVsRest.Kind)
		}
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	records := testkit.GenerateRecords(testkit.DefaultConfig())
	first := Assemble(records, dataset.ColProvince, 0)
	second := Assemble(records, dataset.ColProvince, 0)
	if !reflect.DeepEqual(first, second) {
		t.Error("assembling the same records twice must produce identical tables")
	}
}

func TestAssemble_ComplementCounts(t *testing.T) {
	records := testkit.GenerateRecords(testkit.DefaultConfig())
	table := Assemble(records, dataset.ColProvince, 0)

	total := 0
	for _, row := range table.Rows {
		total += row.Policies
	}
	// With two groups, each group's complement is exactly the other group;
	// the symmetric z statistics must negate each other.
	if len(table.Rows) == 2 {
		z1 := table.Rows[0].FreqVsRest.Statistic
		z2 := table.Rows[1].FreqVsRest.Statistic
		if z1+z2 > 1e-9 || z1+z2 < -1e-9 {
			t.Errorf("two-group z statistics should negate: %v and %v", z1, z2)
		}
	}
	if total != len(records) {
		t.Errorf("policies across groups = %d, want %d", total, len(records))
	}
}
