package app

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskhypo/domain/dataset"
	"riskhypo/internal/config"
	"riskhypo/internal/testkit"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestHypothesisService_DetectsProvinceContrast(t *testing.T) {
	table := testkit.GenerateTable(testkit.DefaultConfig())

	var out bytes.Buffer
	err := NewHypothesisService(testConfig(t)).Run(table, &out)
	require.NoError(t, err)
	report := out.String()

	assert.Contains(t, report, "--- Overall Summary ---")
	assert.Contains(t, report, "Test: Claim frequency across Provinces (Chi-square)")
	// The synthetic 30% vs 5% split must be detected.
	assert.Contains(t, report, "RESULT: Reject H0 — claim frequency across provinces differs (p < 0.05)")
	assert.Contains(t, report, "Test: Claim severity between Genders (Mann-Whitney U)")
}

func TestHypothesisService_SkipsAbsentColumns(t *testing.T) {
	cfg := testkit.DefaultConfig()
	table := testkit.GenerateTable(cfg)

	// Strip gender and postal data by rebuilding without those columns.
	for i := range table.Rows {
		delete(table.Rows[i], "Gender")
	}
	table.Columns = []string{"PolicyID", "Province", "make", "TotalPremium", "TotalClaims"}

	var out bytes.Buffer
	err := NewHypothesisService(testConfig(t)).Run(table, &out)
	require.NoError(t, err)
	report := out.String()

	assert.Contains(t, report, "Gender column not found — skipping gender tests")
	assert.Contains(t, report, "PostalCode column not found — skipping zip code tests")
	// The province tests still ran.
	assert.Contains(t, report, "Chi2=")
}

func TestHypothesisService_UniformRiskFailsToReject(t *testing.T) {
	// Two provinces with byte-identical claim patterns: 15% frequency and the
	// same severity cycle, so the chi-square observed counts equal expected.
	header := []string{"PolicyID", "Province", "TotalPremium", "TotalClaims"}
	provinces := []string{"Gauteng", "Western Cape"}
	var rows [][]string
	for i := 0; i < 2000; i++ {
		claims := "0"
		if (i/2)%20 < 3 {
			claims = fmt.Sprintf("%d", 3000+(i/2%5)*100)
		}
		rows = append(rows, []string{
			fmt.Sprintf("P%06d", i), provinces[i%2], "500", claims,
		})
	}
	table := dataset.NewTable(header, rows)

	var out bytes.Buffer
	err := NewHypothesisService(testConfig(t)).Run(table, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Fail to reject H0 — no evidence of differences in claim frequency across provinces")
}
