package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskhypo/adapters/csvsink"
	"riskhypo/domain/dataset"
	"riskhypo/internal/testkit"
	"riskhypo/ports"
)

func testkitTable(t *testing.T) *dataset.Table {
	t.Helper()
	return testkit.GenerateTable(testkit.DefaultConfig())
}

func TestTableService_WritesTablesAndRecordsSkips(t *testing.T) {
	dir := t.TempDir()
	sink, err := csvsink.New(dir)
	require.NoError(t, err)

	table := testkitTable(t)
	svc := NewTableService(testConfig(t), []ports.ResultSink{sink}, nil)

	summary, err := svc.Run(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 2000, summary.InputRows)
	assert.NotEmpty(t, summary.RunID)

	// Province, make and gender columns exist in the synthetic dataset.
	assert.Contains(t, summary.Tables, "province_summary")
	assert.Contains(t, summary.Tables, "make_summary_top20")
	assert.Contains(t, summary.Tables, "gender_summary")
	for _, name := range summary.Tables {
		path := filepath.Join(dir, name+".csv")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	// PostalCode and Model are absent and must be recorded, not fatal.
	assert.Contains(t, summary.SkippedFor, dataset.ColPostalCode)
	assert.Contains(t, summary.SkippedFor, dataset.ColVehicleModel)
	assert.NotContains(t, summary.Tables, "postalcode_top10_summary")
}

func TestTableService_RerunsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	sink, err := csvsink.New(dir)
	require.NoError(t, err)

	table := testkitTable(t)
	svc := NewTableService(testConfig(t), []ports.ResultSink{sink}, nil)

	first, err := svc.Run(context.Background(), table)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(filepath.Join(dir, "province_summary.csv"))
	require.NoError(t, err)

	second, err := svc.Run(context.Background(), table)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(filepath.Join(dir, "province_summary.csv"))
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, firstBytes, secondBytes, "rerunning over the same input must rewrite identical tables")
}

func TestTableService_NoSinksStillSummarizes(t *testing.T) {
	svc := NewTableService(testConfig(t), nil, nil)
	summary, err := svc.Run(context.Background(), testkitTable(t))
	require.NoError(t, err)
	assert.Contains(t, summary.Tables, "province_summary")
}
