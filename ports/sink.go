package ports

import (
	"context"

	"riskhypo/domain/core"
	"riskhypo/domain/report"
)

// ResultSink persists one assembled segment table. name is a stable,
// filesystem-safe table identifier (e.g. "province_summary").
type ResultSink interface {
	SaveTable(ctx context.Context, runID core.RunID, name string, table report.Table) error
}
