// Package app wires the pipeline stages together: locate and normalize the
// dataset, aggregate segments, run the group-vs-rest comparisons and hand
// the assembled tables to the configured sinks.
package app

import (
	"context"
	"fmt"

	"riskhypo/domain/core"
	"riskhypo/domain/dataset"
	"riskhypo/domain/insurance"
	"riskhypo/domain/report"
	"riskhypo/internal"
	"riskhypo/internal/config"
	"riskhypo/ports"
)

// TableRunSummary describes one completed tables run
type TableRunSummary struct {
	RunID      core.RunID
	InputRows  int
	Tables     []string
	SkippedFor map[string]string // column -> reason
	StartedAt  core.Timestamp
}

// TableService produces the per-column segment report tables
type TableService struct {
	cfg    *config.Config
	sinks  []ports.ResultSink
	logger *internal.Logger
}

// NewTableService creates a table service writing to the given sinks
func NewTableService(cfg *config.Config, sinks []ports.ResultSink, logger *internal.Logger) *TableService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TableService{cfg: cfg, sinks: sinks, logger: logger}
}

// segmentation describes one requested output table
type segmentation struct {
	column string
	name   string
	topN   int
}

// plan lists the tables to emit for whichever columns the dataset carries
func (s *TableService) plan() []segmentation {
	return []segmentation{
		{column: dataset.ColProvince, name: "province_summary"},
		{column: dataset.ColPostalCode, name: fmt.Sprintf("postalcode_top%d_summary", s.cfg.TopN.PostalCodes), topN: s.cfg.TopN.PostalCodes},
		{column: dataset.ColVehicleMake, name: fmt.Sprintf("make_summary_top%d", s.cfg.TopN.Makes), topN: s.cfg.TopN.Makes},
		{column: dataset.ColVehicleModel, name: fmt.Sprintf("model_summary_top%d", s.cfg.TopN.Models), topN: s.cfg.TopN.Models},
		{column: dataset.ColGender, name: "gender_summary"},
	}
}

// Run executes one full tables pass over the raw table. Per-column failures
// are local: a missing column is recorded as skipped and the run continues.
func (s *TableService) Run(ctx context.Context, t *dataset.Table) (*TableRunSummary, error) {
	schema := dataset.NewSchema(t)
	records := insurance.NewNormalizer(schema).Normalize(t)

	summary := &TableRunSummary{
		RunID:      core.NewRunID(),
		InputRows:  len(records),
		SkippedFor: make(map[string]string),
		StartedAt:  core.Now(),
	}
	s.logger.Info("tables run %s over %d records", summary.RunID, summary.InputRows)

	for _, seg := range s.plan() {
		if !schema.Has(seg.column) {
			reason := fmt.Sprintf("column %q not found in dataset — skipping %s", seg.column, seg.name)
			s.logger.Warn("%s", reason)
			summary.SkippedFor[seg.column] = reason
			continue
		}

		table := report.Assemble(records, seg.column, seg.topN)
		for _, sink := range s.sinks {
			if err := sink.SaveTable(ctx, summary.RunID, seg.name, table); err != nil {
				// Sink failures are local to the table; the run continues.
				s.logger.Error("failed to persist %s: %v", seg.name, err)
				continue
			}
		}
		s.logger.Info("wrote %s (%d segments)", seg.name, len(table.Rows))
		summary.Tables = append(summary.Tables, seg.name)
	}

	return summary, nil
}
