// Package postgres persists assembled segment tables, keyed by run, for
// later comparison across runs.
package postgres

import (
	"context"
	"database/sql"

	"riskhypo/domain/core"
	"riskhypo/domain/insurance"
	"riskhypo/domain/report"
	"riskhypo/domain/stats"
	"riskhypo/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ResultRepository implements ports.ResultSink for PostgreSQL
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a repository over an existing connection
func NewResultRepository(db *sqlx.DB) ports.ResultSink {
	return &ResultRepository{db: db}
}

// Connect opens a PostgreSQL connection and makes sure the results table
// exists.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS segment_results (
			run_id                   TEXT NOT NULL,
			table_name               TEXT NOT NULL,
			segment_value            TEXT NOT NULL,
			policies                 BIGINT NOT NULL,
			claims_count             BIGINT NOT NULL,
			claim_freq               DOUBLE PRECISION,
			total_premium            DOUBLE PRECISION NOT NULL,
			total_claims             DOUBLE PRECISION NOT NULL,
			loss_ratio               DOUBLE PRECISION,
			z_freq_vs_rest           DOUBLE PRECISION,
			p_freq_vs_rest           DOUBLE PRECISION,
			mw_stat_severity_vs_rest DOUBLE PRECISION,
			p_severity_vs_rest       DOUBLE PRECISION,
			position                 INT NOT NULL,
			created_at               TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, table_name, segment_value)
		)`)
	return err
}

// SaveTable upserts every row of one segment table
func (r *ResultRepository) SaveTable(ctx context.Context, runID core.RunID, name string, table report.Table) error {
	for i, row := range table.Rows {
		zStat, zP := nullableResult(row.FreqVsRest)
		mwStat, mwP := nullableResult(row.SeverityVsRest)
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO segment_results (
				run_id, table_name, segment_value, policies, claims_count,
				claim_freq, total_premium, total_claims, loss_ratio,
				z_freq_vs_rest, p_freq_vs_rest,
				mw_stat_severity_vs_rest, p_severity_vs_rest, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (run_id, table_name, segment_value) DO UPDATE SET
				policies = EXCLUDED.policies,
				claims_count = EXCLUDED.claims_count,
				claim_freq = EXCLUDED.claim_freq,
				total_premium = EXCLUDED.total_premium,
				total_claims = EXCLUDED.total_claims,
				loss_ratio = EXCLUDED.loss_ratio,
				z_freq_vs_rest = EXCLUDED.z_freq_vs_rest,
				p_freq_vs_rest = EXCLUDED.p_freq_vs_rest,
				mw_stat_severity_vs_rest = EXCLUDED.mw_stat_severity_vs_rest,
				p_severity_vs_rest = EXCLUDED.p_severity_vs_rest,
				position = EXCLUDED.position`,
			runID.String(), name, row.SegmentValue, row.Policies, row.ClaimsCount,
			nullableNumeric(row.ClaimFreq), row.TotalPremium, row.TotalClaims,
			nullableNumeric(row.LossRatio), zStat, zP, mwStat, mwP, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// nullableNumeric maps a missing Numeric to SQL NULL
func nullableNumeric(n insurance.Numeric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: n.Value, Valid: n.Valid}
}

// nullableResult maps an inapplicable Result to a pair of SQL NULLs
func nullableResult(r stats.Result) (sql.NullFloat64, sql.NullFloat64) {
	if !r.Applicable {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: r.Statistic, Valid: true},
		sql.NullFloat64{Float64: r.PValue, Valid: true}
}
