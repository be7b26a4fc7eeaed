// Package postgres persists pair runs. The store is optional; the
// services run fully in-memory when no database is configured.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"promcorr/domain/core"
	"promcorr/models"
	"promcorr/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository.
func NewRunRepository(db *sqlx.DB) *RunRepositoryImpl {
	return &RunRepositoryImpl{db: db}
}

var _ ports.RunRepository = (*RunRepositoryImpl)(nil)

// EnsureSchema creates the pair_runs table when it does not exist.
func (r *RunRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pair_runs (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			metric_1 TEXT NOT NULL,
			metric_2 TEXT NOT NULL,
			status TEXT NOT NULL,
			cadence_ns BIGINT NOT NULL,
			tolerance_ns BIGINT NOT NULL,
			aligned_rows INT NOT NULL,
			rate_1 BOOLEAN NOT NULL,
			rate_2 BOOLEAN NOT NULL,
			correlation JSONB,
			normalized_correlation JSONB,
			lag JSONB,
			rate_of_change JSONB,
			rolling_summary JSONB
		)`)
	return err
}

// SaveRun upserts one run. Result blocks are stored as JSONB; nil blocks
// are stored as SQL NULL.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *models.PairRun) error {
	correlation, err := marshalNullable(run.Correlation)
	if err != nil {
		return err
	}
	normalized, err := marshalNullable(run.NormalizedCorrelation)
	if err != nil {
		return err
	}
	lag, err := marshalNullable(run.Lag)
	if err != nil {
		return err
	}
	rateOfChange, err := marshalNullable(run.RateOfChange)
	if err != nil {
		return err
	}
	rollingSummary, err := marshalNullable(run.RollingSummary)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pair_runs (
			id, created_at, metric_1, metric_2, status,
			cadence_ns, tolerance_ns, aligned_rows, rate_1, rate_2,
			correlation, normalized_correlation, lag, rate_of_change, rolling_summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			cadence_ns = EXCLUDED.cadence_ns,
			tolerance_ns = EXCLUDED.tolerance_ns,
			aligned_rows = EXCLUDED.aligned_rows,
			rate_1 = EXCLUDED.rate_1,
			rate_2 = EXCLUDED.rate_2,
			correlation = EXCLUDED.correlation,
			normalized_correlation = EXCLUDED.normalized_correlation,
			lag = EXCLUDED.lag,
			rate_of_change = EXCLUDED.rate_of_change,
			rolling_summary = EXCLUDED.rolling_summary`,
		run.ID, run.CreatedAt, run.Metric1, run.Metric2, run.Status,
		int64(run.Cadence), int64(run.Tolerance), run.AlignedRows, run.Rate1, run.Rate2,
		correlation, normalized, lag, rateOfChange, rollingSummary)
	return err
}

// GetRun retrieves one run by ID. Returns core.ErrRunNotFound when the ID
// is unknown.
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id uuid.UUID) (*models.PairRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, metric_1, metric_2, status,
			   cadence_ns, tolerance_ns, aligned_rows, rate_1, rate_2,
			   correlation, normalized_correlation, lag, rate_of_change, rolling_summary
		FROM pair_runs
		WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	return run, err
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*models.PairRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, metric_1, metric_2, status,
			   cadence_ns, tolerance_ns, aligned_rows, rate_1, rate_2,
			   correlation, normalized_correlation, lag, rate_of_change, rolling_summary
		FROM pair_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.PairRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.PairRun, error) {
	var run models.PairRun
	var cadence, tolerance int64
	var correlation, normalized, lag, rateOfChange, rollingSummary []byte

	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.Metric1, &run.Metric2, &run.Status,
		&cadence, &tolerance, &run.AlignedRows, &run.Rate1, &run.Rate2,
		&correlation, &normalized, &lag, &rateOfChange, &rollingSummary,
	)
	if err != nil {
		return nil, err
	}
	run.Cadence = time.Duration(cadence)
	run.Tolerance = time.Duration(tolerance)

	if err := unmarshalNullable(correlation, &run.Correlation); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(normalized, &run.NormalizedCorrelation); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(lag, &run.Lag); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(rateOfChange, &run.RateOfChange); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(rollingSummary, &run.RollingSummary); err != nil {
		return nil, err
	}
	return &run, nil
}

func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalNullable[T any](data []byte, out **T) error {
	if len(data) == 0 {
		return nil
	}
	*out = new(T)
	return json.Unmarshal(data, *out)
}
