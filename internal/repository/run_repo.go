package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/themizzi/uxverify/internal/database"
	"github.com/themizzi/uxverify/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for verification runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun stores a finished run and its checks in one transaction
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertRun := `
		INSERT INTO verification_runs (id, target, driver, passed, abort_error, screenshots, started_at, finished_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
	`
	screenshots := run.Screenshots
	if screenshots == nil {
		screenshots = []string{}
	}
	if _, err := tx.ExecContext(ctx, insertRun,
		run.ID,
		run.Target,
		run.Driver,
		run.Passed(),
		run.AbortError,
		pq.Array(screenshots),
		run.StartedAt,
		run.FinishedAt,
	); err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	insertCheck := `
		INSERT INTO verification_checks (run_id, position, step, status, message)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, check := range run.Checks {
		if _, err := tx.ExecContext(ctx, insertCheck, run.ID, i, check.Step, string(check.Status), check.Message); err != nil {
			return fmt.Errorf("failed to create check %s: %w", check.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run and its checks by id
func (r *RunRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `
		SELECT id, target, driver, COALESCE(abort_error, ''), screenshots, started_at, finished_at
		FROM verification_runs
		WHERE id = $1
	`

	run := &models.Run{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Target,
		&run.Driver,
		&run.AbortError,
		pq.Array(&run.Screenshots),
		&run.StartedAt,
		&run.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := r.loadChecks(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRecentRuns returns the newest runs first, checks included
func (r *RunRepository) ListRecentRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	query := `
		SELECT id, target, driver, COALESCE(abort_error, ''), screenshots, started_at, finished_at
		FROM verification_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		if err := rows.Scan(
			&run.ID,
			&run.Target,
			&run.Driver,
			&run.AbortError,
			pq.Array(&run.Screenshots),
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	for _, run := range runs {
		if err := r.loadChecks(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *RunRepository) loadChecks(ctx context.Context, run *models.Run) error {
	query := `
		SELECT step, status, message
		FROM verification_checks
		WHERE run_id = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, run.ID)
	if err != nil {
		return fmt.Errorf("failed to get checks: %w", err)
	}
	defer rows.Close()

	run.Checks = nil
	for rows.Next() {
		var check models.CheckResult
		var status string
		if err := rows.Scan(&check.Step, &status, &check.Message); err != nil {
			return fmt.Errorf("failed to scan check: %w", err)
		}
		check.Status = models.CheckStatus(status)
		run.Checks = append(run.Checks, check)
	}
	return rows.Err()
}
