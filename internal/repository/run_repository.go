package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ninjapark/rollsync/internal/model"
)

// RunRepository handles processing run history.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Create inserts a run with its records and fills in ID and CreatedAt.
func (r *RunRepository) Create(ctx context.Context, run *model.Run) error {
	warnings, err := json.Marshal(nonNil(run.Warnings))
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}
	options, err := json.Marshal(run.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	records, err := json.Marshal(run.Records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO runs (roster_count, roll_count, record_count, warnings, options, records)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		run.RosterCount, run.RollCount, run.RecordCount, warnings, options, records,
	).Scan(&run.ID, &run.CreatedAt)
}

// GetByID retrieves a run including its records.
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	run := &model.Run{}
	var warnings, options, records []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, roster_count, roll_count, record_count, warnings, options,
		        records, published_at, created_at
		 FROM runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.RosterCount, &run.RollCount, &run.RecordCount, &warnings, &options,
		&records, &run.PublishedAt, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := decodeSummary(&run.RunSummary, warnings, options); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(records, &run.Records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return run, nil
}

// ListPaginated returns run summaries, newest first, plus the total count.
func (r *RunRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.RunSummary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, roster_count, roll_count, record_count, warnings, options, published_at, created_at
		 FROM runs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := make([]model.RunSummary, 0, limit)
	for rows.Next() {
		var s model.RunSummary
		var warnings, options []byte
		if err := rows.Scan(&s.ID, &s.RosterCount, &s.RollCount, &s.RecordCount,
			&warnings, &options, &s.PublishedAt, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := decodeSummary(&s, warnings, options); err != nil {
			return nil, 0, err
		}
		runs = append(runs, s)
	}
	return runs, total, rows.Err()
}

// MarkPublished records when a run's dashboard was last published.
func (r *RunRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE runs SET published_at = $1 WHERE id = $2`, at, id)
	return err
}

// DeleteOlderThan removes runs created before cutoff and returns their IDs.
func (r *RunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `DELETE FROM runs WHERE created_at < $1 RETURNING id`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func decodeSummary(s *model.RunSummary, warnings, options []byte) error {
	if err := json.Unmarshal(warnings, &s.Warnings); err != nil {
		return fmt.Errorf("decode warnings: %w", err)
	}
	if err := json.Unmarshal(options, &s.Options); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
