package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ninjapark/rollsync/internal/export"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStore persists runs. Missing rows are reported as pgx.ErrNoRows.
type RunStore interface {
	Create(ctx context.Context, run *model.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Run, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.RunSummary, int, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// RunCache is a read-through cache in front of RunStore. Get returns nil on
// a miss.
type RunCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Run, error)
	Set(ctx context.Context, run *model.Run) error
	Delete(ctx context.Context, ids ...uuid.UUID) error
}

// DashboardPublisher replaces the shared dashboard file.
type DashboardPublisher interface {
	Publish(src io.WriterTo) error
}

// RunService processes uploads and serves run history and exports.
type RunService struct {
	store     RunStore
	cache     RunCache
	pipeline  *PipelineService
	publisher DashboardPublisher
	log       zerolog.Logger
}

// NewRunService creates a new RunService.
func NewRunService(store RunStore, cache RunCache, pipeline *PipelineService, publisher DashboardPublisher, log zerolog.Logger) *RunService {
	return &RunService{
		store:     store,
		cache:     cache,
		pipeline:  pipeline,
		publisher: publisher,
		log:       log.With().Str("component", "run_service").Logger(),
	}
}

// Create runs the pipeline over both documents and stores the result.
func (s *RunService) Create(ctx context.Context, rollSheet, roster io.Reader, opts model.RunOptions) (*model.Run, error) {
	res, err := s.pipeline.Process(ctx, rollSheet, roster, opts)
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		RunSummary: model.RunSummary{
			RosterCount: res.RosterCount,
			RollCount:   res.RollCount,
			RecordCount: len(res.Records),
			Warnings:    res.Warnings,
			Options:     res.Options,
		},
		Records: res.Records,
	}
	if err := s.store.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("store run: %w", err)
	}

	if err := s.cache.Set(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", run.ID.String()).Msg("failed to cache run")
	}

	s.log.Info().
		Str("run_id", run.ID.String()).
		Int("records", run.RecordCount).
		Int("warnings", len(run.Warnings)).
		Msg("run created")
	return run, nil
}

// Get returns a run, preferring the cache.
func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("run_id", id.String()).Msg("run cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	run, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("get run: %w", err)
	}

	if err := s.cache.Set(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("run_id", id.String()).Msg("failed to cache run")
	}
	return run, nil
}

// List returns a page of run summaries and the total number of runs.
func (s *RunService) List(ctx context.Context, page, perPage int) ([]model.RunSummary, int, error) {
	offset := (page - 1) * perPage
	runs, total, err := s.store.ListPaginated(ctx, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	return runs, total, nil
}

// WriteCSV writes the flat table of an already resolved run in
// reconciliation order.
func (s *RunService) WriteCSV(w io.Writer, run *model.Run) error {
	return export.WriteCSV(w, FlatRecords(run.Records))
}

// Dashboard lays out the run with the options it was created with.
func (s *RunService) Dashboard(ctx context.Context, id uuid.UUID) ([]model.DayGrid, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Grids(run.Records, run.Options), nil
}

// Workbook renders the run's xlsx dashboard. The caller must close it.
func (s *RunService) Workbook(ctx context.Context, id uuid.UUID) (*excelize.File, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(run)
}

// Publish replaces the shared dashboard with this run's workbook.
func (s *RunService) Publish(ctx context.Context, id uuid.UUID) (time.Time, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}

	f, err := s.render(run)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	if err := s.publisher.Publish(export.WorkbookSource(f)); err != nil {
		s.log.Error().Err(err).Str("run_id", id.String()).Msg("publish failed")
		return time.Time{}, err
	}

	now := time.Now().UTC()
	if err := s.store.MarkPublished(ctx, id, now); err != nil {
		return time.Time{}, fmt.Errorf("mark published: %w", err)
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("run_id", id.String()).Msg("failed to evict run")
	}

	s.log.Info().Str("run_id", id.String()).Msg("dashboard published")
	return now, nil
}

// Prune deletes runs older than cutoff and returns how many were removed.
func (s *RunService) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	ids, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old runs: %w", err)
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.log.Warn().Err(err).Int("count", len(ids)).Msg("failed to evict pruned runs")
	}
	return len(ids), nil
}

func (s *RunService) render(run *model.Run) (*excelize.File, error) {
	grids := s.pipeline.Grids(run.Records, run.Options)
	f, err := export.RenderWorkbook(FlatRecords(run.Records), grids)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return f, nil
}

// FlatRecords strips highlights and restores reconciliation order.
func FlatRecords(records []model.ClassifiedRecord) []model.StudentRecord {
	out := make([]model.StudentRecord, len(records))
	for i, r := range records {
		out[i] = r.StudentRecord
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
