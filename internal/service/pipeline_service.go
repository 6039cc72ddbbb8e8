package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ninjapark/rollsync/internal/classify"
	"github.com/ninjapark/rollsync/internal/config"
	"github.com/ninjapark/rollsync/internal/extract"
	"github.com/ninjapark/rollsync/internal/layout"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/reconcile"
	"github.com/rs/zerolog"
)

// Pipeline errors.
var (
	ErrInvalidDocument = errors.New("document could not be parsed")
	ErrInvalidOptions  = errors.New("invalid run options")
)

// PipelineResult is the output of one pass over a roll sheet and roster.
type PipelineResult struct {
	RosterCount int
	RollCount   int
	// Records are in canonical dashboard order.
	Records  []model.ClassifiedRecord
	Grids    []model.DayGrid
	Warnings []string
	Options  model.RunOptions
}

// PipelineService runs extraction, reconciliation, classification and
// layout. It holds no state between calls.
type PipelineService struct {
	cfg config.PipelineConfig
	log zerolog.Logger
}

// NewPipelineService creates a new PipelineService.
func NewPipelineService(cfg config.PipelineConfig, log zerolog.Logger) *PipelineService {
	return &PipelineService{
		cfg: cfg,
		log: log.With().Str("component", "pipeline_service").Logger(),
	}
}

// ResolveOptions fills unset run options from configuration.
func (s *PipelineService) ResolveOptions(opts model.RunOptions) model.RunOptions {
	if opts.YellowPolicy == "" {
		opts.YellowPolicy = s.cfg.YellowPolicy
	}
	if opts.Layout == "" {
		opts.Layout = s.cfg.LayoutVariant
	}
	if opts.Capacity <= 0 {
		opts.Capacity = s.cfg.LayoutCapacity
	}
	if opts.Capacity <= 0 {
		opts.Capacity = layout.DefaultCapacity
	}
	return opts
}

// Process reads both documents and produces classified records and grids.
// Missing structure degrades to warnings; only unreadable input is an error.
func (s *PipelineService) Process(ctx context.Context, rollSheet, roster io.Reader, opts model.RunOptions) (*PipelineResult, error) {
	opts = s.ResolveOptions(opts)
	policy, err := classify.PolicyByName(opts.YellowPolicy, s.cfg.BucketBDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if opts.Layout != model.LayoutSeparated && opts.Layout != model.LayoutPadded {
		return nil, fmt.Errorf("%w: unknown layout %q", ErrInvalidOptions, opts.Layout)
	}

	roll, err := extract.ExtractRollSheet(rollSheet, s.cfg.HeaderMarker)
	if err != nil {
		return nil, fmt.Errorf("%w: roll sheet: %w", ErrInvalidDocument, err)
	}
	rost, err := extract.ExtractRoster(roster)
	if err != nil {
		return nil, fmt.Errorf("%w: roster: %w", ErrInvalidDocument, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("roll_entries", len(roll.Entries)).
		Int("roster_entries", len(rost.Entries)).
		Msg("documents extracted")

	records := reconcile.Reconcile(rost.Entries, roll.Entries, reconcile.Options{
		Abbreviations:  s.cfg.Abbreviations,
		AdvancedMarker: s.cfg.AdvancedMarker,
	})
	classified := classify.Classify(records, policy)
	grids := s.Grids(classified, opts)

	warnings := append(append([]string{}, roll.Warnings...), rost.Warnings...)
	if missing := countMissing(records); missing > 0 && len(roll.Entries) > 0 {
		warnings = append(warnings, fmt.Sprintf("reconcile: %d roster students not on the roll sheet", missing))
	}
	for _, w := range warnings {
		s.log.Warn().Str("warning", w).Msg("pipeline warning")
	}

	s.log.Debug().
		Int("records", len(classified)).
		Int("days", len(grids)).
		Str("yellow_policy", policy.Name()).
		Str("layout", opts.Layout).
		Msg("pipeline finished")

	return &PipelineResult{
		RosterCount: len(rost.Entries),
		RollCount:   len(roll.Entries),
		Records:     classified,
		Grids:       grids,
		Warnings:    warnings,
		Options:     opts,
	}, nil
}

// Grids lays out already classified records with the given options.
func (s *PipelineService) Grids(records []model.ClassifiedRecord, opts model.RunOptions) []model.DayGrid {
	opts = s.ResolveOptions(opts)
	return layout.Build(records, layout.Options{Variant: opts.Layout, Capacity: opts.Capacity})
}

func countMissing(records []model.StudentRecord) int {
	n := 0
	for _, r := range records {
		if r.ClassName == model.ClassNotFound {
			n++
		}
	}
	return n
}
