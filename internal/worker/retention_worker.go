package worker

import (
	"context"
	"time"

	"github.com/ninjapark/rollsync/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	RetentionInterval = time.Hour
	RetentionLockTTL  = 5 * time.Minute
)

// Pruner deletes runs created before cutoff.
type Pruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// RetentionWorker periodically deletes runs older than the retention window.
// With a Redis client, only the instance holding the lock prunes in a tick.
type RetentionWorker struct {
	runs      Pruner
	rdb       *redis.Client
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

func NewRetentionWorker(runs Pruner, rdb *redis.Client, retention time.Duration, log zerolog.Logger) *RetentionWorker {
	return &RetentionWorker{
		runs:      runs,
		rdb:       rdb,
		retention: retention,
		interval:  RetentionInterval,
		now:       time.Now,
		log:       log.With().Str("component", "retention_worker").Logger(),
	}
}

// Start prunes once immediately and then every interval until ctx is done.
// Call in a goroutine.
func (w *RetentionWorker) Start(ctx context.Context) {
	if w.retention <= 0 {
		w.log.Info().Msg("Retention disabled")
		return
	}
	w.log.Info().Dur("retention", w.retention).Msg("RetentionWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.RunOnce(ctx)

		select {
		case <-ctx.Done():
			w.log.Info().Msg("RetentionWorker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single prune pass and returns how many runs it removed.
func (w *RetentionWorker) RunOnce(ctx context.Context) int {
	if !w.acquire(ctx) {
		return 0
	}

	cutoff := w.now().Add(-w.retention)
	n, err := w.runs.Prune(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("prune failed")
		}
		return 0
	}
	if n > 0 {
		w.log.Info().Int("deleted", n).Time("cutoff", cutoff).Msg("pruned old runs")
	}
	return n
}

// acquire takes the cluster-wide prune lock. The lock expires on its own, so
// a crashed instance never blocks the others for longer than the TTL.
func (w *RetentionWorker) acquire(ctx context.Context) bool {
	if w.rdb == nil {
		return true
	}
	ok, err := w.rdb.SetNX(ctx, config.WorkerKey.RetentionLock, w.now().UTC().Format(time.RFC3339), RetentionLockTTL).Result()
	if err != nil {
		if ctx.Err() == nil {
			w.log.Warn().Err(err).Msg("retention lock unavailable, skipping tick")
		}
		return false
	}
	return ok
}
