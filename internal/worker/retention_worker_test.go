package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int
	err     error
}

func (p *fakePruner) Prune(_ context.Context, cutoff time.Time) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoffs = append(p.cutoffs, cutoff)
	return p.n, p.err
}

func (p *fakePruner) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cutoffs)
}

func TestRunOnceUsesRetentionWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &fakePruner{n: 3}
	w := NewRetentionWorker(p, nil, 30*24*time.Hour, zerolog.Nop())
	w.now = func() time.Time { return now }

	assert.Equal(t, 3, w.RunOnce(context.Background()))
	assert.Equal(t, []time.Time{now.Add(-30 * 24 * time.Hour)}, p.cutoffs)
}

func TestRunOnceSwallowsErrors(t *testing.T) {
	p := &fakePruner{err: errors.New("db down")}
	w := NewRetentionWorker(p, nil, time.Hour, zerolog.Nop())

	assert.Zero(t, w.RunOnce(context.Background()))
}

func TestStartStopsOnCancel(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, nil, time.Hour, zerolog.Nop())
	w.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStartDisabled(t *testing.T) {
	p := &fakePruner{}
	w := NewRetentionWorker(p, nil, 0, zerolog.Nop())

	w.Start(context.Background())
	assert.Zero(t, p.calls())
}
