package followers

import (
	"context"
	"testing"
	"time"

	"follower-tracker/core/lock"
	"follower-tracker/core/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type refusingLocker struct{}

func (refusingLocker) Acquire(context.Context, string) (lock.Release, error) {
	return nil, lock.ErrHeld
}

func gathered(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestRunner_RecordsMetrics(t *testing.T) {
	h := newHarness(t)
	collector, err := metrics.NewCollector()
	require.NoError(t, err)
	runner := NewRunner(NewReconciler(h.deps), lock.Noop{}, collector, h.clock, Options{}, zap.NewNop())

	h.source.set(1, 2, 3)
	_, err = runner.Run(context.Background(), target)
	require.NoError(t, err)

	h.source.openErr = assert.AnError
	_, err = runner.Run(context.Background(), target)
	assert.ErrorIs(t, err, ErrFetch)

	reg := collector.Registry()
	assert.Equal(t, 1.0, gathered(t, reg, "follower_tracker_runs_total", map[string]string{"target": target, "outcome": metrics.OutcomeSuccess}))
	assert.Equal(t, 1.0, gathered(t, reg, "follower_tracker_runs_total", map[string]string{"target": target, "outcome": metrics.OutcomeFailure}))
	assert.Equal(t, 3.0, gathered(t, reg, "follower_tracker_joined_total", map[string]string{"target": target}))
	assert.Equal(t, 3.0, gathered(t, reg, "follower_tracker_followers", map[string]string{"target": target}))
}

func TestRunner_LockHeldElsewhere(t *testing.T) {
	h := newHarness(t)
	runner := NewRunner(NewReconciler(h.deps), refusingLocker{}, nil, h.clock, Options{}, zap.NewNop())

	_, err := runner.Run(context.Background(), target)
	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.Zero(t, h.source.calls)
}

func TestRunner_DryRunOption(t *testing.T) {
	h := newHarness(t)
	runner := NewRunner(NewReconciler(h.deps), nil, nil, h.clock, Options{DryRun: true}, zap.NewNop())
	h.source.set(1)

	result, err := runner.Run(context.Background(), target)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Empty(t, h.stored(t))
}

func TestRunner_Watch(t *testing.T) {
	h := newHarness(t)
	runner := NewRunner(NewReconciler(h.deps), lock.Noop{}, nil, h.clock, Options{}, zap.NewNop())
	h.source.set(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Watch(ctx, target, time.Minute) }()

	require.NoError(t, h.clock.WaitAdvance(time.Minute, time.Second, 1))
	require.Eventually(t, func() bool {
		h.reporter.mu.Lock()
		defer h.reporter.mu.Unlock()
		return len(h.reporter.results) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRunner_WatchRejectsBadInterval(t *testing.T) {
	h := newHarness(t)
	runner := NewRunner(NewReconciler(h.deps), nil, nil, h.clock, Options{}, zap.NewNop())
	assert.Error(t, runner.Watch(context.Background(), target, 0))
}
