package followers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"follower-tracker/core/lock"
	"follower-tracker/core/metrics"

	"github.com/juju/clock"
	"go.uber.org/zap"
)

// Runner serializes runs per target and records their metrics. Concurrent
// triggers for the same target inside one process share a single run; across
// processes the run lock refuses overlapping runs.
type Runner struct {
	reconciler *Reconciler
	group      *lock.Group[*RunResult]
	metrics    *metrics.Collector
	clock      clock.Clock
	opts       Options
	logger     *zap.Logger
}

// NewRunner creates a runner. collector may be nil.
func NewRunner(reconciler *Reconciler, locker lock.Locker, collector *metrics.Collector, clk clock.Clock, opts Options, logger *zap.Logger) *Runner {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Runner{
		reconciler: reconciler,
		group:      lock.NewGroup[*RunResult](locker, logger),
		metrics:    collector,
		clock:      clk,
		opts:       opts,
		logger:     logger,
	}
}

// Run reconciles target once.
func (r *Runner) Run(ctx context.Context, target string) (*RunResult, error) {
	result, shared, err := r.group.Do(ctx, target, func(ctx context.Context) (*RunResult, error) {
		start := r.clock.Now()
		result, err := r.reconciler.Run(ctx, target, r.opts)
		r.observe(target, start, result, err)
		return result, err
	})
	if errors.Is(err, lock.ErrHeld) {
		return nil, fmt.Errorf("%w: %s", ErrRunInProgress, target)
	}
	if shared {
		r.logger.Debug("Run shared with concurrent trigger", zap.String("target", target))
	}
	return result, err
}

// Watch runs target immediately and then every interval until ctx is done.
// Failed runs are logged and retried at the next tick.
func (r *Runner) Watch(ctx context.Context, target string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid watch interval %s", interval)
	}
	for {
		if _, err := r.Run(ctx, target); err != nil {
			r.logger.Error("Run failed", zap.String("target", target), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-r.clock.After(interval):
		}
	}
}

func (r *Runner) observe(target string, start time.Time, result *RunResult, err error) {
	if r.metrics == nil {
		return
	}
	o := metrics.RunObservation{
		Target:     target,
		Outcome:    metrics.OutcomeSuccess,
		Duration:   r.clock.Now().Sub(start),
		FinishedAt: r.clock.Now(),
	}
	switch {
	case err != nil:
		o.Outcome = metrics.OutcomeFailure
	case result.DryRun:
		o.Outcome = metrics.OutcomeDryRun
	}
	if result != nil {
		o.Followers = result.Summary.Current
		o.Joined = result.Summary.Joined
		o.Left = result.Summary.Left
		o.EventFailures = len(result.EventFailures)
	}
	r.metrics.ObserveRun(o)
}
