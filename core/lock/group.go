package lock

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Group coalesces concurrent calls for the same key inside one process and
// holds the cross-process lock around the single execution.
type Group[T any] struct {
	locker Locker
	logger *zap.Logger
	sf     singleflight.Group
}

// NewGroup creates a group on top of the given locker. Failed releases are
// logged to logger, which may be nil.
func NewGroup[T any](locker Locker, logger *zap.Logger) *Group[T] {
	if locker == nil {
		locker = Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Group[T]{locker: locker, logger: logger}
}

// Do runs fn once per key at a time. Callers arriving while a call is in
// flight wait for it and receive its result; shared reports that case.
func (g *Group[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (result T, shared bool, err error) {
	v, err, shared := g.sf.Do(key, func() (interface{}, error) {
		release, err := g.locker.Acquire(ctx, key)
		if err != nil {
			var zero T
			return zero, err
		}
		// The lock must be released even when ctx is already cancelled.
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				g.logger.Warn("Failed to release run lock, it expires with its TTL",
					zap.String("key", key),
					zap.Error(err))
			}
		}()

		return fn(ctx)
	})
	if v != nil {
		result = v.(T)
	}
	return result, shared, err
}
