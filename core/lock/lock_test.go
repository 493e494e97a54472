package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeLocker records acquisitions and can refuse them.
type fakeLocker struct {
	mu         sync.Mutex
	held       map[string]bool
	acquired   int
	released   int
	err        error
	releaseErr error
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (Release, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	if f.held[key] {
		return nil, ErrHeld
	}
	f.held[key] = true
	f.acquired++
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.held, key)
		f.released++
		return f.releaseErr
	}, nil
}

func TestNew_WithoutURLIsNoop(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, l)

	release, err := l.Acquire(context.Background(), "golang")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{URL: "not-a-url://"})
	assert.Error(t, err)
}

func TestGroup_CoalescesConcurrentCalls(t *testing.T) {
	locker := &fakeLocker{}
	g := NewGroup[int](locker, nil)

	var calls atomic.Int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]int, 5)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			v, _, err := g.Do(context.Background(), "golang", func(context.Context) (int, error) {
				calls.Add(1)
				time.Sleep(50 * time.Millisecond)
				return 7, nil
			})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	close(start)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(5))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, locker.acquired, locker.released)
	assert.Empty(t, locker.held)
}

func TestGroup_LockerRefusal(t *testing.T) {
	g := NewGroup[string](&fakeLocker{err: ErrHeld}, nil)

	called := false
	_, _, err := g.Do(context.Background(), "golang", func(context.Context) (string, error) {
		called = true
		return "ran", nil
	})
	assert.ErrorIs(t, err, ErrHeld)
	assert.False(t, called)
}

func TestGroup_ReleasesOnError(t *testing.T) {
	locker := &fakeLocker{}
	g := NewGroup[string](locker, nil)
	boom := errors.New("boom")

	_, _, err := g.Do(context.Background(), "golang", func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, locker.released)

	// A second run can take the lock again.
	v, _, err := g.Do(context.Background(), "golang", func(context.Context) (string, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestGroup_LogsFailedRelease(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	locker := &fakeLocker{releaseErr: errors.New("connection reset")}
	g := NewGroup[string](locker, zap.New(core))

	v, _, err := g.Do(context.Background(), "golang", func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	entries := logs.FilterMessage("Failed to release run lock, it expires with its TTL").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "golang", entries[0].ContextMap()["key"])
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}
