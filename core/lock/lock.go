package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another process holds the lock for the key.
var ErrHeld = errors.New("lock: held by another run")

// Release gives the lock back. It is safe to call more than once.
type Release func(ctx context.Context) error

// Locker serializes runs for the same key across processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// New returns a Redis-backed locker when a URL is configured and a no-op
// locker otherwise.
func New(cfg Config) (Locker, error) {
	if cfg.URL == "" {
		return Noop{}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	opts.PoolSize = 4
	opts.MinIdleConns = 1
	opts.ConnMaxIdleTime = 5 * time.Minute

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return NewRedisLocker(rdb, cfg.Prefix, ttl), nil
}

// Noop is a locker that always succeeds.
type Noop struct{}

// Acquire implements Locker.
func (Noop) Acquire(context.Context, string) (Release, error) {
	return func(context.Context) error { return nil }, nil
}

// RedisLocker holds locks as SET NX PX keys carrying a random token.
type RedisLocker struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisLocker creates a locker on an existing client.
func NewRedisLocker(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, prefix: prefix, ttl: ttl}
}

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Acquire implements Locker.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHeld, key)
	}

	released := false
	return func(ctx context.Context) error {
		if released {
			return nil
		}
		released = true
		if err := releaseScript.Run(ctx, l.rdb, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", fullKey, err)
		}
		return nil
	}, nil
}
