package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by TryWithLock when another holder owns the key.
var ErrNotAcquired = errors.New("lock: not acquired")

const (
	defaultTTL     = 30 * time.Second
	defaultBackoff = 50 * time.Millisecond
)

// release deletes the key only while it still carries our token, so an
// expired lock taken over by another worker is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker serialises work across API and worker processes with SET NX keys.
type Locker struct {
	R            *redis.Client
	RetryBackoff time.Duration
}

// WithLock waits until key is free, then runs fn while holding it. The wait
// ends with ctx.Err() when ctx is cancelled.
func (l Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	if err := l.check(fn); err != nil {
		return err
	}
	backoff := l.RetryBackoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	ticker := time.NewTicker(backoff)
	defer ticker.Stop()
	for {
		token, err := l.acquire(ctx, key, ttl)
		if err != nil {
			return err
		}
		if token != "" {
			defer l.release(ctx, key, token)
			return fn(ctx)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TryWithLock runs fn only if key is free right now and returns
// ErrNotAcquired otherwise.
func (l Locker) TryWithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	if err := l.check(fn); err != nil {
		return err
	}
	token, err := l.acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNotAcquired
	}
	defer l.release(ctx, key, token)
	return fn(ctx)
}

func (l Locker) check(fn func(context.Context) error) error {
	switch {
	case l.R == nil:
		return errors.New("lock: redis client not configured")
	case fn == nil:
		return errors.New("lock: callback not provided")
	}
	return nil
}

// acquire returns the owner token, or "" when the key is held elsewhere.
func (l Locker) acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	token := uuid.NewString()
	ok, err := l.R.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return "", err
	}
	return token, nil
}

// release runs detached from ctx, which may already be cancelled.
func (l Locker) release(ctx context.Context, key, token string) {
	_ = releaseScript.Run(context.WithoutCancel(ctx), l.R, []string{key}, token).Err()
}
