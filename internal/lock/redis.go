package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// Redis is a Locker shared by every process talking to the same Redis.
type Redis struct {
	client  *redislock.Client
	prefix  string
	ttl     time.Duration
	retries int
	backoff time.Duration
}

type RedisOption func(*Redis)

// WithRetry makes Obtain try up to n more times, backoff apart, before
// giving up with ErrNotObtained.
func WithRetry(n int, backoff time.Duration) RedisOption {
	return func(r *Redis) {
		r.retries = n
		r.backoff = backoff
	}
}

// WithPrefix namespaces every key.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) { r.prefix = prefix }
}

// NewRedis wraps rdb. Locks expire after ttl even if never released.
func NewRedis(rdb *redis.Client, ttl time.Duration, opts ...RedisOption) *Redis {
	r := &Redis{
		client:  redislock.New(rdb),
		prefix:  "tally:lock:",
		ttl:     ttl,
		retries: 10,
		backoff: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Redis) Obtain(ctx context.Context, key string) (Lock, error) {
	l, err := r.client.Obtain(ctx, r.prefix+key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(r.backoff), r.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}

	if err != nil {
		return nil, fmt.Errorf("obtaining lock %s: %w", key, err)
	}

	return &redisLock{lock: l}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release tolerates locks that already expired.
func (l *redisLock) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return fmt.Errorf("releasing lock %s: %w", l.lock.Key(), err)
	}

	return nil
}
