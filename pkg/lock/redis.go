package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunLock is a single-flight guard for batch jobs. The schedule generator
// reads existing screenings and writes new ones in separate steps, so two
// concurrent runs against the same store could both see a slot as free.
type RunLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type redisLock struct {
	client *redis.Client
}

func NewRedisLock(client *redis.Client) RunLock {
	return &redisLock{client: client}
}

// Acquire takes the lock with SET NX. The TTL covers a crashed holder; a
// normal run releases explicitly.
func (l *redisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (l *redisLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", key, err)
	}
	return nil
}
