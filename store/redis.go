package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps backend failures from the Redis store.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis is a RevocationStore backed by a shared Redis deployment. Marker
// expiry rides on Redis key TTLs. All keys are namespaced under prefix.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps client. prefix namespaces this store's keys; empty means no
// extra namespace beyond what callers put in the key.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix != "" && prefix[len(prefix)-1] != ':' {
		prefix += ":"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string { return r.prefix + k }

// Contains reports whether a live marker exists for key.
func (r *Redis) Contains(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return n > 0, nil
}

// Save writes a marker for key with a ttl-bounded lifetime. A non-positive
// ttl is clamped to one second rather than persisting forever.
func (r *Redis) Save(ctx context.Context, key string, value int64, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete removes the marker for key. Absence is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
