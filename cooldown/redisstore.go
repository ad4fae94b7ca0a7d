package cooldown

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares cooldowns across processes. Entries carry a native
// redis TTL, so expired keys disappear on their own and Sweep has nothing
// to reclaim.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore wraps client; keyPrefix namespaces the keys (default
// "cooldown:").
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "cooldown:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	millis, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(millis), true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, expiry time.Time, ttl time.Duration) error {
	return s.client.Set(ctx, s.keyPrefix+key, strconv.FormatInt(expiry.UnixMilli(), 10), ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.keyPrefix+key).Err()
}

func (s *RedisStore) DeleteBucket(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, s.keyPrefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Sweep is a no-op: redis expires the keys itself.
func (s *RedisStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.DeleteBucket(ctx, "")
}
