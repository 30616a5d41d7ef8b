package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore birden fazla API instance'ının aynı pencereyi paylaşması için.
// Tek instance kurulumlarda MemoryStore yeterlidir.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "rl:"}
}

func (s *RedisStore) Incr(key string, window time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	k := s.prefix + key
	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// Pencere ilk istek ile başlar.
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return int(n), err
		}
	}
	return int(n), nil
}
