package visits

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each counter as a hash with count and last_updated
// fields.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis parses a redis:// URL and checks the connection.
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	if url == "" {
		return nil, errors.New("redis url cannot be empty")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Read(ctx context.Context, key string) (Counter, bool, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Counter{}, false, fmt.Errorf("read counter %s: %w", key, err)
	}
	raw, ok := fields["count"]
	if !ok {
		return Counter{}, false, nil
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Counter{}, false, fmt.Errorf("parse counter %s: %w", key, err)
	}
	c := Counter{Count: count}
	if ts, err := strconv.ParseInt(fields["last_updated"], 10, 64); err == nil {
		c.LastUpdated = time.Unix(ts, 0).UTC()
	}
	return c, true, nil
}

func (s *RedisStore) Increment(ctx context.Context, key string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "count", 1)
		pipe.HSet(ctx, key, "last_updated", time.Now().Unix())
		return nil
	})
	if err != nil {
		return fmt.Errorf("increment counter %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
