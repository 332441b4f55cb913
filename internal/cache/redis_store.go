package cache

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"

	// External Packages
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

// Connect connects to the redis server and returns the client.
func Connect(ctx context.Context, uri, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: password,
		DB:       0,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Error("redis cache get failed", err, logger.Fields{"key": key})
		}
		return nil, false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Error("redis cache set failed", err, logger.Fields{"key": key})
	}
}

func (s *RedisStore) InvalidatePrefix(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
				logger.Error("redis cache delete failed", err, logger.Fields{"key": iter.Val()})
			}
		}
		if err := iter.Err(); err != nil {
			logger.Error("redis cache scan failed", err, logger.Fields{"prefix": prefix})
		}
	}
}
