package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"fitness-planner/internal/infrastructure/config"
	"fitness-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 多個實例共用的 Redis 快取
type RedisStore struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// NewRedisStore 建立 Redis 快取並測試連線
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("後端", "redis"),
		zap.String("addr", cfg.Addr),
		zap.Duration("存活時間", ttl),
	)

	return newRedisStore(client, cfg.KeyPrefix, ttl), nil
}

func newRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			common.LogCacheMiss("redis", key)
			return nil, common.ErrCacheMiss
		}
		s.failures.Add(1)
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	s.hits.Add(1)
	common.LogCacheHit("redis", key)
	return data, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		s.failures.Add(1)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 獲取緩存統計信息（Size 不查詢 Redis）
func (s *RedisStore) Stats() Stats {
	return Stats{
		Backend: "redis",
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Errors:  s.failures.Load(),
	}
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
