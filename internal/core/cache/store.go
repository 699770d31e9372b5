package cache

import (
	"context"
	"fmt"

	"fitness-planner/internal/infrastructure/config"
	"fitness-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 已編碼回應的快取
type Store interface {
	// Get 取得快取值，未命中時回傳 common.ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() Stats
	Close() error
}

// Stats 快取統計
type Stats struct {
	Backend   string `json:"backend"`
	Size      int    `json:"size"`
	MaxSize   int    `json:"max_size,omitempty"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Evictions int64  `json:"evictions"` // 因容量不足或 TTL 到期而移除的條目（僅 memory）
	Errors    int64  `json:"errors"`    // 後端錯誤次數（僅 redis）
}

// HitRatio 命中率
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewStore 依設定建立快取，快取關閉時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(context.Background(), cfg.Redis, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewMemoryStore(cfg.Cache.MaxSize, cfg.Cache.TTL), nil
	default:
		common.LogError("Unknown cache backend", zap.String("backend", cfg.Cache.Backend))
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
