package cache

import (
	"context"
	"sync/atomic"
	"time"

	"fitness-planner/internal/pkg/common"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// MemoryStore 行程內 LRU 快取，條目依 TTL 過期
type MemoryStore struct {
	lru       *expirable.LRU[string, []byte]
	maxSize   int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewMemoryStore 創建新的記憶體快取
func NewMemoryStore(maxSize int, ttl time.Duration) *MemoryStore {
	m := &MemoryStore{maxSize: maxSize}
	// 容量淘汰與 TTL 到期都會觸發回呼；Close 的清空不計入
	m.lru = expirable.NewLRU[string, []byte](maxSize, func(key string, _ []byte) {
		m.evictions.Add(1)
	}, ttl)

	common.LogInfo("快取管理員已初始化",
		zap.String("後端", "memory"),
		zap.Int("最大容量", maxSize),
		zap.Duration("存活時間", ttl),
	)
	return m
}

// Get 獲取緩存值
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.lru.Get(key)
	if !ok {
		m.misses.Add(1)
		common.LogCacheMiss("memory", key)
		return nil, common.ErrCacheMiss
	}
	m.hits.Add(1)
	common.LogCacheHit("memory", key)
	return value, nil
}

// Set 設置緩存值
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.lru.Add(key, value)
	return nil
}

// Stats 獲取緩存統計信息
func (m *MemoryStore) Stats() Stats {
	return Stats{
		Backend:   "memory",
		Size:      m.lru.Len(),
		MaxSize:   m.maxSize,
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
	}
}

// Close 清空快取
func (m *MemoryStore) Close() error {
	stats := m.Stats()
	m.lru.Purge()
	m.evictions.Store(stats.Evictions)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", stats.Hits),
		zap.Int64("未命中次數", stats.Misses),
		zap.Int64("淘汰次數", stats.Evictions),
	)
	return nil
}
