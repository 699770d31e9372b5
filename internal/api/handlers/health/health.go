package health

import (
	"net/http"
	"runtime"
	"time"

	"fitness-planner/internal/core/cache"
	"fitness-planner/internal/infrastructure/config"
	"fitness-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// 主機資源讀取，測試時可替換
var (
	virtualMemory = mem.VirtualMemory
	cpuPercent    = cpu.Percent
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Host      *HostStatus            `json:"host,omitempty"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// HostStatus 主機資源狀態
type HostStatus struct {
	CPULoad  float64 `json:"cpu_load"`
	RAMUsage float64 `json:"ram_usage"`
}

// CacheStatus 快取狀態
type CacheStatus struct {
	cache.Stats
	HitRatio float64 `json:"hit_ratio"`
}

// StatsProvider 提供快取統計
type StatsProvider interface {
	Stats() *cache.Stats
}

// Handler 健康檢查處理程序
type Handler struct {
	config *config.Config
	stats  StatsProvider
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, stats StatsProvider) *Handler {
	return &Handler{config: cfg, stats: stats}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Host: hostStatus(),
	}

	if h.stats != nil {
		if s := h.stats.Stats(); s != nil {
			response.Cache = &CacheStatus{Stats: *s, HitRatio: s.HitRatio()}
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// hostStatus 讀取主機 CPU 與記憶體使用率，無法取得時回傳 nil
func hostStatus() *HostStatus {
	v, err := virtualMemory()
	if err != nil {
		common.LogWarn("Failed to read host memory", zap.Error(err))
		return nil
	}
	status := &HostStatus{RAMUsage: v.UsedPercent}

	// interval 為 0 時與上次呼叫比較，不會阻塞
	if percent, err := cpuPercent(0, false); err == nil && len(percent) > 0 {
		status.CPULoad = percent[0]
	}
	return status
}

// ReadinessCheck 就緒檢查處理器
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
