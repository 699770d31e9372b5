package api

import (
	"time"

	"fitness-planner/internal/api/handlers/health"
	planHandler "fitness-planner/internal/api/handlers/plan"
	"fitness-planner/internal/api/middleware"
	"fitness-planner/internal/core/cache"
	planService "fitness-planner/internal/core/plan"
	"fitness-planner/internal/infrastructure/config"
	"fitness-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由，store 可為 nil（不使用快取）
func SetupRouter(cfg *config.Config, store cache.Store) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 未設定時不信任任何代理，ClientIP 即為連線位址
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		common.LogWarn("Invalid trusted proxies, trusting none",
			zap.Strings("trusted_proxies", cfg.Server.TrustedProxies),
			zap.Error(err),
		)
		_ = router.SetTrustedProxies(nil)
	}

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Accept", "If-None-Match", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "ETag", "X-Request-ID", planHandler.HeaderFallback},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.NoRoute(func(c *gin.Context) {
		common.AbortWithError(c, common.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		common.AbortWithError(c, common.ErrMethodNotAllowed)
	})

	svc := planService.NewService(store)
	healthHandler := health.NewHandler(cfg, svc)

	// 健康檢查路由
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		h := planHandler.NewHandler(svc)

		api.GET("/recipes", h.HandleRecipes)
		api.GET("/workouts", h.HandleWorkouts)
		api.GET("/plan", h.HandlePlan)
		api.GET("/catalog", h.HandleCatalog)

		api.HEAD("/recipes", h.HandleRecipes)
		api.HEAD("/workouts", h.HandleWorkouts)
		api.HEAD("/plan", h.HandlePlan)
		api.HEAD("/catalog", h.HandleCatalog)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int("routes", len(router.Routes())),
	)

	return router
}
