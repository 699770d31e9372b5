package plan

import (
	"net/http"
	"strings"

	planService "fitness-planner/internal/core/plan"
	"fitness-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 查詢參數與回應標頭
const (
	QueryDietType    = "diet_type"
	QueryWorkoutType = "workout_type"

	HeaderFallback = "X-Catalog-Fallback"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Handler 計畫處理程序
type Handler struct {
	service *planService.Service
}

// NewHandler 創建新的計畫處理程序
func NewHandler(service *planService.Service) *Handler {
	return &Handler{service: service}
}

// HandleRecipes GET /api/v1/recipes?diet_type=
func (h *Handler) HandleRecipes(c *gin.Context) {
	p, err := h.service.Recipes(c.Request.Context(), c.Query(QueryDietType))
	h.respond(c, p, err)
}

// HandleWorkouts GET /api/v1/workouts?workout_type=
func (h *Handler) HandleWorkouts(c *gin.Context) {
	p, err := h.service.Workouts(c.Request.Context(), c.Query(QueryWorkoutType))
	h.respond(c, p, err)
}

// HandlePlan GET /api/v1/plan?diet_type=&workout_type=
func (h *Handler) HandlePlan(c *gin.Context) {
	p, err := h.service.Plan(c.Request.Context(), c.Query(QueryDietType), c.Query(QueryWorkoutType))
	h.respond(c, p, err)
}

// HandleCatalog GET /api/v1/catalog
func (h *Handler) HandleCatalog(c *gin.Context) {
	p, err := h.service.Catalog(c.Request.Context())
	h.respond(c, p, err)
}

// respond 寫入已編碼的回應，支援 If-None-Match 與 HEAD
func (h *Handler) respond(c *gin.Context, p *planService.Payload, err error) {
	if err != nil {
		common.LogError("Failed to build plan payload",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
		common.AbortWithError(c, err)
		return
	}

	c.Header("ETag", p.ETag)
	c.Header("Cache-Control", "public, max-age=300")
	if p.Fallback {
		c.Header(HeaderFallback, "true")
	}

	if etagMatches(c.GetHeader("If-None-Match"), p.ETag) {
		c.Status(http.StatusNotModified)
		return
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentTypeJSON)
		c.Status(http.StatusOK)
		return
	}

	c.Data(http.StatusOK, contentTypeJSON, p.Body)
}

func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
