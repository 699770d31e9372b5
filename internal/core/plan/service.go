package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fitness-planner/internal/core/cache"
	"fitness-planner/internal/core/catalog"
	"fitness-planner/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RecipesResponse 飲食計畫回應
type RecipesResponse struct {
	DietType catalog.DietType   `json:"diet_type"`
	Fallback bool               `json:"fallback"`
	Recipes  catalog.RecipeData `json:"recipes"`
}

// WorkoutsResponse 訓練計畫回應
type WorkoutsResponse struct {
	WorkoutType catalog.WorkoutType  `json:"workout_type"`
	Fallback    bool                 `json:"fallback"`
	Workouts    []catalog.WorkoutDay `json:"workouts"`
}

// PlanResponse 飲食與訓練的組合計畫
type PlanResponse struct {
	DietType    catalog.DietType     `json:"diet_type"`
	WorkoutType catalog.WorkoutType  `json:"workout_type"`
	Fallback    bool                 `json:"fallback"`
	Recipes     catalog.RecipeData   `json:"recipes"`
	Workouts    []catalog.WorkoutDay `json:"workouts"`
}

// CatalogResponse 可用的類型清單
type CatalogResponse struct {
	DietTypes          []catalog.DietType    `json:"diet_types"`
	DefaultDietType    catalog.DietType      `json:"default_diet_type"`
	WorkoutTypes       []catalog.WorkoutType `json:"workout_types"`
	DefaultWorkoutType catalog.WorkoutType   `json:"default_workout_type"`
}

// Payload 已編碼的回應
type Payload struct {
	Key      string // 解析後的快取鍵
	Body     []byte
	ETag     string
	Fallback bool // 輸入無法辨識，已改用預設項目
}

// Service 計畫服務，負責解析類型、編碼並快取回應
type Service struct {
	store cache.Store
	group singleflight.Group
}

// NewService 創建計畫服務，store 可為 nil
func NewService(store cache.Store) *Service {
	return &Service{store: store}
}

// Recipes 取得飲食計畫
func (s *Service) Recipes(ctx context.Context, dietType string) (*Payload, error) {
	d, ok := catalog.ResolveDietType(dietType)
	if !ok {
		common.LogDebug("Unknown diet type, using default",
			zap.String("input", dietType),
			zap.String("default", string(d)),
		)
	}

	// 快取內容不含 fallback 旗標，未知輸入與預設類型共用同一筆
	key := "recipes:" + string(d)
	return load(ctx, s, key, !ok, func() RecipesResponse {
		return RecipesResponse{DietType: d, Recipes: d.Recipes()}
	}, func(r *RecipesResponse) { r.Fallback = true })
}

// Workouts 取得訓練計畫
func (s *Service) Workouts(ctx context.Context, workoutType string) (*Payload, error) {
	w, ok := catalog.ResolveWorkoutType(workoutType)
	if !ok {
		common.LogDebug("Unknown workout type, using default",
			zap.String("input", workoutType),
			zap.String("default", string(w)),
		)
	}

	key := "workouts:" + string(w)
	return load(ctx, s, key, !ok, func() WorkoutsResponse {
		return WorkoutsResponse{WorkoutType: w, Workouts: w.Days()}
	}, func(r *WorkoutsResponse) { r.Fallback = true })
}

// Plan 取得飲食與訓練的組合計畫
func (s *Service) Plan(ctx context.Context, dietType, workoutType string) (*Payload, error) {
	d, dietOK := catalog.ResolveDietType(dietType)
	w, workoutOK := catalog.ResolveWorkoutType(workoutType)

	key := "plan:" + string(d) + "|" + string(w)
	return load(ctx, s, key, !dietOK || !workoutOK, func() PlanResponse {
		return PlanResponse{
			DietType:    d,
			WorkoutType: w,
			Recipes:     d.Recipes(),
			Workouts:    w.Days(),
		}
	}, func(r *PlanResponse) { r.Fallback = true })
}

// Catalog 取得可用類型清單
func (s *Service) Catalog(ctx context.Context) (*Payload, error) {
	return load(ctx, s, "catalog", false, func() CatalogResponse {
		return CatalogResponse{
			DietTypes:          catalog.DietTypes(),
			DefaultDietType:    catalog.DefaultDietType,
			WorkoutTypes:       catalog.WorkoutTypes(),
			DefaultWorkoutType: catalog.DefaultWorkoutType,
		}
	}, nil)
}

// Stats 回傳快取統計，未啟用快取時回傳 nil
func (s *Service) Stats() *cache.Stats {
	if s.store == nil {
		return nil
	}
	stats := s.store.Stats()
	return &stats
}

// load 從快取讀取已編碼內容，未命中時建立並寫回；快取錯誤不影響結果。
// 快取內容一律不含 fallback 旗標，需要時以 mark 設定後重新編碼。
func load[T any](ctx context.Context, s *Service, key string, fallback bool, build func() T, mark func(*T)) (*Payload, error) {
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if body, ok := s.getFromCache(ctx, key); ok {
			return body, nil
		}

		body, err := json.Marshal(build())
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}

		s.setToCache(ctx, key, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body := v.([]byte)
	if fallback && mark != nil {
		body, err = markFallback(body, mark)
		if err != nil {
			return nil, fmt.Errorf("failed to mark fallback for %s: %w", key, err)
		}
	}

	return &Payload{
		Key:      key,
		Body:     body,
		ETag:     common.ETag(body),
		Fallback: fallback,
	}, nil
}

func (s *Service) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	if s.store == nil {
		return nil, false
	}
	body, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Cache lookup failed, bypassing",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return body, true
}

func (s *Service) setToCache(ctx context.Context, key string, body []byte) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, body); err != nil {
		common.LogWarn("Cache store failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// markFallback 以回應型別重新編碼並設定 fallback，欄位順序與一般回應相同
func markFallback[T any](body []byte, mark func(*T)) ([]byte, error) {
	var resp T
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cached payload: %w", err)
	}
	mark(&resp)
	return json.Marshal(resp)
}
