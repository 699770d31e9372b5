package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"fitness-planner/internal/core/catalog"
	planService "fitness-planner/internal/core/plan"
	"fitness-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 10 * time.Second

// Client 計畫 API 客戶端
type Client struct {
	http *resty.Client
}

// Option 客戶端選項
type Option func(*resty.Client)

// WithTimeout 設定請求逾時
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithRetries 設定失敗重試次數
func WithRetries(n int) Option {
	return func(c *resty.Client) { c.SetRetryCount(n) }
}

// Plan 組合計畫
type Plan struct {
	DietType    catalog.DietType
	WorkoutType catalog.WorkoutType
	Fallback    bool
	Recipes     catalog.RecipeData
	Workouts    []catalog.WorkoutDay
}

// New 創建計畫 API 客戶端
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "fitness-planner-client")

	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}
}

// Recipes 取得飲食計畫
func (c *Client) Recipes(ctx context.Context, dietType string) (*planService.RecipesResponse, error) {
	var out planService.RecipesResponse
	if err := c.get(ctx, "/api/v1/recipes", map[string]string{"diet_type": dietType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workouts 取得訓練計畫
func (c *Client) Workouts(ctx context.Context, workoutType string) (*planService.WorkoutsResponse, error) {
	var out planService.WorkoutsResponse
	if err := c.get(ctx, "/api/v1/workouts", map[string]string{"workout_type": workoutType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Catalog 取得可用類型清單
func (c *Client) Catalog(ctx context.Context) (*planService.CatalogResponse, error) {
	var out planService.CatalogResponse
	if err := c.get(ctx, "/api/v1/catalog", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plan 同時取得飲食與訓練計畫，任一失敗即回傳錯誤
func (c *Client) Plan(ctx context.Context, dietType, workoutType string) (*Plan, error) {
	var (
		recipes  *planService.RecipesResponse
		workouts *planService.WorkoutsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = c.Recipes(gctx, dietType)
		return err
	})
	g.Go(func() error {
		var err error
		workouts, err = c.Workouts(gctx, workoutType)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Plan{
		DietType:    recipes.DietType,
		WorkoutType: workouts.WorkoutType,
		Fallback:    recipes.Fallback || workouts.Fallback,
		Recipes:     recipes.Recipes,
		Workouts:    workouts.Workouts,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	requestID := common.GenerateUUID()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return common.ErrServiceUnavailable.Wrap(fmt.Errorf("GET %s: %w", path, err))
	}

	if resp.StatusCode() != http.StatusOK {
		apiErr := decodeError(resp)
		common.LogWarn("Plan API returned error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.String("code", apiErr.Code),
			zap.String("request_id", requestID),
		)
		return apiErr
	}

	if err := common.ParseJSONBytes(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

// decodeError 由錯誤回應建立 CustomError，無法解析時使用狀態碼
func decodeError(resp *resty.Response) *common.CustomError {
	var body common.ErrorResponse
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil || body.Code == "" {
		return common.NewError(
			fmt.Sprintf("HTTP_%d", resp.StatusCode()),
			http.StatusText(resp.StatusCode()),
			resp.StatusCode(),
			nil,
		)
	}
	return common.NewError(body.Code, body.Error, resp.StatusCode(), nil)
}
