package plan

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fitness-planner/internal/core/cache"
	"fitness-planner/internal/core/catalog"
	"fitness-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore 永遠失敗的快取
type brokenStore struct {
	gets, sets atomic.Int64
}

func (b *brokenStore) Get(context.Context, string) ([]byte, error) {
	b.gets.Add(1)
	return nil, errors.New("connection refused")
}

func (b *brokenStore) Set(context.Context, string, []byte) error {
	b.sets.Add(1)
	return errors.New("connection refused")
}

func (b *brokenStore) Stats() cache.Stats { return cache.Stats{Backend: "broken"} }
func (b *brokenStore) Close() error       { return nil }

func decode[T any](t *testing.T, p *Payload) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(p.Body, &v))
	return v
}

func TestService_RecipesKnownType(t *testing.T) {
	s := NewService(nil)

	p, err := s.Recipes(context.Background(), "eggetarian")
	require.NoError(t, err)
	assert.False(t, p.Fallback)
	assert.Equal(t, "recipes:eggetarian", p.Key)
	assert.Equal(t, common.ETag(p.Body), p.ETag)

	resp := decode[RecipesResponse](t, p)
	assert.Equal(t, catalog.Eggetarian, resp.DietType)
	assert.False(t, resp.Fallback)
	assert.Equal(t, catalog.GetRecipes("eggetarian"), resp.Recipes)
}

func TestService_RecipesUnknownTypeFallsBack(t *testing.T) {
	s := NewService(cache.NewMemoryStore(8, time.Minute))

	p, err := s.Recipes(context.Background(), "VEGETARIAN")
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, "recipes:vegetarian", p.Key)

	resp := decode[RecipesResponse](t, p)
	assert.Equal(t, catalog.Vegetarian, resp.DietType)
	assert.True(t, resp.Fallback)
	assert.Equal(t, catalog.GetRecipes("vegetarian"), resp.Recipes)

	// 同一筆快取供已知輸入使用時不帶 fallback
	known, err := s.Recipes(context.Background(), "vegetarian")
	require.NoError(t, err)
	assert.False(t, decode[RecipesResponse](t, known).Fallback)
	assert.NotEqual(t, p.ETag, known.ETag)
}

func TestService_FallbackKeepsFieldOrder(t *testing.T) {
	ctx := context.Background()
	s := NewService(cache.NewMemoryStore(8, time.Minute))

	tests := []struct {
		name            string
		known, fallback func() (*Payload, error)
	}{
		{"recipes",
			func() (*Payload, error) { return s.Recipes(ctx, "vegetarian") },
			func() (*Payload, error) { return s.Recipes(ctx, "keto") }},
		{"workouts",
			func() (*Payload, error) { return s.Workouts(ctx, "home workout") },
			func() (*Payload, error) { return s.Workouts(ctx, "") }},
		{"plan",
			func() (*Payload, error) { return s.Plan(ctx, "vegetarian", "home workout") },
			func() (*Payload, error) { return s.Plan(ctx, "paleo", "home workout") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known, err := tt.known()
			require.NoError(t, err)
			fallback, err := tt.fallback()
			require.NoError(t, err)

			want := strings.Replace(string(known.Body), `"fallback":false`, `"fallback":true`, 1)
			assert.Equal(t, want, string(fallback.Body))
		})
	}
}

func TestService_WorkoutsUseCache(t *testing.T) {
	store := cache.NewMemoryStore(8, time.Minute)
	s := NewService(store)
	ctx := context.Background()

	first, err := s.Workouts(ctx, "gym workout")
	require.NoError(t, err)
	second, err := s.Workouts(ctx, "gym workout")
	require.NoError(t, err)

	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, first.ETag, second.ETag)
	assert.Equal(t, int64(1), store.Stats().Hits)

	resp := decode[WorkoutsResponse](t, first)
	require.Len(t, resp.Workouts, 3)
	assert.Equal(t, "legs", resp.Workouts[1].Focus)
}

func TestService_CacheFailureIsBypassed(t *testing.T) {
	store := &brokenStore{}
	s := NewService(store)

	p, err := s.Workouts(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, p.Fallback)

	resp := decode[WorkoutsResponse](t, p)
	assert.Equal(t, catalog.HomeWorkout, resp.WorkoutType)
	assert.Equal(t, catalog.GetWorkouts("home workout"), resp.Workouts)
	assert.Equal(t, int64(1), store.gets.Load())
	assert.Equal(t, int64(1), store.sets.Load())
}

func TestService_Plan(t *testing.T) {
	s := NewService(nil)

	p, err := s.Plan(context.Background(), "non-vegetarian", "gym workout")
	require.NoError(t, err)
	assert.False(t, p.Fallback)

	resp := decode[PlanResponse](t, p)
	assert.Equal(t, catalog.NonVegetarian, resp.DietType)
	assert.Equal(t, catalog.GymWorkout, resp.WorkoutType)
	assert.Len(t, resp.Recipes.Meals, 6)
	assert.Len(t, resp.Workouts, 3)

	p, err = s.Plan(context.Background(), "non-vegetarian", "yoga")
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, catalog.HomeWorkout, decode[PlanResponse](t, p).WorkoutType)
}

func TestService_Catalog(t *testing.T) {
	s := NewService(nil)

	p, err := s.Catalog(context.Background())
	require.NoError(t, err)

	resp := decode[CatalogResponse](t, p)
	assert.Equal(t, catalog.DietTypes(), resp.DietTypes)
	assert.Equal(t, catalog.Vegetarian, resp.DefaultDietType)
	assert.Equal(t, catalog.WorkoutTypes(), resp.WorkoutTypes)
	assert.Equal(t, catalog.HomeWorkout, resp.DefaultWorkoutType)
}

func TestService_ConcurrentLookups(t *testing.T) {
	s := NewService(cache.NewMemoryStore(8, time.Minute))
	want, err := s.Recipes(context.Background(), "non-vegetarian")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Recipes(context.Background(), "non-vegetarian")
			if assert.NoError(t, err) {
				assert.Equal(t, want.ETag, p.ETag)
			}
		}()
	}
	wg.Wait()
}

func TestService_Stats(t *testing.T) {
	assert.Nil(t, NewService(nil).Stats())

	s := NewService(cache.NewMemoryStore(8, time.Minute))
	_, err := s.Catalog(context.Background())
	require.NoError(t, err)

	stats := s.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, "memory", stats.Backend)
	assert.Equal(t, 1, stats.Size)
}
