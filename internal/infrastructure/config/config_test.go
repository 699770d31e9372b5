package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "fitness-planner", cfg.App.Name)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 120, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "logs/app.log", cfg.Log.File)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("APP_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,172.16.0.0/12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache backend")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Cache:     CacheConfig{Enabled: true, Backend: CacheBackendMemory, MaxSize: 10, TTL: time.Minute},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"cache size", func(c *Config) { c.Cache.MaxSize = 0 }, "cache max size"},
		{"cache ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache ttl"},
		{"cache disabled skips checks", func(c *Config) { c.Cache = CacheConfig{} }, ""},
		{"trusted proxy ip", func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.1"} }, ""},
		{"trusted proxy cidr", func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/8"} }, ""},
		{"trusted proxy invalid", func(c *Config) { c.Server.TrustedProxies = []string{"proxy.local"} }, "invalid trusted proxy"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheBackendRedis }, "redis addr"},
		{"rate limit requests", func(c *Config) { c.RateLimit.Requests = 0 }, "rate limit requests"},
		{"rate limit window", func(c *Config) { c.RateLimit.Window = 0 }, "rate limit window"},
		{"rate limit disabled skips checks", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
