package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCustomError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrCacheMiss.Wrap(errors.New("redis: nil")))

	assert.True(t, errors.Is(wrapped, ErrCacheMiss))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "redis: nil")
}

func TestAsCustomError_UnknownIsInternal(t *testing.T) {
	ce := AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)

	assert.Same(t, ErrTooManyRequests, AsCustomError(ErrTooManyRequests))
}

func TestAbortWithError_WritesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	AbortWithError(c, ErrTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests","code":"TOO_MANY_REQUESTS"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}

func TestETag_StableAndQuoted(t *testing.T) {
	a := ETag([]byte(`{"a":1}`))
	assert.Equal(t, a, ETag([]byte(`{"a":1}`)))
	assert.NotEqual(t, a, ETag([]byte(`{"a":2}`)))
	assert.Len(t, a, 66)
	assert.Equal(t, byte('"'), a[0])
}

func TestParseJSONBytes(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSONBytes([]byte(`{"name":"x","extra":1}`), &v))
	assert.Equal(t, "x", v.Name)

	assert.Error(t, ParseJSONBytes([]byte(`{"name":"x"} {}`), &v))
}

func TestLogInfo_ConciseModeFilters(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev, prevMode := Logger, LogMode
	t.Cleanup(func() { Logger, LogMode = prev, prevMode })

	Logger = zap.New(core)
	LogMode = "concise"

	LogInfo("cache warmed")
	LogInfo(MsgRequestCompleted)
	LogWarn("still shown")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, MsgRequestCompleted, logs.All()[0].Message)
	assert.Equal(t, "still shown", logs.All()[1].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
}
