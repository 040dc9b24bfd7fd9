package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupGinTestRouter создает тестовый Gin роутер
func setupGinTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGinRequestIDMiddleware(t *testing.T) {
	router := setupGinTestRouter()
	router.Use(GinRequestIDMiddleware())

	var fromGin, fromCtx string
	router.GET("/test", func(c *gin.Context) {
		fromGin = GetRequestIDFromGin(c)
		fromCtx = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, fromGin)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "client-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-42", fromGin)
	})
}

func TestGinLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := setupGinTestRouter()
	router.Use(GinRequestIDMiddleware(), GinLoggerMiddleware(logger))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"request_id":"req-1"`)
}

func TestGinRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	router := setupGinTestRouter()
	router.Use(GinRecoveryMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "Panic recovered")
}

func TestUploadLimiter(t *testing.T) {
	limiter := NewUploadLimiter(0.001, 2)

	router := setupGinTestRouter()
	router.POST("/upload", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestUploadLimiter_Disabled(t *testing.T) {
	limiter := NewUploadLimiter(0, 0)
	for range 100 {
		require.True(t, limiter.Allow())
	}
}
