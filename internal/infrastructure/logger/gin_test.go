package logger

import (
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

func findRequestLog(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP request" {
			e := entry
			return &e
		}
	}
	t.Fatal("HTTP request log entry not found")
	return nil
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/customers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entry := findRequestLog(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fieldMap := make(map[string]zapcore.Field)
	for _, field := range entry.Context {
		fieldMap[field.Key] = field
	}
	assert.Contains(t, fieldMap, "status")
	assert.Contains(t, fieldMap, "latency")
	assert.Contains(t, fieldMap, "client_ip")
	assert.Contains(t, fieldMap, "user_agent")
	assert.Contains(t, fieldMap, "method")
	assert.Contains(t, fieldMap, "path")
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zapLogger))
	router.GET("/customers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	router.ServeHTTP(w, req)

	entry := findRequestLog(t, recorded)

	hasRequestID := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			hasRequestID = true
			assert.Equal(t, "req-123", field.String)
		}
	}
	assert.True(t, hasRequestID)
}

func TestGinMiddleware_TenantHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/customers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	req.Header.Set("X-Tenant-ID", "4f2d7c0a-0000-0000-0000-000000000001")
	router.ServeHTTP(w, req)

	entry := findRequestLog(t, recorded)

	hasTenant := false
	for _, field := range entry.Context {
		if field.Key == "tenant_id" {
			hasTenant = true
			assert.Equal(t, "4f2d7c0a-0000-0000-0000-000000000001", field.String)
		}
	}
	assert.True(t, hasTenant)
}

func TestGinMiddleware_StatusLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		status   int
		expected zapcore.Level
	}{
		{"2xx logs at info", http.StatusOK, zapcore.InfoLevel},
		{"4xx logs at warn", http.StatusBadRequest, zapcore.WarnLevel},
		{"5xx logs at error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)
			zapLogger := zap.New(core)

			router := gin.New()
			router.Use(GinMiddleware(zapLogger))
			router.GET("/route", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/route", nil)
			router.ServeHTTP(w, req)

			entry := findRequestLog(t, recorded)
			assert.Equal(t, tt.expected, entry.Level)
		})
	}
}

func TestGinMiddleware_WithQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/customers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers?neighborhood=guama&page=1", nil)
	router.ServeHTTP(w, req)

	entry := findRequestLog(t, recorded)

	hasQuery := false
	for _, field := range entry.Context {
		if field.Key == "query" {
			hasQuery = true
			assert.Contains(t, field.String, "neighborhood=guama")
		}
	}
	assert.True(t, hasQuery)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(zapLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, _ := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	var retrievedLogger *zap.Logger

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/customers", func(c *gin.Context) {
		retrievedLogger = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, retrievedLogger)
}

func TestGetGinLogger_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrievedLogger *zap.Logger

	router := gin.New()
	router.GET("/customers", func(c *gin.Context) {
		retrievedLogger = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/customers", nil)
	router.ServeHTTP(w, req)

	// nop logger, never nil
	require.NotNil(t, retrievedLogger)
	assert.NotPanics(t, func() {
		retrievedLogger.Info("still usable")
	})
}
