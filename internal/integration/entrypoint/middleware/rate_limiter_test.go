package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Limits hold unconditionally; no environment variable may bypass them.
	// Test suites get permissive limits through configuration instead.
	t.Setenv("E2E_MODE", "true")
	t.Setenv("ENV", "test")

	rl := NewRateLimiterWithConfig(2, time.Minute)

	engine := gin.New()
	engine.POST("/limited", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:4321"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit exhausted, got %d", code)
	}
}
