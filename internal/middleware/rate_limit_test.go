package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitTestLogger()
	os.Exit(m.Run())
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		allowed, remaining := limiter.Allow("10.0.0.1", now)
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
		if remaining != 3-i-1 {
			t.Errorf("Expected remaining %d, got %d", 3-i-1, remaining)
		}
	}

	allowed, _ := limiter.Allow("10.0.0.1", now)
	if allowed {
		t.Error("Fourth request should be rejected")
	}

	// A different IP has its own budget
	if allowed, _ := limiter.Allow("10.0.0.2", now); !allowed {
		t.Error("Different IP should be allowed")
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	now := time.Now()

	if allowed, _ := limiter.Allow("10.0.0.1", now); !allowed {
		t.Fatal("First request should be allowed")
	}
	if allowed, _ := limiter.Allow("10.0.0.1", now); allowed {
		t.Fatal("Second request in window should be rejected")
	}

	later := now.Add(2 * time.Minute)
	if allowed, _ := limiter.Allow("10.0.0.1", later); !allowed {
		t.Error("Request after the window should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(2, time.Minute))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, w.Code)
		}
		if w.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("Expected X-RateLimit-Limit 2, got %s", w.Header().Get("X-RateLimit-Limit"))
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after limit, got %d", w.Code)
	}
}
