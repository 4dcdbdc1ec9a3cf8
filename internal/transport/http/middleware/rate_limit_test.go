package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/avdeev/module-certification/internal/repository/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newLimitedRouter(t *testing.T, limit int, window time.Duration) (*gin.Engine, *fakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(memory.NewRateLimitStore(), zaptest.NewLogger(t)).WithClock(clock.Now)

	r := gin.New()
	r.Use(EnrichContext())
	r.Use(limiter.RateLimit(RateLimitRule{
		Name:       "test_ip",
		Limit:      limit,
		Window:     window,
		Identifier: ClientIPIdentifier(),
	}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	return r, clock
}

func get(engine *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if rec := get(r, "198.51.100.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d unexpectedly rejected: %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 2, time.Minute)

	get(r, "198.51.100.1")
	get(r, "198.51.100.1")

	rec := get(r, "198.51.100.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected zero remaining, got %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitIsolatesClients(t *testing.T) {
	r, _ := newLimitedRouter(t, 1, time.Minute)

	if rec := get(r, "198.51.100.1"); rec.Code != http.StatusOK {
		t.Fatalf("first client rejected: %d", rec.Code)
	}
	if rec := get(r, "198.51.100.2"); rec.Code != http.StatusOK {
		t.Fatalf("second client affected by first: %d", rec.Code)
	}
	if rec := get(r, "198.51.100.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected first client limited, got %d", rec.Code)
	}
}

func TestRateLimitResetsAfterWindow(t *testing.T) {
	r, clock := newLimitedRouter(t, 1, time.Minute)

	if rec := get(r, "198.51.100.1"); rec.Code != http.StatusOK {
		t.Fatalf("first request rejected: %d", rec.Code)
	}
	if rec := get(r, "198.51.100.1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected limit hit, got %d", rec.Code)
	}

	clock.Advance(61 * time.Second)

	if rec := get(r, "198.51.100.1"); rec.Code != http.StatusOK {
		t.Fatalf("expected reset after window, got %d", rec.Code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	r, _ := newLimitedRouter(t, 5, time.Minute)

	rec := get(r, "198.51.100.1")
	if rec.Header().Get("X-RateLimit-Limit") != "5" {
		t.Fatalf("unexpected limit header %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Fatalf("unexpected remaining header %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}
