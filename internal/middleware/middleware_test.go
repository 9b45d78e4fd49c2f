package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"multi-agent-chat/config"
	"multi-agent-chat/pkg/log"
)

func newEngine(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.RequestID(), m.RateLimit())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, log.RequestIDFromContext(c.Request.Context()))
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, Burst: 2}))

	for i := 0; i < 2; i++ {
		if w := get(r, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
	if w := get(r, nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d, want 429", w.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{Enabled: false, RequestsPerMin: 1, Burst: 1}))

	for i := 0; i < 5; i++ {
		if w := get(r, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(New(log.NewNop(), config.RateLimitConfig{}))

	w := get(r, map[string]string{HeaderRequestID: "req-42"})
	if got := w.Header().Get(HeaderRequestID); got != "req-42" {
		t.Errorf("header = %q, want req-42", got)
	}
	if w.Body.String() != "req-42" {
		t.Errorf("context id = %q, want req-42", w.Body.String())
	}

	w = get(r, nil)
	if w.Header().Get(HeaderRequestID) == "" || w.Body.String() != w.Header().Get(HeaderRequestID) {
		t.Errorf("generated id not propagated: header %q body %q", w.Header().Get(HeaderRequestID), w.Body.String())
	}
}

func TestNewRateLimiter_DefaultBurst(t *testing.T) {
	if rl := newRateLimiter(30, 0); rl.burst != 3 {
		t.Errorf("burst = %d, want 3", rl.burst)
	}
	if rl := newRateLimiter(5, 0); rl.burst != 1 {
		t.Errorf("burst = %d, want 1", rl.burst)
	}
}
