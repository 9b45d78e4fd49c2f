package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"multi-agent-chat/config"
	"multi-agent-chat/internal/middleware"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/pkg/log"
)

type stubChat struct{}

func (stubChat) Stream(c *gin.Context)    { c.Status(http.StatusNoContent) }
func (stubChat) WebSocket(c *gin.Context) { c.Status(http.StatusNoContent) }
func (stubChat) Agents(c *gin.Context)    { c.Status(http.StatusNoContent) }

type stubTest struct{}

func (stubTest) HandleClassify(c *gin.Context)    { c.Status(http.StatusNoContent) }
func (stubTest) HandleHealthCheck(c *gin.Context) { c.Status(http.StatusNoContent) }

func newServer(t *testing.T, env model.Environment) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: string(env),
		Middleware:  middleware.New(l, config.RateLimitConfig{}),
		ChatHandler: stubChat{},
		ConversationRoutes: func(rg *gin.RouterGroup) {
			rg.GET("/conversations/:id/turns", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		},
		TestHandler: stubTest{},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func status(srv *HTTPServer, method, path string) int {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestRoutes(t *testing.T) {
	srv := newServer(t, model.EnvironmentDevelopment)

	tcs := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodPost, "/api/v1/chat/stream", http.StatusNoContent},
		{http.MethodGet, "/api/v1/chat/ws", http.StatusNoContent},
		{http.MethodGet, "/api/v1/conversations/c1/turns", http.StatusNoContent},
		{http.MethodPost, "/test/classify", http.StatusNoContent},
	}
	for _, tc := range tcs {
		if got := status(srv, tc.method, tc.path); got != tc.want {
			t.Errorf("%s %s = %d, want %d", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestRoutes_ProductionHidesTestEndpoints(t *testing.T) {
	srv := newServer(t, model.EnvironmentProduction)
	if got := status(srv, http.MethodPost, "/test/classify"); got != http.StatusNotFound {
		t.Errorf("POST /test/classify = %d, want 404", got)
	}
}

func TestNew_Validation(t *testing.T) {
	l := log.NewNop()
	if _, err := New(l, Config{Logger: l, Port: 8080, Mode: gin.TestMode}); err == nil {
		t.Error("New() without chat handler should fail")
	}
	if _, err := New(l, Config{Logger: l, Mode: gin.TestMode, ChatHandler: stubChat{}}); err == nil {
		t.Error("New() without port should fail")
	}
}
