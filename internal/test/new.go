package test

import (
	"github.com/gin-gonic/gin"

	"multi-agent-chat/internal/router"
	pkgLog "multi-agent-chat/pkg/log"
)

// Handler is the interface for the test handler
type Handler interface {
	HandleClassify(c *gin.Context)
	HandleHealthCheck(c *gin.Context)
}

// New creates a new test handler
func New(l pkgLog.Logger, router router.Router) Handler {
	return &handler{
		l:      l,
		router: router,
	}
}

// RegisterRoutes registers the debug endpoints under /test.
func RegisterRoutes(r gin.IRouter, h Handler) {
	g := r.Group("/test")
	{
		g.POST("/classify", h.HandleClassify)
		g.GET("/health", h.HandleHealthCheck)
	}
}
