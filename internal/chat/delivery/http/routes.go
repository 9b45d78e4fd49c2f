package http

import (
	"github.com/gin-gonic/gin"

	"multi-agent-chat/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/agents", h.Agents)
		chatGroup.POST("/stream", mw.RateLimit(), h.Stream)
		chatGroup.GET("/ws", mw.RateLimit(), h.WebSocket)
	}
}
