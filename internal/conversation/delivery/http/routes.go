package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	conversations := rg.Group("/conversations")
	{
		conversations.POST("", h.Create)
		conversations.GET("/:id/turns", h.Turns)
	}
}
