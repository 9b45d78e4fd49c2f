package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"multi-agent-chat/internal/chat"
	"multi-agent-chat/pkg/log"
)

// Handler serves chat streams over SSE and WebSocket.
type Handler interface {
	Stream(c *gin.Context)
	WebSocket(c *gin.Context)
	Agents(c *gin.Context)
}

type handler struct {
	l        log.Logger
	uc       chat.UseCase
	upgrader websocket.Upgrader
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}
