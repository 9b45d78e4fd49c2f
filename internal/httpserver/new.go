package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	chatHTTP "multi-agent-chat/internal/chat/delivery/http"
	"multi-agent-chat/internal/middleware"
	"multi-agent-chat/internal/test"
	"multi-agent-chat/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	middleware  middleware.Middleware

	// Chat domain
	chatHandler chatHTTP.Handler

	// Conversation domain
	conversationRoutes func(rg *gin.RouterGroup)

	// Test domain
	testHandler test.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	// Chat domain
	ChatHandler chatHTTP.Handler

	// Conversation domain; registers its routes on the /api/v1 group
	ConversationRoutes func(rg *gin.RouterGroup)

	// Test domain, registered outside production only
	TestHandler test.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                  logger,
		gin:                gin.New(),
		port:               cfg.Port,
		mode:               cfg.Mode,
		environment:        cfg.Environment,
		middleware:         cfg.Middleware,
		chatHandler:        cfg.ChatHandler,
		conversationRoutes: cfg.ConversationRoutes,
		testHandler:        cfg.TestHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatHandler == nil {
		return errors.New("chat handler is required")
	}
	return nil
}

// Handler exposes the engine, for tests and embedding.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
