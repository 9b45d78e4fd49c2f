package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "multi-agent-chat/internal/chat/delivery/http"
	"multi-agent-chat/internal/model"
	"multi-agent-chat/internal/test"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.middleware.RequestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Running in production mode")
	} else {
		srv.gin.Use(gin.Logger())
		srv.l.Infof(ctx, "Running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	// Chat: registers /api/v1/chat/{stream,ws,agents}
	chatHTTP.RegisterRoutes(api, srv.chatHandler, srv.middleware)
	srv.l.Infof(ctx, "Chat routes registered at /api/v1/chat")

	// Conversation: registers /api/v1/conversations
	if srv.conversationRoutes != nil {
		srv.conversationRoutes(api)
		srv.l.Infof(ctx, "Conversation routes registered at /api/v1/conversations")
	}

	// Test endpoints
	if srv.testHandler != nil && srv.environment != string(model.EnvironmentProduction) {
		test.RegisterRoutes(srv.gin, srv.testHandler)
		srv.l.Infof(ctx, "Test routes registered at /test")
	} else {
		srv.l.Infof(ctx, "Test handler not configured or production, skipping test routes")
	}

	return nil
}
