package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"multi-agent-chat/config"
	_ "multi-agent-chat/docs" // Swagger docs
	"multi-agent-chat/internal/agent/visualizer"
	chatHTTP "multi-agent-chat/internal/chat/delivery/http"
	chatUC "multi-agent-chat/internal/chat/usecase"
	convHTTP "multi-agent-chat/internal/conversation/delivery/http"
	"multi-agent-chat/internal/conversation/repository"
	memoryRepo "multi-agent-chat/internal/conversation/repository/memory"
	sqliteRepo "multi-agent-chat/internal/conversation/repository/sqlite"
	convUC "multi-agent-chat/internal/conversation/usecase"
	"multi-agent-chat/internal/httpserver"
	"multi-agent-chat/internal/middleware"
	"multi-agent-chat/internal/pipeline"
	pipelineUC "multi-agent-chat/internal/pipeline/usecase"
	"multi-agent-chat/internal/router"
	"multi-agent-chat/internal/streaming"
	"multi-agent-chat/internal/test"
	"multi-agent-chat/pkg/llmprovider"
	"multi-agent-chat/pkg/log"
)

// @title       Multi-Agent Chat API
// @description Streams answers from market, pricing, news and design agents over SSE or WebSocket.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Multi-Agent Chat...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Completion service
	providers, providerErrs := llmprovider.InitializeProviders(&cfg.LLM)
	for _, pErr := range providerErrs {
		logger.Warnf(ctx, "LLM provider skipped: %v", pErr)
	}
	if len(providers) == 0 {
		logger.Error(ctx, "No LLM provider available, check llm.providers and API keys")
		return
	}
	managerCfg, err := llmprovider.ManagerConfig(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Invalid LLM manager config: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, managerCfg, logger)
	for _, p := range providers {
		logger.Infof(ctx, "✅ LLM provider %s (%s) ready", p.Name(), p.Model())
	}

	// 4. Session Store
	store, err := openStore(ctx, cfg.SessionStore, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open session store: ", err)
		return
	}
	defer store.Close()

	// 5. Agents and pipeline
	families := pipeline.DefaultFamilies()
	semanticRouter, err := router.New(llm, pipeline.RouterFamilies(families), logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize router: ", err)
		return
	}
	pipe := pipelineUC.New(logger, pipelineUC.Config{
		HistoryTurns: cfg.SessionStore.HistoryTurns,
		Agents:       cfg.Agents,
		Timezone:     cfg.Environment.Timezone,
	}, llm, store, semanticRouter, visualizer.New(llm, logger), families)

	runner := streaming.NewRunner(streaming.Config{
		HeartbeatInterval: cfg.Stream.HeartbeatInterval,
		IdleTimeout:       cfg.Stream.IdleTimeout,
		OverallTimeout:    cfg.Stream.OverallTimeout,
	}, logger)

	// 6. Delivery
	chatHandler := chatHTTP.New(logger, chatUC.New(logger, pipe, runner))
	convHandler := convHTTP.New(logger, convUC.New(store, logger))

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  middleware.New(logger, cfg.RateLimit),
		ChatHandler: chatHandler,
		ConversationRoutes: func(rg *gin.RouterGroup) {
			convHTTP.RegisterRoutes(rg, convHandler)
		},
		TestHandler: test.New(logger, semanticRouter),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func openStore(ctx context.Context, cfg config.SessionStoreConfig, logger log.Logger) (repository.Repository, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		logger.Infof(ctx, "Session store: sqlite at %s", cfg.Path)
		return sqliteRepo.New(ctx, cfg.Path, logger)
	default:
		logger.Infof(ctx, "Session store: memory (max %d conversations)", cfg.MaxConversations)
		return memoryRepo.New(cfg.MaxConversations, logger)
	}
}
