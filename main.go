package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/audit"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/config"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/controller"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/db"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/directory"
	logger "github.com/Jusharra/identity-aware-healthcare-rag-mcp/logging"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp/tools"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/dao"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/engine"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/rag"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/router"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/service"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Load the policy document. A missing or malformed document is fatal:
	// the gateway never runs without a valid policy.
	store, err := dao.Load(config.GetString("policy.file"))
	if err != nil {
		logger.Fatal("Failed to load policy document", zap.Error(err))
	}

	// User directory backend
	var userDirectory directory.Directory
	useRedis := config.GetString("directory.backend") == "redis" || config.GetBool("ratelimit.enabled")
	if useRedis {
		if err := db.InitRedis(); err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer db.CloseRedis()
	}
	if config.GetString("directory.backend") == "redis" {
		userDirectory = directory.NewRedisDirectory(db.RedisClient)
	} else {
		userDirectory = directory.NewMemoryDirectory()
	}

	// Primary retrieval backend: optional. Absence or a failed probe
	// degrades to the local knowledge fallback, it never aborts startup.
	var provider rag.Provider
	if esURL := config.GetString("elasticsearch.url"); esURL != "" {
		esProvider, err := rag.NewElasticsearchProvider(
			esURL,
			config.GetString("elasticsearch.index"),
			config.GetDuration("retrieval.timeout"),
		)
		if err != nil {
			logger.Warn("Failed to construct Elasticsearch provider, using local fallback", zap.Error(err))
		} else if err := esProvider.Ping(context.Background()); err != nil {
			logger.Warn("Retrieval backend probe failed, using local fallback", zap.Error(err))
			provider = esProvider // keep it wired; per-query failures also fall back
		} else {
			logger.Info("Connected to retrieval backend", zap.String("url", esURL))
			provider = esProvider
		}
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	notificationService := util.NewNotificationService()
	eventBus.Subscribe(util.EventDecisionRecorded, notificationService.DecisionHandler())

	// Evidence sink
	evidenceRepo, err := audit.NewFileRepository(config.GetString("evidence.file"))
	if err != nil {
		logger.Fatal("Failed to open evidence log", zap.Error(err))
	}
	defer evidenceRepo.Close()
	auditService := audit.NewService(evidenceRepo, eventBus)

	// Policy evaluation core
	evaluator := engine.NewEvaluator(store)
	ragRouter := rag.NewRouter(store)
	local := rag.NewLocalKnowledge(config.GetString("knowledge.dir"))
	orchestrator := rag.NewOrchestrator(ragRouter, provider, local, config.GetInt("retrieval.topK"))

	// Tool runtime
	registry, err := tools.BuildRegistry(store.Tools(), userDirectory)
	if err != nil {
		logger.Fatal("Failed to build tool registry", zap.Error(err))
	}
	dispatcher := mcp.NewDispatcher(registry, auditService)

	// Gateway service and controllers
	gatewayService := service.NewGatewayService(evaluator, orchestrator, dispatcher, auditService)
	gatewayController := controller.NewGatewayController(gatewayService)
	auditController := controller.NewAuditController(auditService)

	// Set up the router
	gin.SetMode(gin.ReleaseMode)
	engineRouter := router.SetupRouter(gatewayController, auditController, router.Options{
		RateLimitEnabled:  config.GetBool("ratelimit.enabled"),
		RateLimitRequests: config.GetInt("ratelimit.requests"),
		RateLimitWindow:   config.GetDuration("ratelimit.window"),
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
