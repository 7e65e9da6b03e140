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

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/config"
	"github.com/MichaelGetu-git/Security-Project/controller"
	"github.com/MichaelGetu-git/Security-Project/db"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/router"
	"github.com/MichaelGetu-git/Security-Project/service"
	"github.com/MichaelGetu-git/Security-Project/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jwtSecret := config.GetString("auth.jwtSecret")
	if jwtSecret == "" {
		logger.Fatal("auth.jwtSecret must be set")
	}

	// Initialize Neo4j
	if err := db.InitNeo4j(ctx); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j(context.Background())
	if err := db.EnsureNeo4jSchema(ctx, db.Neo4jDriver); err != nil {
		logger.Fatal("Failed to prepare Neo4j schema", zap.Error(err))
	}

	// Initialize Postgres
	if err := db.InitPostgres(ctx); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()
	if err := db.Migrate(ctx, db.PostgresPool); err != nil {
		logger.Fatal("Failed to migrate Postgres", zap.Error(err))
	}

	// Initialize Redis
	if err := db.InitRedis(ctx); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	// Initialize audit
	auditRepository, err := audit.NewElasticsearchRepository(
		config.GetString("elasticsearch.url"),
		config.GetString("elasticsearch.auditIndex"),
	)
	if err != nil {
		logger.Fatal("Failed to create audit repository", zap.Error(err))
	}
	if err := auditRepository.EnsureIndex(ctx); err != nil {
		logger.Warn("Failed to ensure audit index", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	notificationService := util.NewNotificationService()

	services, err := service.InitializeServices(
		db.Neo4jDriver,
		db.PostgresPool,
		auditService,
		validationUtil,
		cacheService,
		notificationService,
		eventBus,
		service.Options{
			MaxParallel: config.GetInt("decision.maxParallel"),
			LockTTL:     config.GetDuration("redis.lockTTL"),
			Location:    config.DecisionLocation(),
		},
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(controller.InitializeControllers(services), router.Settings{
		RateLimitRequests: config.GetInt("server.rateLimitRequests"),
		RateLimitDuration: config.GetDuration("server.rateLimitWindow"),
		RateLimitStore:    cacheService,
		JWTSecret:         jwtSecret,
		JWTIssuer:         config.GetString("auth.issuer"),
		Resolver:          services.User,
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: r,
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
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	eventBus.Wait()

	logger.Info("Server exiting")
}
