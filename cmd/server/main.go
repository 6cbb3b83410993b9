package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tobangado69/cvrp-solver/internal/auth"
	"github.com/tobangado69/cvrp-solver/internal/common/cache"
	"github.com/tobangado69/cvrp-solver/internal/common/config"
	"github.com/tobangado69/cvrp-solver/internal/common/database"
	"github.com/tobangado69/cvrp-solver/internal/common/health"
	"github.com/tobangado69/cvrp-solver/internal/common/logging"
	"github.com/tobangado69/cvrp-solver/internal/common/middleware"
	"github.com/tobangado69/cvrp-solver/internal/common/ratelimit"
	"github.com/tobangado69/cvrp-solver/internal/cvrp"
	"github.com/tobangado69/cvrp-solver/internal/solverapi"
	"github.com/tobangado69/cvrp-solver/pkg/models"

	_ "github.com/tobangado69/cvrp-solver/docs"
)

// @title CVRP Solver API
// @version 1.0
// @description Capacitated vehicle routing problem solver: submit a fleet
// @description and a set of locations, get back routes built by the
// @description enhanced Clarke-Wright savings heuristic (and, in compare
// @description mode, by the full algorithm registry).

// @contact.name CVRP Solver Maintainers

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a service token.

// @tag.name solve
// @tag.description CVRP solve endpoints
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	loggerConfig := &logging.LoggerConfig{
		Level:      logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Format:     "json",
		Output:     os.Stdout,
		AddSource:  true,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	logger := logging.NewLogger(loggerConfig)
	logging.InitDefaultLogger(loggerConfig)

	logger.Info("Starting CVRP solver API",
		"version", "1.0.0",
		"environment", getEnv("ENVIRONMENT", "development"),
	)

	logger.Info("Connecting to database...")
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	slowQueryLogger := logging.NewSlowQueryLogger(logger, 100*time.Millisecond)
	db.Logger = slowQueryLogger

	if err := db.AutoMigrate(&models.SolveRun{}); err != nil {
		logger.Warn("AutoMigrate failed", "error", err)
	}

	logger.Info("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	logger.Info("Redis connected successfully")

	auditLogger := logging.NewAuditLogger(logger, db)
	logger.Info("Audit logging initialized")

	healthChecker := health.NewHealthChecker(db, redisClient, "CVRP Solver API", "1.0.0")
	healthHandler := health.NewHandler(healthChecker)
	metricsHandler := health.NewMetricsHandler(healthChecker)

	authService := auth.NewService(cfg.JWTSecret)
	resultCache := cache.NewRedisCache(redisClient, "cvrp")

	var externalClient cvrp.ExternalSolverClient
	if cfg.ExternalSolverURL != "" {
		externalClient = cvrp.NewHTTPExternalSolverClient(cfg.ExternalSolverURL)
		logger.Info("External solver configured", "url", cfg.ExternalSolverURL)
	}

	solverHandler := solverapi.NewHandler(db, resultCache, auditLogger, logger, externalClient)
	responseCache := middleware.NewCacheMiddleware(redisClient, "cvrp")

	r := gin.New()

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(logging.RequestLoggingMiddleware(logger))
	r.Use(logging.PerformanceLoggingMiddleware(logger, 1*time.Second))
	r.Use(logging.ErrorLoggingMiddleware(logger))
	r.Use(logging.RecoveryLoggingMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.SecurityHeaders())

	apiVersionConfig := middleware.DefaultAPIVersionConfig()
	r.Use(middleware.APIVersionMiddleware(apiVersionConfig))

	r.Use(logging.AuditMiddleware(auditLogger))

	rateLimitManager := ratelimit.NewRateLimitManager(redisClient, nil)
	rateLimitMonitor := ratelimit.NewRateLimitMonitor(redisClient)
	r.Use(ratelimit.MonitoredRateLimitMiddleware(rateLimitManager, rateLimitMonitor))

	v1 := r.Group("/api/v1")
	solverapi.RegisterRoutes(v1, solverHandler, authService, responseCache)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	health.SetupHealthRoutes(r, healthHandler)
	health.SetupMetricsRoutes(r, metricsHandler)
	logger.Info("Health check endpoints configured")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("CVRP solver API starting",
			"port", cfg.Port,
			"health_check", "http://localhost:"+cfg.Port+"/health",
			"api_docs", "http://localhost:"+cfg.Port+"/swagger/index.html",
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Warn("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited gracefully")
}

// getEnv returns environment variable or default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
