package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/config"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/geoprivacy"
	v1 "github.com/mcoutinho2512/app-Sentynela-Urban/internal/handler/http/v1"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/ratelimit"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/repository"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/service"
	"github.com/mcoutinho2512/app-Sentynela-Urban/internal/webhook"
	"github.com/mcoutinho2512/app-Sentynela-Urban/pkg/logger"
	"github.com/mcoutinho2512/app-Sentynela-Urban/pkg/postgres"
	redisclient "github.com/mcoutinho2512/app-Sentynela-Urban/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/mcoutinho2512/app-Sentynela-Urban/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Sentynela Urban API
// @version 1.0
// @description Community incident reporting service with coordinate privacy, vote-based trust and location alerts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// runExpiry resolves stale open incidents on a fixed interval until the
// context is cancelled.
func runExpiry(ctx context.Context, svc service.IncidentService, interval time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.ExpireOldIncidents(ctx); err != nil {
				log.WithError(err).Error("Incident expiry sweep failed")
			}
		}
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run migrations
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Connect to PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Initialize Redis client
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Initialize the incident event publisher
	eventPublisher := webhook.NewRedisPublisher(redisClient)

	// Initialize and start the webhook delivery worker
	webhookWorker := webhook.NewWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Initialize repositories
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient)
	userRepo := repository.NewUserRepository(dbpool)
	alertRepo := repository.NewAlertRepository(dbpool)

	// Initialize services
	limiter := ratelimit.NewRedisLimiter(redisClient)
	transformer := geoprivacy.New(rand.NewSource(time.Now().UnixNano()), cfg.GeoFuzzMaxOffsetM, cfg.GeoSnapGridM)
	incidentService := service.NewIncidentService(incidentRepo, userRepo, limiter, transformer, eventPublisher, log, cfg)
	alertService := service.NewAlertService(alertRepo, log, cfg)

	// Background sweep that resolves expired incidents
	go runExpiry(ctx, incidentService, cfg.IncidentExpireInterval, log)

	// Initialize handlers
	handler := v1.NewHandler(incidentService, alertService, log, cfg)

	// Set up the Gin router
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Swagger UI route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start the HTTP server
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
