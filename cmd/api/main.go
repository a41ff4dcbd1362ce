// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/api"
	"github.com/Marga-Ghale/creativa-crm/internal/api/handlers"
	"github.com/Marga-Ghale/creativa-crm/internal/config"
	"github.com/Marga-Ghale/creativa-crm/internal/db"
	"github.com/Marga-Ghale/creativa-crm/internal/email"
	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/notification"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/repository/memory"
	"github.com/Marga-Ghale/creativa-crm/internal/seed"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/Marga-Ghale/creativa-crm/internal/socket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()
	logger.Setup(cfg.Environment, cfg.LogLevel)
	log := logger.With("main")

	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================
	// Storage
	// ============================================
	var repos *repository.Repositories
	storage := "postgres"

	if cfg.UsesMemoryStore() {
		storage = "memory"
		repos = memory.NewStore().Repositories()
		log.Warn().Msg("using in-memory store, data is lost on restart")
	} else {
		log.Info().Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		postgres, err := db.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
		}
		defer postgres.Close()

		repos = repository.NewRepositories(postgres.Pool, postgres.SQL)
	}

	// Redis is optional; without it survey stats are computed on every call.
	var statsCache service.StatsCache
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, caching disabled")
		} else {
			defer redisDB.Close()
			statsCache = redisDB
		}
	}

	// ============================================
	// Seed development data
	// ============================================
	if cfg.SeedData {
		if err := seed.Run(ctx, repos); err != nil {
			log.Error().Err(err).Msg("seed failed")
		}
	}

	// ============================================
	// Email
	// ============================================
	emailSvc := email.NewService(&email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		UseTLS:   cfg.SMTPUseTLS,
	})
	if !emailSvc.Configured() {
		if cfg.IsProduction() {
			log.Error().Msg("SMTP not configured, delivery notifications will fail")
		} else {
			log.Warn().Msg("SMTP not configured, delivery notifications are simulated")
		}
	}

	// ============================================
	// WebSocket hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run(ctx)

	// ============================================
	// Services and handlers
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Notifier:    notification.NewService(repos.ProjectRepo, repos.LinkRepo, emailSvc, cfg.IsProduction()),
		Broadcaster: socket.NewBroadcaster(hub),
		StatsCache:  statsCache,
	})

	health := handlers.NewHealthHandler(storage, statsCache != nil, emailSvc.Configured(), hub.ConnectedClients)
	router := api.NewRouter(api.RouterDeps{
		Handlers:       handlers.NewHandlers(services, health),
		AuthService:    services.Auth,
		AllowedOrigins: cfg.FrontendURLs,
		WebSocket:      socket.NewHandler(hub, cfg.JWTSecret, cfg.FrontendURLs).HandleWebSocket,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", storage).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server exited")
}
