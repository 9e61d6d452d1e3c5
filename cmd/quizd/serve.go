package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-service/internal/metrics"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/memory"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnvironment()
		if err != nil {
			return err
		}
		slogger := utils.ToSlogLogger(logger)

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		metrics.Init()

		v := validator.New()
		content, err := pkg.LoadContent(cfg.ContentFile)
		if err != nil {
			return err
		}
		if err := v.Content().Validate(content); err != nil {
			return fmt.Errorf("invalid exercise content: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eventRepo, closeEvents, err := openEventRepository(cfg, slogger)
		if err != nil {
			return err
		}
		defer closeEvents()

		sessionRepo, closeSessions, err := openSessionRepository(ctx, cfg, slogger)
		if err != nil {
			return err
		}
		defer closeSessions()

		publisher, err := cfg.Events.CreateEventPublisher(slogger, eventRepo)
		if err != nil {
			return fmt.Errorf("create event publisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("Failed to close event publisher", "error", err)
			}
		}()

		manager := services.NewServiceManager(sessionRepo, eventRepo, publisher, content, v, slogger)
		limiter := handlers.RateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow)
		router := handlers.NewRouter(handlers.NewHandlerManager(manager, logger), logger, limiter)

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout.String())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

// openEventRepository uses postgres when DATABASE_URL is set and keeps events
// in memory otherwise.
func openEventRepository(cfg *config.Config, logger *slog.Logger) (repositories.EventRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, analytics events are kept in memory")
		return memory.NewEventMemory(), func() {}, nil
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		pkg.CloseDatabase(db)
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return postgres.NewEventPostgreSQL(db), func() { pkg.CloseDatabase(db) }, nil
}

func openSessionRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.SessionRepository, func(), error) {
	switch cfg.SessionStore {
	case "memory":
		sessions := memory.NewSessionMemory()
		sessions.StartSweeper(ctx, cfg.SessionTTL, logger)
		return sessions, func() {}, nil
	case "redis":
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis session store", "ttl", cfg.SessionTTL.String())
		return cache.NewSessionCache(cache.NewRedisCache(client, logger), cfg.SessionTTL), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
