package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/adapters/amqp"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ports/events"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/handlers"
	"github.com/SscSPs/buddy_tix_tracker/internal/middleware"
	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Buddy Tix Tracker API
// @version 1.0
// @description Tracks tickets bought for a buddy and the payments received back.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		p, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := p.Close(); cerr != nil {
				logger.Error("Error closing AMQP connection", slog.String("error", cerr.Error()))
			}
		}()
		publisher = p
		logger.Info("Publishing ledger events", slog.String("exchange", cfg.AMQPExchange))
	}

	// A ledger that cannot be loaded must not be served or overwritten.
	serviceContainer, err := services.NewServiceContainer(ctx, cfg, repos, publisher)
	if err != nil {
		return err
	}
	logger.Info("Ready to serve", slog.String("balance", serviceContainer.Ledger.Balance(ctx).StringFixed(2)))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
