/**
 * @description
 * This is the main entry point for the billing service.
 * It wires together configuration, the database connection, the repository,
 * the billing service, the cron scheduler, and the HTTP trigger surface,
 * then runs until a termination signal arrives.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/yagomat/supra-client-nexus-sub001/internal/api"
	"github.com/yagomat/supra-client-nexus-sub001/internal/app"
	"github.com/yagomat/supra-client-nexus-sub001/internal/billing"
	"github.com/yagomat/supra-client-nexus-sub001/internal/config"
	"github.com/yagomat/supra-client-nexus-sub001/internal/store"
	"github.com/yagomat/supra-client-nexus-sub001/pkg/rabbitmq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Establish database connection with connection pool configuration
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}

	poolCfg.MaxConns = 20
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Simple protocol avoids statement cache errors behind PgBouncer.
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// The broker is optional: without it batches are still persisted and
	// the dispatcher polls the scheduled_messages table instead.
	var producer app.EventPublisher
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("unable to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer p.Close()
		producer = p
		logger.Info("rabbitmq connection established")
	}

	// Initialize application layers
	repository := store.NewRepository(dbpool)
	clock := billing.SystemClock()
	service := app.NewService(repository, clock, nil, logger)
	jobs := app.NewJobs(service, repository, producer, clock, logger, *cfg)
	scheduler := app.NewScheduler(jobs, logger, *cfg)
	handler := api.NewHandler(service)
	router := api.NewRouter(handler)

	// Start the cron scheduler in the background
	scheduler.Start()
	logger.Info("scheduler started")

	// Configure and start the HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal to gracefully shut down
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	stopCtx := scheduler.Stop()
	<-stopCtx.Done() // Wait for running jobs to finish
	logger.Info("service stopped")
}
