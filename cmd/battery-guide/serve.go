package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/analytics"
	"github.com/terra-clan/battery-guide/internal/api"
	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/exporter"
	"github.com/terra-clan/battery-guide/internal/services"
	"github.com/terra-clan/battery-guide/internal/sitemap"
	"github.com/terra-clan/battery-guide/internal/storage"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server.

Search analytics are enabled when redis.address is configured. With
database.dsn and database.export_interval set, the catalog is also exported
to PostgreSQL on that interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	slog.Info("starting battery-guide",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"data_dir", cfg.Data.Dir,
	)

	registry := services.NewRegistry()
	registry.Register("data", services.CheckFunc{Kind: "filesystem", Check: func(context.Context) error {
		info, err := os.Stat(cfg.Data.Dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", cfg.Data.Dir)
		}
		return nil
	}})

	var recorder analytics.Recorder = analytics.NopRecorder{}
	if cfg.Redis.Address != "" {
		initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
		defer initCancel()

		redisRecorder, err := analytics.NewRedisRecorder(initCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to create search analytics: %w", err)
		}
		defer redisRecorder.Close()

		registry.Register("redis", redisRecorder)
		recorder = redisRecorder
		slog.Info("search analytics enabled", "address", cfg.Redis.Address)
	}

	loader := catalog.NewLoader(cfg.Data.Dir)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if cfg.Database.DSN != "" && cfg.Database.ExportInterval > 0 {
		initCtx, initCancel := context.WithTimeout(ctx, 30*time.Second)
		defer initCancel()

		repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:          cfg.Database.DSN,
			Schema:       cfg.Database.Schema,
			MaxOpenConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			return fmt.Errorf("failed to create database repository: %w", err)
		}
		defer repo.Close()

		if err := repo.Migrate(initCtx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		registry.Register("postgres", services.CheckFunc{Kind: "postgres", Check: repo.Ping})
		exporter.NewWorker(loader, repo, cfg.Database.ExportInterval).Start(workerCtx)
	}

	server := api.NewServer(
		loader,
		sitemap.NewBuilder(cfg.Site.BaseURL),
		recorder,
		registry,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("shutting down gracefully...")

	// Stop background workers
	stopWorkers()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if err := server.Wait(shutdownCtx); err != nil {
		slog.Warn("pending search analytics dropped", "error", err)
	}

	slog.Info("battery-guide stopped")
	return nil
}
