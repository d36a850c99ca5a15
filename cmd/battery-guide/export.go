package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/storage"
)

func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Mirror the catalog into PostgreSQL",
		Long: `Mirror the catalog into PostgreSQL.

Applies pending migrations, then replaces the batteries table with the
current contents of the data directory. Requires database.dsn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Database.DSN == "" {
				return errors.New("database.dsn is not configured (set BATTERY_DATABASE_DSN)")
			}

			ctx := cmd.Context()
			repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
				DSN:          cfg.Database.DSN,
				Schema:       cfg.Database.Schema,
				MaxOpenConns: int32(cfg.Database.MaxConns),
			})
			if err != nil {
				return fmt.Errorf("failed to create database repository: %w", err)
			}
			defer repo.Close()

			return export(cmd, repo, catalog.NewLoader(cfg.Data.Dir))
		},
	}
}

func export(cmd *cobra.Command, repo storage.Repository, loader *catalog.Loader) error {
	ctx := cmd.Context()

	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	previous, err := repo.LatestExport(ctx)
	if err != nil {
		return err
	}
	if previous != nil {
		slog.Info("previous export", "export_id", previous.ID, "exported_at", previous.ExportedAt, "batteries", previous.BatteryCount)
	}

	run, err := repo.ExportCatalog(ctx, loader.AllCategories())
	if err != nil {
		return err
	}

	cmd.Printf("%s exported %d batteries in %d categories (run %s at %s)\n",
		color.New(color.Bold, color.FgGreen).Sprint("✔"),
		run.BatteryCount,
		run.CategoryCount,
		run.ID,
		run.ExportedAt.Format(time.RFC3339),
	)
	return nil
}
