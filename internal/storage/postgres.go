package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/terra-clan/battery-guide/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool   *pgxpool.Pool
	schema string
	now    func() time.Time
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	Schema       string
	MaxOpenConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 5
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}
	poolConfig.ConnConfig.RuntimeParams["search_path"] = pq.QuoteIdentifier(schema)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool, schema: schema, now: time.Now}, nil
}

// Migrate creates the configured schema and applies the bundled migrations
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSchemaSQL(r.schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", r.schema, err)
	}
	return RunMigrations(ctx, r.pool, Migrations())
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// ExportCatalog records a new export run and upserts every battery in one
// transaction. Rows left over from earlier runs are removed, so the table
// mirrors the data directory after each export.
func (r *PostgresRepository) ExportCatalog(ctx context.Context, categories []models.BatteryCategory) (*ExportRun, error) {
	rows, err := batteryRows(categories)
	if err != nil {
		return nil, err
	}

	run := &ExportRun{
		ID:            uuid.NewString(),
		ExportedAt:    r.now().UTC(),
		CategoryCount: len(categories),
		BatteryCount:  len(rows),
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin export: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO export_runs (id, exported_at, category_count, battery_count)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.ExportedAt, run.CategoryCount, run.BatteryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to record export run: %w", err)
	}

	query := `
		INSERT INTO batteries (category, slug, type, designation, iec_code, ansi_code, nominal_voltages, document, export_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (category, slug) DO UPDATE SET
			type = EXCLUDED.type,
			designation = EXCLUDED.designation,
			iec_code = EXCLUDED.iec_code,
			ansi_code = EXCLUDED.ansi_code,
			nominal_voltages = EXCLUDED.nominal_voltages,
			document = EXCLUDED.document,
			export_id = EXCLUDED.export_id,
			updated_at = EXCLUDED.updated_at
	`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query,
			row.Category,
			row.Slug,
			row.Type,
			nullString(row.Designation),
			nullString(row.IECCode),
			nullString(row.ANSICode),
			row.Voltages,
			row.Document,
			run.ID,
			run.ExportedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for _, row := range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, fmt.Errorf("failed to upsert %s/%s: %w", row.Category, row.Slug, err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to upsert batteries: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM batteries WHERE export_id <> $1`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove stale batteries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit export: %w", err)
	}

	slog.Info("catalog exported",
		"export_id", run.ID,
		"batteries", run.BatteryCount,
		"removed", tag.RowsAffected(),
	)

	return run, nil
}

// LatestExport returns the most recent export run
func (r *PostgresRepository) LatestExport(ctx context.Context) (*ExportRun, error) {
	query := `
		SELECT id, exported_at, category_count, battery_count
		FROM export_runs
		ORDER BY exported_at DESC
		LIMIT 1
	`

	var run ExportRun
	err := r.pool.QueryRow(ctx, query).Scan(&run.ID, &run.ExportedAt, &run.CategoryCount, &run.BatteryCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get latest export: %w", err)
	}

	return &run, nil
}

// batteryRow is one row of the batteries table
type batteryRow struct {
	Category    string
	Slug        string
	Type        string
	Designation string
	IECCode     string
	ANSICode    string
	Voltages    []float64
	Document    []byte
}

// batteryRows flattens categories into table rows. Batteries whose slug
// collides with an earlier one in the same category are skipped.
func batteryRows(categories []models.BatteryCategory) ([]batteryRow, error) {
	var rows []batteryRow
	seen := make(map[string]bool)

	for _, category := range categories {
		for _, battery := range category.Batteries {
			slug := models.Slug(battery.Type)
			key := category.Slug + "/" + slug
			if seen[key] {
				slog.Warn("skipping battery with duplicate slug", "category", category.Slug, "type", battery.Type)
				continue
			}
			seen[key] = true

			doc, err := json.Marshal(battery)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal %s: %w", battery.Type, err)
			}

			rows = append(rows, batteryRow{
				Category:    category.Slug,
				Slug:        slug,
				Type:        battery.Type,
				Designation: battery.Designation,
				IECCode:     battery.IECCode,
				ANSICode:    battery.ANSICode,
				Voltages:    battery.NominalVoltages(),
				Document:    doc,
			})
		}
	}

	return rows, nil
}

func createSchemaSQL(schema string) string {
	return "CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(schema)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
