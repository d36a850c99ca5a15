package storage

import (
	"context"
	"time"

	"github.com/terra-clan/battery-guide/internal/models"
)

// ExportRun describes one catalog export
type ExportRun struct {
	ID            string    `json:"id"`
	ExportedAt    time.Time `json:"exported_at"`
	CategoryCount int       `json:"category_count"`
	BatteryCount  int       `json:"battery_count"`
}

// Repository defines the interface for catalog persistence
type Repository interface {
	// Migrate creates the schema and applies pending migrations
	Migrate(ctx context.Context) error

	// ExportCatalog replaces the stored catalog with the given categories
	ExportCatalog(ctx context.Context, categories []models.BatteryCategory) (*ExportRun, error)

	// LatestExport returns the most recent export, nil if there was none
	LatestExport(ctx context.Context) (*ExportRun, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
