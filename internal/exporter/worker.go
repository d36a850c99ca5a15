// Package exporter keeps the PostgreSQL mirror of the catalog current while
// the server runs.
package exporter

import (
	"context"
	"log/slog"
	"time"

	"github.com/terra-clan/battery-guide/internal/models"
	"github.com/terra-clan/battery-guide/internal/storage"
)

// Source yields the catalog to export
type Source interface {
	AllCategories() []models.BatteryCategory
}

// Exporter stores a catalog snapshot
type Exporter interface {
	ExportCatalog(ctx context.Context, categories []models.BatteryCategory) (*storage.ExportRun, error)
}

// exportTimeout bounds a single export cycle
const exportTimeout = time.Minute

// Worker handles periodic catalog exports
type Worker struct {
	source   Source
	exporter Exporter
	interval time.Duration
}

// NewWorker creates a new export worker
func NewWorker(source Source, exporter Exporter, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Worker{
		source:   source,
		exporter: exporter,
		interval: interval,
	}
}

// Start begins the export worker in a goroutine
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// run is the main loop for the export worker
func (w *Worker) run(ctx context.Context) {
	slog.Info("export worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run immediately on start
	w.export(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("export worker stopped")
			return
		case <-ticker.C:
			w.export(ctx)
		}
	}
}

// export writes one snapshot of the catalog
func (w *Worker) export(ctx context.Context) {
	slog.Debug("running export cycle")

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	categories := w.source.AllCategories()
	run, err := w.exporter.ExportCatalog(ctx, categories)
	if err != nil {
		slog.Error("failed to export catalog", "error", err)
		return
	}

	slog.Info("export cycle finished", "export_id", run.ID, "batteries", run.BatteryCount)
}
