package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/battery-guide/internal/analytics"
	"github.com/terra-clan/battery-guide/internal/catalog"
	"github.com/terra-clan/battery-guide/internal/models"
	"github.com/terra-clan/battery-guide/internal/schematic"
	"github.com/terra-clan/battery-guide/internal/sources"
)

// Catalog handlers: categories, battery pages, schematics and search

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 100
)

// categorySummary is a category without its batteries
type categorySummary struct {
	models.CategoryInfo
	Count int `json:"count"`
}

// dimensionLabels holds the display text of each dimension, empty when absent
type dimensionLabels struct {
	Diameter string `json:"diameter,omitempty"`
	Height   string `json:"height,omitempty"`
	Width    string `json:"width,omitempty"`
	Depth    string `json:"depth,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// batteryDetail is a battery page: the stored spec plus derived fields.
// Sources shadows the embedded field and holds trusted sources only.
type batteryDetail struct {
	*models.BatterySpec
	Category     string          `json:"category"`
	Slug         string          `json:"slug"`
	Labels       dimensionLabels `json:"dimension_labels"`
	HasSchematic bool            `json:"has_schematic"`
	Sources      []models.Source `json:"sources"`
}

func newBatteryDetail(category string, b *models.BatterySpec) batteryDetail {
	d := b.Dimensions
	return batteryDetail{
		BatterySpec: b,
		Category:    category,
		Slug:        models.Slug(b.Type),
		Labels: dimensionLabels{
			Diameter: d.GetDimension(models.DimDiameter),
			Height:   d.GetDimension(models.DimHeight),
			Width:    d.GetDimension(models.DimWidth),
			Depth:    d.GetDimension(models.DimDepth),
			Unit:     d.Unit,
		},
		HasSchematic: schematic.CanGenerate(b),
		Sources:      sources.FilterTrusted(b.Sources),
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := s.catalog.AllCategories()

	summaries := make([]categorySummary, 0, len(categories))
	for _, c := range categories {
		summaries = append(summaries, categorySummary{
			CategoryInfo: models.CategoryInfo{Name: c.Name, Slug: c.Slug, Description: c.Description},
			Count:        len(c.Batteries),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": summaries,
		"total":      len(summaries),
	})
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := s.catalog.Category(slug)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		slog.Error("failed to load category", "error", err, "category", slug)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load category")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

// findBattery resolves the {slug}/{battery} URL parameters, writing the
// error response itself when there is nothing to return.
func (s *Server) findBattery(w http.ResponseWriter, r *http.Request) (string, *models.BatterySpec, bool) {
	category := chi.URLParam(r, "slug")
	slug := chi.URLParam(r, "battery")

	battery, err := s.catalog.FindBySlug(category, slug)
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return "", nil, false
	case errors.Is(err, catalog.ErrInvalidIdentifier):
		respondError(w, http.StatusNotFound, "not_found", "battery not found")
		return "", nil, false
	case err != nil:
		slog.Error("failed to find battery", "error", err, "category", category, "battery", slug)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load battery")
		return "", nil, false
	case battery == nil:
		respondError(w, http.StatusNotFound, "not_found", "battery not found")
		return "", nil, false
	}

	return category, battery, true
}

func (s *Server) handleGetBattery(w http.ResponseWriter, r *http.Request) {
	category, battery, ok := s.findBattery(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, newBatteryDetail(category, battery))
}

func (s *Server) handleSchematic(w http.ResponseWriter, r *http.Request) {
	_, battery, ok := s.findBattery(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(schematic.Generate(battery))); err != nil {
		slog.Error("failed to write schematic", "error", err, "type", battery.Type)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("q") {
		respondError(w, http.StatusBadRequest, "validation_error", "query parameter q is required")
		return
	}
	query := params.Get("q")

	results := s.catalog.Search(query)
	if results == nil {
		results = []*models.BatterySpec{}
	}

	s.recordSearch(query, len(results))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	respondQueryCounts(w, r, "popular", s.recorder.Popular)
}

func (s *Server) handleUnanswered(w http.ResponseWriter, r *http.Request) {
	respondQueryCounts(w, r, "unanswered", s.recorder.Unanswered)
}

// respondQueryCounts serves a ranked query list; ?limit= defaults to 10, capped at 100
func respondQueryCounts(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	load func(context.Context, int) ([]analytics.QueryCount, error),
) {
	limit := defaultPopularLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxPopularLimit)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	queries, err := load(ctx, limit)
	if err != nil {
		slog.Error("failed to load search counts", "kind", kind, "error", err)
		respondError(w, http.StatusServiceUnavailable, "analytics_unavailable", kind+" searches are unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"queries": queries,
		"total":   len(queries),
	})
}
