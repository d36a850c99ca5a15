package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/terra-clan/battery-guide/internal/models"
)

// ErrUnknownCategory is returned for a category slug outside the fixed set
var ErrUnknownCategory = errors.New("unknown category")

// ErrInvalidIdentifier is returned for identifiers that are not safe path elements
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Loader reads battery specifications from a data directory laid out as
// <dir>/<category-slug>/<battery>.json. Nothing is cached: every call reads
// the files again, so edits on disk show up on the next request.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the data directory
func (l *Loader) Dir() string {
	return l.dir
}

// LoadBattery loads one battery from <category>/<name>.json.
// Missing or malformed files are logged and yield nil.
func (l *Loader) LoadBattery(category, name string) *models.BatterySpec {
	path, err := l.batteryPath(category, name)
	if err != nil {
		slog.Error("failed to load battery data", "category", category, "type", name, "error", err)
		return nil
	}

	battery, err := ReadBatteryFile(path)
	if err != nil {
		slog.Error("failed to load battery data", "category", category, "type", name, "error", err)
		return nil
	}
	return battery
}

// LoadCategory loads every battery file of a category, ordered by type.
// A missing directory yields an empty list; unreadable files are skipped.
func (l *Loader) LoadCategory(category string) []*models.BatterySpec {
	if !identifierPattern.MatchString(category) {
		slog.Error("failed to load category data", "category", category, "error", ErrInvalidIdentifier)
		return []*models.BatterySpec{}
	}

	dir := filepath.Join(l.dir, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("failed to load category data", "category", category, "dir", dir, "error", err)
		return []*models.BatterySpec{}
	}

	batteries := make([]*models.BatterySpec, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".json" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		battery, err := ReadBatteryFile(path)
		if err != nil {
			slog.Warn("failed to load battery file", "file", path, "error", err)
			continue
		}
		batteries = append(batteries, battery)
	}

	sortByType(batteries)
	return batteries
}

// AllCategories returns the fixed categories in display order, each with its batteries
func (l *Loader) AllCategories() []models.BatteryCategory {
	result := make([]models.BatteryCategory, 0, len(models.Categories))
	for _, info := range models.Categories {
		result = append(result, models.BatteryCategory{
			Name:        info.Name,
			Slug:        info.Slug,
			Description: info.Description,
			Batteries:   l.LoadCategory(info.Slug),
		})
	}
	return result
}

// Category returns one populated category
func (l *Loader) Category(slug string) (models.BatteryCategory, error) {
	info, ok := models.LookupCategory(slug)
	if !ok {
		return models.BatteryCategory{}, fmt.Errorf("%w: %s", ErrUnknownCategory, slug)
	}

	return models.BatteryCategory{
		Name:        info.Name,
		Slug:        info.Slug,
		Description: info.Description,
		Batteries:   l.LoadCategory(info.Slug),
	}, nil
}

// FindBySlug resolves a page slug ("cr-v3") to a battery of the category.
// The file named after the slug is tried first, then the whole category is scanned.
func (l *Loader) FindBySlug(category, slug string) (*models.BatterySpec, error) {
	if _, ok := models.LookupCategory(category); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if !identifierPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, slug)
	}

	if path, err := l.batteryPath(category, slug); err == nil {
		if battery, err := ReadBatteryFile(path); err == nil && models.Slug(battery.Type) == slug {
			return battery, nil
		}
	}

	for _, battery := range l.LoadCategory(category) {
		if models.Slug(battery.Type) == slug {
			return battery, nil
		}
	}
	return nil, nil
}

// ReadBatteryFile parses a single battery JSON document
func ReadBatteryFile(path string) (*models.BatterySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var battery models.BatterySpec
	if err := json.Unmarshal(data, &battery); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if battery.Type == "" {
		return nil, fmt.Errorf("battery type is required")
	}

	return &battery, nil
}

// batteryPath builds <dir>/<category>/<name>.json after validating both parts
func (l *Loader) batteryPath(category, name string) (string, error) {
	if !identifierPattern.MatchString(category) {
		return "", fmt.Errorf("%w: category %q", ErrInvalidIdentifier, category)
	}
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("%w: type %q", ErrInvalidIdentifier, name)
	}
	return filepath.Join(l.dir, category, name+".json"), nil
}

// sortByType orders batteries by type using English collation, with a byte
// comparison as tie-break so the order is total.
func sortByType(batteries []*models.BatterySpec) {
	col := collate.New(language.English)
	sort.SliceStable(batteries, func(i, j int) bool {
		a, b := batteries[i].Type, batteries[j].Type
		if c := col.CompareString(a, b); c != 0 {
			return c < 0
		}
		return a < b
	})
}
