// Package analytics counts search queries so the most popular ones can be
// surfaced. Counting is best effort: a failing backend never fails a search.
package analytics

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength caps the stored length of a query, in runes
const MaxQueryLength = 100

// QueryCount is a normalized query and how often it was searched
type QueryCount struct {
	Query string  `json:"query"`
	Count float64 `json:"count"`
}

// Recorder stores search queries
type Recorder interface {
	// RecordSearch counts one search for query that returned results hits
	RecordSearch(ctx context.Context, query string, results int) error

	// Popular returns the most searched queries, most frequent first
	Popular(ctx context.Context, limit int) ([]QueryCount, error)

	// Unanswered returns the most searched queries that found nothing
	Unanswered(ctx context.Context, limit int) ([]QueryCount, error)
}

// NopRecorder discards everything; used when no backend is configured
type NopRecorder struct{}

// RecordSearch does nothing
func (NopRecorder) RecordSearch(context.Context, string, int) error { return nil }

// Popular always returns an empty list
func (NopRecorder) Popular(context.Context, int) ([]QueryCount, error) {
	return []QueryCount{}, nil
}

// Unanswered always returns an empty list
func (NopRecorder) Unanswered(context.Context, int) ([]QueryCount, error) {
	return []QueryCount{}, nil
}

// NormalizeQuery trims and lowercases a query and caps it at MaxQueryLength
// runes. It returns "" for queries that should not be counted.
func NormalizeQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) > MaxQueryLength {
		q = strings.TrimSpace(string([]rune(q)[:MaxQueryLength]))
	}
	return q
}
