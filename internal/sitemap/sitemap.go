package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/terra-clan/battery-guide/internal/models"
)

// Namespace is the sitemaps.org schema every document is declared with
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// DefaultBaseURL is the public origin of the site
const DefaultBaseURL = "https://batteries.guide"

// Page is one sitemap entry before the base URL and date are applied
type Page struct {
	Path       string
	Priority   string
	ChangeFreq string
}

// StaticPages are the fixed pages listed ahead of categories and batteries
var StaticPages = []Page{
	{Path: "", Priority: "1.0", ChangeFreq: "weekly"},
	{Path: "/about", Priority: "0.8", ChangeFreq: "monthly"},
	{Path: "/search", Priority: "0.9", ChangeFreq: "weekly"},
}

// Builder renders sitemaps for a base URL
type Builder struct {
	baseURL string
	now     func() time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithClock overrides the clock used for <lastmod>
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a sitemap builder; a trailing slash on baseURL is dropped
func NewBuilder(baseURL string, opts ...Option) *Builder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	b := &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Pages lists static pages, then one page per category, then one per battery
func Pages(categories []models.BatteryCategory) []Page {
	pages := make([]Page, 0, len(StaticPages)+len(categories))
	pages = append(pages, StaticPages...)

	for _, c := range categories {
		pages = append(pages, Page{Path: "/" + c.Slug, Priority: "0.9", ChangeFreq: "weekly"})
	}

	for _, c := range categories {
		for _, b := range c.Batteries {
			pages = append(pages, Page{
				Path:       "/" + c.Slug + "/" + models.Slug(b.Type),
				Priority:   "0.8",
				ChangeFreq: "monthly",
			})
		}
	}
	return pages
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build renders the sitemap XML document for the given categories.
// Pages resolving to an already listed location are skipped.
func (b *Builder) Build(categories []models.BatteryCategory) ([]byte, error) {
	lastMod := b.now().UTC().Format(time.DateOnly)

	set := urlSet{Xmlns: Namespace}
	seen := make(map[string]bool)
	for _, page := range Pages(categories) {
		loc := b.baseURL + page.Path
		if seen[loc] {
			continue
		}
		seen[loc] = true

		set.URLs = append(set.URLs, urlEntry{
			Loc:        loc,
			LastMod:    lastMod,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
