package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/terra-clan/battery-guide/internal/analytics"
	"github.com/terra-clan/battery-guide/internal/models"
)

// Client is a Go SDK for the battery-guide API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new battery-guide client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: %s - %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// CategorySummary is a category without its batteries
type CategorySummary struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// BatteryDetail is a battery page
type BatteryDetail struct {
	models.BatterySpec
	Category        string            `json:"category"`
	Slug            string            `json:"slug"`
	DimensionLabels map[string]string `json:"dimension_labels"`
	HasSchematic    bool              `json:"has_schematic"`
	Sources         []models.Source   `json:"sources"`
}

// SearchResult is the answer to a search query
type SearchResult struct {
	Query   string                `json:"query"`
	Results []*models.BatterySpec `json:"results"`
	Total   int                   `json:"total"`
}

// ReadyStatus is the readiness report of the server
type ReadyStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "/health")
	return err
}

// Ready returns the readiness report. A not-ready server yields the report
// together with an *APIError carrying status 503.
func (c *Client) Ready(ctx context.Context) (*ReadyStatus, error) {
	body, err := c.doRequest(ctx, "/ready")
	var apiErr *APIError
	if err != nil && !(errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable) {
		return nil, err
	}

	var result envelope[*ReadyStatus]
	if jsonErr := json.Unmarshal(body, &result); jsonErr != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", jsonErr)
	}
	return result.Data, err
}

// ListCategories lists all categories with their battery counts
func (c *Client) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	data, err := get[struct {
		Categories []CategorySummary `json:"categories"`
	}](ctx, c, "/api/v1/categories")
	if err != nil {
		return nil, err
	}
	return data.Categories, nil
}

// GetCategory retrieves a category with all its batteries
func (c *Client) GetCategory(ctx context.Context, slug string) (*models.BatteryCategory, error) {
	return get[*models.BatteryCategory](ctx, c, "/api/v1/categories/"+url.PathEscape(slug))
}

// GetBattery retrieves a battery by category and page slug
func (c *Client) GetBattery(ctx context.Context, category, slug string) (*BatteryDetail, error) {
	return get[*BatteryDetail](ctx, c, batteryPath(category, slug))
}

// Schematic returns the SVG document of a battery
func (c *Client) Schematic(ctx context.Context, category, slug string) (string, error) {
	body, err := c.doRequest(ctx, batteryPath(category, slug)+"/schematic.svg")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Search finds batteries by name, code, device or voltage ("3.7V")
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	return get[*SearchResult](ctx, c, "/api/v1/search?"+url.Values{"q": {query}}.Encode())
}

// Popular returns the most searched queries; limit <= 0 uses the server default
func (c *Client) Popular(ctx context.Context, limit int) ([]analytics.QueryCount, error) {
	return c.queryCounts(ctx, "/api/v1/search/popular", limit)
}

// Unanswered returns the most searched queries that found no battery
func (c *Client) Unanswered(ctx context.Context, limit int) ([]analytics.QueryCount, error) {
	return c.queryCounts(ctx, "/api/v1/search/unanswered", limit)
}

func (c *Client) queryCounts(ctx context.Context, path string, limit int) ([]analytics.QueryCount, error) {
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	data, err := get[struct {
		Queries []analytics.QueryCount `json:"queries"`
	}](ctx, c, path)
	if err != nil {
		return nil, err
	}
	return data.Queries, nil
}

// Sitemap returns the sitemap XML document
func (c *Client) Sitemap(ctx context.Context) ([]byte, error) {
	return c.doRequest(ctx, "/sitemap.xml")
}

func batteryPath(category, slug string) string {
	return "/api/v1/categories/" + url.PathEscape(category) + "/batteries/" + url.PathEscape(slug)
}

// get performs a GET and unwraps the response envelope
func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return zero, err
	}

	var result envelope[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		apiErr := &APIError{StatusCode: http.StatusOK}
		if result.Error != nil {
			apiErr.Code, apiErr.Message = result.Error.Code, result.Error.Message
		}
		return zero, apiErr
	}

	return result.Data, nil
}

// doRequest performs a GET request. Error responses are returned as *APIError
// along with the raw body.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var result envelope[json.RawMessage]
		if json.Unmarshal(respBody, &result) == nil && result.Error != nil {
			apiErr.Code, apiErr.Message = result.Error.Code, result.Error.Message
		}
		return respBody, apiErr
	}

	return respBody, nil
}
