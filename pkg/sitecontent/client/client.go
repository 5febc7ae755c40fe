// Package client provides a typed HTTP client for the Content API, plus a
// shared ContentStore that caches its results for UI-facing consumers.
//
// Absence is structured: lookups of a missing item return ErrNotFound (the
// client branches on HTTP 404, falling back to the historical "not found"
// message convention only when the status is ambiguous). Callers should use
// errors.Is rather than matching message text.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pixelsandpetals/content-service/pkg/sitecontent"
)

// ErrNotFound indicates the requested content item does not exist. It is a
// distinguishing result, not a transport failure.
var ErrNotFound = errors.New("content not found")

// APIError represents an unsuccessful envelope from the Content API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Client is a typed HTTP client for the Content API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request failures
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Content API client. An empty baseURL defaults to the
// local development server.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateContent creates a content item and returns the stored item including
// its server-assigned id and timestamps.
func (c *Client) CreateContent(ctx context.Context, req sitecontent.CreateContentRequest) (*sitecontent.ContentItem, error) {
	var item sitecontent.ContentItem
	if err := c.do(ctx, http.MethodPost, "/api/content", req, &item); err != nil {
		c.logger.ErrorContext(ctx, "create content failed", "slug", req.Slug, "error", err)
		return nil, err
	}
	return &item, nil
}

// BulkCreateContent creates several items in one call. The batch is not
// atomic: on failure, items before the failing one stay committed server-side.
func (c *Client) BulkCreateContent(ctx context.Context, items []sitecontent.CreateContentRequest) ([]*sitecontent.ContentItem, error) {
	req := sitecontent.BulkCreateContentRequest{Items: items}
	var created []*sitecontent.ContentItem
	if err := c.do(ctx, http.MethodPost, "/api/content/bulk", req, &created); err != nil {
		c.logger.ErrorContext(ctx, "bulk create failed", "count", len(items), "error", err)
		return nil, err
	}
	return created, nil
}

// GetAllContent lists content items. Absent filters mean no constraint on
// that attribute; order is store-defined.
func (c *Client) GetAllContent(ctx context.Context, filters sitecontent.ListFilters) ([]*sitecontent.ContentItem, error) {
	query := url.Values{}
	if filters.Type != nil {
		query.Set("type", string(*filters.Type))
	}
	if filters.Status != nil {
		query.Set("status", string(*filters.Status))
	}
	path := "/api/content"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var items []*sitecontent.ContentItem
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		c.logger.ErrorContext(ctx, "list content failed", "error", err)
		return nil, err
	}
	return items, nil
}

// GetContentByID retrieves one item by id. A missing item yields ErrNotFound.
func (c *Client) GetContentByID(ctx context.Context, id string) (*sitecontent.ContentItem, error) {
	var item sitecontent.ContentItem
	if err := c.do(ctx, http.MethodGet, "/api/content/"+url.PathEscape(id), nil, &item); err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.ErrorContext(ctx, "get content failed", "content_id", id, "error", err)
		}
		return nil, err
	}
	return &item, nil
}

// GetContentBySlug retrieves one item by slug, optionally narrowed by type
// when duplicate slugs exist across types. A missing item yields ErrNotFound.
func (c *Client) GetContentBySlug(ctx context.Context, slug string, contentType *sitecontent.ContentType) (*sitecontent.ContentItem, error) {
	path := "/api/content/slug/" + url.PathEscape(slug)
	if contentType != nil {
		path += "?type=" + url.QueryEscape(string(*contentType))
	}

	var item sitecontent.ContentItem
	if err := c.do(ctx, http.MethodGet, path, nil, &item); err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.ErrorContext(ctx, "get content by slug failed", "slug", slug, "error", err)
		}
		return nil, err
	}
	return &item, nil
}

// UpdateContent applies a partial update and returns the updated full item.
// Fails with ErrNotFound if the id does not exist.
func (c *Client) UpdateContent(ctx context.Context, id string, req sitecontent.UpdateContentRequest) (*sitecontent.ContentItem, error) {
	var item sitecontent.ContentItem
	if err := c.do(ctx, http.MethodPut, "/api/content/"+url.PathEscape(id), req, &item); err != nil {
		c.logger.ErrorContext(ctx, "update content failed", "content_id", id, "error", err)
		return nil, err
	}
	return &item, nil
}

// DeleteContent deletes an item by id
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/content/"+url.PathEscape(id), nil, nil); err != nil {
		c.logger.ErrorContext(ctx, "delete content failed", "content_id", id, "error", err)
		return err
	}
	return nil
}

// envelope mirrors the API response wrapper with a lazily decoded payload
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do performs one request/response cycle against the API and decodes the
// envelope into out (which may be nil for data-less responses).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if !env.Success {
		if isNotFound(resp.StatusCode, env.Error) {
			return ErrNotFound
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// isNotFound classifies absence. The status code is authoritative; the text
// match covers older API deployments that reported absence with a 200-family
// status and only the message convention.
func isNotFound(status int, message string) bool {
	if status == http.StatusNotFound {
		return true
	}
	return strings.Contains(strings.ToLower(message), "not found")
}
