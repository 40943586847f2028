// Package rest provides the HTTP access layer for the platform services.
//
// One configured Client issues requests for the three service groups
// (auth, user profiles, analytics) against a shared base URL. Before
// every send the durable store is consulted: if a bearer token exists it
// is attached in the Authorization header; requests proceed unmodified
// when no token exists. There is no retry, timeout, or circuit-breaking
// policy — failures propagate to the caller as *Error.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/metrics"
	"github.com/microdemo/portal-go/storage"
)

// Client is the shared transport behind the per-service backends.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Client) { r.httpClient = c }
}

// WithLogger sets a structured logger for request debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(r *Client) { r.logger = l }
}

// WithMetrics enables request metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Client) { r.metrics = m }
}

// New creates the HTTP access layer rooted at baseURL (e.g.
// "https://demo.example.com/api"). The store is read per-request to
// attach the bearer token; it is never written here.
func New(baseURL string, store storage.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		store:      store,
		logger:     slog.Default(),
		metrics:    metrics.New(false),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Auth returns the auth service backend.
func (c *Client) Auth() portal.AuthService { return &authBackend{c} }

// Profiles returns the profile service backend.
func (c *Client) Profiles() portal.ProfileService { return &profileBackend{c} }

// Analytics returns the analytics service backend.
func (c *Client) Analytics() portal.AnalyticsService { return &analyticsBackend{c} }

// do issues one request and decodes a JSON response into out (when non-nil).
// All failures are reported as *Error.
func (c *Client) do(ctx context.Context, service, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Err: fmt.Errorf("create request: %w", err)}
	}

	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := portal.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	// Bearer injection: read-only consultation of the durable store.
	if c.store != nil {
		if rec, err := c.store.Load(); err == nil && rec.Token != "" {
			req.Header.Set("Authorization", "Bearer "+rec.Token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(service, "error", time.Since(start).Seconds())
		return &Error{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRequest(service, "error", time.Since(start).Seconds())
		return &Error{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordRequest(service, "error", time.Since(start).Seconds())
		return &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.metrics.RecordRequest(service, "error", time.Since(start).Seconds())
			return &Error{Err: fmt.Errorf("decode response: %w", err)}
		}
	}

	c.metrics.RecordRequest(service, "success", time.Since(start).Seconds())
	return nil
}

// doJSON issues a request with a JSON-encoded body.
func (c *Client) doJSON(ctx context.Context, service, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, service, method, path, "application/json", body, out)
}
