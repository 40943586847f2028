// Package portal provides a Go client SDK for the microservices demo platform.
//
// The SDK defines interfaces for the three remote service groups (auth,
// user profiles, analytics) and aggregates them behind a Client. Concrete
// implementations are injected via Option functions, keeping the SDK
// independent of any specific transport: rest/ provides the HTTP backends,
// fake/ provides in-memory ones for testing.
//
// Example usage with the REST backends:
//
//	store, _ := storage.NewFileStore("/var/lib/portal/session.json")
//	api := rest.New("https://demo.example.com/api", store)
//	client, err := portal.NewClient(
//	    portal.Config{BaseURL: "https://demo.example.com/api"},
//	    portal.WithAuthService(api.Auth()),
//	    portal.WithProfileService(api.Profiles()),
//	    portal.WithAnalyticsService(api.Analytics()),
//	)
package portal

import (
	"fmt"
	"io"
	"log/slog"
)

// Client is the main entry point for platform operations.
// Service implementations are injected via Option functions.
type Client struct {
	config    Config
	logger    *slog.Logger
	auth      AuthService
	profiles  ProfileService
	analytics AnalyticsService
}

// Config holds connection and behavior configuration.
type Config struct {
	// BaseURL is the root of the platform API (e.g. "https://demo.example.com/api").
	// Informational at this level; the injected backends carry their own copy.
	BaseURL string
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets a structured logger for the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithAuthService sets the authentication service implementation.
func WithAuthService(a AuthService) Option {
	return func(c *Client) { c.auth = a }
}

// WithProfileService sets the user profile service implementation.
func WithProfileService(p ProfileService) Option {
	return func(c *Client) { c.profiles = p }
}

// WithAnalyticsService sets the analytics service implementation.
func WithAnalyticsService(a AnalyticsService) Option {
	return func(c *Client) { c.analytics = a }
}

// NewClient creates a new platform client with the given configuration and options.
// At least one service implementation must be injected.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{config: cfg}
	for _, o := range opts {
		o(c)
	}
	if c.auth == nil && c.profiles == nil && c.analytics == nil {
		return nil, fmt.Errorf("portal: no services configured — at least one service is required")
	}
	return c, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.config }

// Auth returns the authentication service, or nil if not configured.
func (c *Client) Auth() AuthService { return c.auth }

// Profiles returns the profile service, or nil if not configured.
func (c *Client) Profiles() ProfileService { return c.profiles }

// Analytics returns the analytics service, or nil if not configured.
func (c *Client) Analytics() AnalyticsService { return c.analytics }

// Close releases all resources held by the client.
// Any injected service that implements io.Closer will be closed.
func (c *Client) Close() error {
	closers := []interface{}{c.auth, c.profiles, c.analytics}
	var firstErr error
	for _, svc := range closers {
		if cl, ok := svc.(io.Closer); ok && cl != nil {
			if err := cl.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
