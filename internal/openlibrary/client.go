package openlibrary

import (
	"net/http"
	"strings"

	"github.com/lepinkainen/openlibrary/internal/ratelimit"
)

const (
	// DefaultBaseURL is the public service root.
	DefaultBaseURL = "https://openlibrary.org"
	// DefaultUserAgent identifies the client to the service.
	DefaultUserAgent = "olib/1.0 (+https://github.com/lepinkainen/openlibrary)"

	maxErrorBody = 512
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client dispatches resolved requests. It only holds configuration, so a
// single Client can be shared between goroutines.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a client for the public service. Tests and mirrors swap
// the root with WithBaseURL.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL replaces the service root, e.g. with an httptest server URL.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithRateLimiter makes every request wait on limiter first. A nil limiter
// disables limiting.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}
