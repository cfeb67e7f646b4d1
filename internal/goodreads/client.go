package goodreads

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/lepinkainen/openlibrary/internal/errors"
	"github.com/lepinkainen/openlibrary/internal/ratelimit"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; olib/1.0)"

// Client fetches Goodreads search pages.
type Client struct {
	baseURL    string
	httpClient ratelimit.HTTPDoer
}

// NewClient creates a client. A nil doer means http.DefaultClient; a nil
// limiter means no throttling.
func NewClient(baseURL string, doer ratelimit.HTTPDoer, limiter *ratelimit.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: ratelimit.WrapDoer(doer, limiter),
	}
}

// Search fetches the results page for q and extracts the books on it.
func (c *Client) Search(ctx context.Context, q Query) ([]Book, error) {
	endpoint := q.URL(c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewStatusError(endpoint, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, err)
	}
	return ExtractBooks(bytes.NewReader(body), c.baseURL)
}
