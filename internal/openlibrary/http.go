package openlibrary

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lepinkainen/openlibrary/internal/errors"
	"github.com/lepinkainen/openlibrary/internal/ratelimit"
)

// Result is a decoded response. Record is set for flat kinds, Envelope for
// list kinds.
type Result struct {
	Kind     Kind
	Strategy Strategy
	URL      string
	Record   Record
	Envelope *Envelope
}

// URL returns the absolute request URL for p without sending anything.
func (c *Client) URL(p Params) (string, error) {
	path, query := Resolve(p)
	return c.buildURL(path, query)
}

// Execute sends one GET for host+path+query and returns the raw body. Any
// failure before a 2xx body is read is a *errors.TransportError. There are
// no retries.
func (c *Client) Execute(ctx context.Context, path string, query Query) ([]byte, error) {
	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return nil, errors.NewTransportError(c.baseURL+path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := ratelimit.WrapDoer(c.httpClient, c.rateLimiter).Do(req)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.NewStatusError(endpoint, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(endpoint, fmt.Errorf("reading body: %w", err))
	}
	return body, nil
}

// Do resolves, dispatches and decodes p.
func (c *Client) Do(ctx context.Context, p Params) (*Result, error) {
	if !p.kind.Valid() {
		return nil, errors.NewInvalidFieldError("kind", p.kind.String())
	}
	path, query := Resolve(p)
	body, err := c.Execute(ctx, path, query)
	if err != nil {
		return nil, err
	}

	result, err := Decode(p.kind, body)
	if err != nil {
		return nil, err
	}
	result.URL, _ = c.buildURL(path, query)
	return result, nil
}

// ErrStrategyMismatch is returned by Fetch and List when p decodes with the
// other strategy.
var ErrStrategyMismatch = stdErrors.New("resource kind uses a different decoding strategy")

// Fetch is Do for flat kinds (work, edition, isbn, author).
func (c *Client) Fetch(ctx context.Context, p Params) (Record, error) {
	if p.kind.Strategy() != StrategyFlat {
		return nil, fmt.Errorf("fetch %s: %w", p.kind, ErrStrategyMismatch)
	}
	result, err := c.Do(ctx, p)
	if err != nil {
		return nil, err
	}
	return result.Record, nil
}

// List is Do for envelope kinds (search, subject, author works, batch).
func (c *Client) List(ctx context.Context, p Params) (*Envelope, error) {
	if p.kind.Strategy() != StrategyEnvelope {
		return nil, fmt.Errorf("list %s: %w", p.kind, ErrStrategyMismatch)
	}
	result, err := c.Do(ctx, p)
	if err != nil {
		return nil, err
	}
	return result.Envelope, nil
}

func (c *Client) buildURL(path string, query Query) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q is not absolute", c.baseURL)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}
