// Package ratelimit throttles outgoing requests to the public catalog services.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging/debugging.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a new rate limiter with the given requests per second.
// The burst size equals the rate, allowing short bursts up to the rate limit.
// A non-positive rate returns nil, which callers treat as "no limiting".
func New(name string, requestsPerSecond int) *Limiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a new rate limiter with custom burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// Returns an error if the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}

// HTTPDoer is the subset of *http.Client used by the API clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Doer delays each request until its limiter admits it. It never retries.
type Doer struct {
	next    HTTPDoer
	limiter *Limiter
}

// WrapDoer returns next unchanged when limiter is nil.
func WrapDoer(next HTTPDoer, limiter *Limiter) HTTPDoer {
	if limiter == nil {
		return next
	}
	return &Doer{next: next, limiter: limiter}
}

// Do waits on the limiter using the request context, then delegates.
func (d *Doer) Do(req *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return d.next.Do(req)
}
