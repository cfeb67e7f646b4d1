package testutil

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
)

// Fixture is a canned response for a single request path.
type Fixture struct {
	Status      int
	Body        string
	ContentType string
}

// MockServer serves fixtures keyed by request path and remembers the
// raw request URIs it received.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

// NewMockServer starts a server that answers 404 for unknown paths. It is
// closed when the test completes.
func NewMockServer(t *testing.T, fixtures map[string]Fixture) *MockServer {
	t.Helper()

	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.URL.RequestURI())
		m.mu.Unlock()

		fixture, ok := fixtures[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		contentType := fixture.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		status := fixture.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(fixture.Body))
	}))
	t.Cleanup(m.Close)

	return m
}

// Requests returns the request URIs received so far, in arrival order.
func (m *MockServer) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

// JSON returns a 200 fixture with a JSON body.
func JSON(body string) Fixture {
	return Fixture{Body: body}
}

// HTML returns a 200 fixture with an HTML body.
func HTML(body string) Fixture {
	return Fixture{Body: body, ContentType: "text/html; charset=utf-8"}
}
