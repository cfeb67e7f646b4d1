package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// TransportError covers everything that went wrong before a response body
// could be handed to a decoder: a malformed URL, a network failure or a
// non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int    // zero when no response was received
	Body       string // truncated response body for status errors
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("GET %s: transport failure", e.URL)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewStatusError creates a TransportError for a non-2xx response.
func NewStatusError(url string, statusCode int, body []byte) *TransportError {
	return &TransportError{
		URL:        url,
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// NewTransportError wraps a network or URL construction failure.
func NewTransportError(url string, err error) *TransportError {
	return &TransportError{URL: url, Err: err}
}

// IsTransportError reports whether err is a TransportError (even when wrapped).
func IsTransportError(err error) bool {
	var target *TransportError
	return stdErrors.As(err, &target)
}

// DecodeError is returned when a response body does not have the shape the
// resource kind expects. Body holds the raw payload for diagnosis.
type DecodeError struct {
	Kind string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a DecodeError. The body is kept as-is.
func NewDecodeError(kind string, body []byte, err error) *DecodeError {
	return &DecodeError{Kind: kind, Body: body, Err: err}
}

// IsDecodeError reports whether err is a DecodeError (even when wrapped).
func IsDecodeError(err error) bool {
	var target *DecodeError
	return stdErrors.As(err, &target)
}
