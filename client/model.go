package client

import (
	"errors"
	"net/http"
	"net/url"
)

const (
	// DefaultMaxBodySize caps how much of a response body [Client.Exchange]
	// buffers before giving up with [ErrBodyTooLarge].
	DefaultMaxBodySize = 10 << 20 // 10MB

	contentTypeJSON = "application/json"
)

var (
	// ErrTransport is the sentinel wrapped by [TransportError]. It signals that
	// no usable HTTP response was obtained.
	ErrTransport = errors.New("transport failure")
	// ErrBodyTooLarge is joined with [ErrTransport] when a response body
	// exceeds the configured maximum size.
	ErrBodyTooLarge = errors.New("response body too large")
)

// Call describes a single HTTP exchange: method, target, extra headers and
// an optional JSON payload.
type Call struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   any
}

// Outcome is the raw result of a completed round trip. Status codes are
// never interpreted by this package.
type Outcome struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
