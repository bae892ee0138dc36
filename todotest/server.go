package todotest

import (
	"net/http/httptest"
	"testing"
)

// Server is the fake API listening on a loopback address for the duration
// of a test.
type Server struct {
	*API
	srv *httptest.Server
}

// NewServer starts the fake API and closes it when the test ends.
func NewServer(t testing.TB, optFns ...Option) *Server {
	t.Helper()

	api, err := NewHandler(optFns...)
	if err != nil {
		t.Fatalf("building fake todo api: %v", err)
	}

	s := Server{
		API: api,
		srv: httptest.NewServer(api),
	}
	t.Cleanup(s.srv.Close)

	return &s
}

// URL is the base URL to hand to todo.WithBaseURL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the listener down early, e.g. to provoke refused connections.
func (s *Server) Close() {
	s.srv.Close()
}
