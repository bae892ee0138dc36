package todotest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"
	"syscall"
	"testing"
)

var (
	// ErrNoStub is returned for requests that match no registered stub.
	ErrNoStub = errors.New("no stub registered for request")

	// ErrTimeout is a transport error reporting Timeout() == true.
	ErrTimeout error = timeoutError{}

	// ErrConnRefused mimics a dial to a port nobody listens on.
	ErrConnRefused error = &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}
)

// Stub is an [http.RoundTripper] answering from canned responses keyed by
// method and absolute URL, recording every request it sees.
type Stub struct {
	mu       sync.Mutex
	routes   map[string]canned
	requests []Recorded
}

type canned struct {
	status int
	header http.Header
	body   []byte
	err    error
}

// Recorded is a request as received by a [Stub].
type Recorded struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// NewStub returns a Stub with no routes.
func NewStub() *Stub {
	return &Stub{routes: make(map[string]canned)}
}

// Respond answers method and rawURL with status and a JSON body.
func (s *Stub) Respond(method, rawURL string, status int, body []byte) {
	s.set(method, rawURL, canned{
		status: status,
		header: http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		body:   body,
	})
}

// RespondFixture answers method and rawURL with status and the contents of
// the file at path.
func (s *Stub) RespondFixture(t testing.TB, method, rawURL string, status int, path string) {
	t.Helper()

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}

	s.Respond(method, rawURL, status, body)
}

// Fail makes requests to method and rawURL fail with err before any
// response is produced.
func (s *Stub) Fail(method, rawURL string, err error) {
	s.set(method, rawURL, canned{err: err})
}

// Requests returns the requests seen so far, oldest first.
func (s *Stub) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// RoundTrip implements http.RoundTripper.
func (s *Stub) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := r.Context().Err(); err != nil {
		return nil, err
	}

	var body []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		body = b
	}

	k := key(r.Method, r.URL.String())

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method: r.Method,
		URL:    r.URL.String(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	c, ok := s.routes[k]
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoStub, k)
	}
	if c.err != nil {
		return nil, c.err
	}

	return &http.Response{
		Status:        strconv.Itoa(c.status) + " " + http.StatusText(c.status),
		StatusCode:    c.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        c.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(c.body)),
		ContentLength: int64(len(c.body)),
		Request:       r,
	}, nil
}

func (s *Stub) set(method, rawURL string, c canned) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes[key(method, rawURL)] = c
}

func key(method, rawURL string) string {
	return method + " " + rawURL
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }
