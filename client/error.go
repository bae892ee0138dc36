package client

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TransportError is returned by [Client.Exchange] when the request could
// not be completed: dial and TLS failures, timeouts, cancelled contexts, or
// a response body that could not be read in full.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrTransport, e.Method, e.URL, e.Err)
}

// Unwrap exposes both [ErrTransport] and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Timeout reports whether the failure was caused by a deadline, either the
// client timeout or the request context.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	if netErr, ok := errors.AsType[net.Error](e.Err); ok {
		return netErr.Timeout()
	}

	return false
}
