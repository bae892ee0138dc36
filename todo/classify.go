package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/adamwoolhether/todoapi/client"
)

var (
	errNoOutcome = errors.New("transport returned neither outcome nor error")
	errNullBody  = errors.New("response body is null")
)

// classifyStatus maps a raw exchange onto a ClientError, or nil when the
// status is in the 2xx range. Priority is fixed: transport failure, then
// 404, then success, then everything else.
func classifyStatus(op string, out *client.Outcome, transportErr error) error {
	var e *Error

	switch {
	case transportErr != nil:
		e = NewNetworkError(transportErr)
	case out == nil:
		e = NewNetworkError(errNoOutcome)
	case out.StatusCode == http.StatusNotFound:
		e = NewItemNotFoundError()
	case out.StatusCode >= 200 && out.StatusCode <= 299:
		return nil
	default:
		e = NewUnknownError(out.StatusCode)
	}

	e.Op = op

	return e
}

// classify is classifyStatus followed by decoding the body into T. A body
// that fails to decode is a network error and no partial value escapes.
func classify[T any](op string, out *client.Outcome, transportErr error) (T, error) {
	var zero T

	if err := classifyStatus(op, out, transportErr); err != nil {
		return zero, err
	}

	var v T
	if bytes.Equal(bytes.TrimSpace(out.Body), []byte("null")) {
		e := NewNetworkError(fmt.Errorf("decoding %T: %w", v, errNullBody))
		e.Op = op
		return zero, e
	}
	if err := json.Unmarshal(out.Body, &v); err != nil {
		e := NewNetworkError(fmt.Errorf("decoding %T: %w", v, err))
		e.Op = op
		return zero, e
	}

	return v, nil
}
