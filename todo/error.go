package todo

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the closed set of failures an operation can report.
type Kind int

const (
	// KindNetwork covers transport failures and response bodies that could
	// not be decoded: the server did not deliver usable data.
	KindNetwork Kind = iota + 1
	// KindNotFound is reported for HTTP 404.
	KindNotFound
	// KindUnknown is reported for any other non-2xx status.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindNotFound:
		return "item not found"
	case KindUnknown:
		return "unknown error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrNetwork      = errors.New("network error")
	ErrItemNotFound = errors.New("item not found")
	ErrUnknown      = errors.New("unknown error")

	// ErrInvalidID is returned, without any request being made, when an
	// operation is given an empty task id.
	ErrInvalidID = errors.New("task id must not be empty")
)

// Error is the typed failure returned by every [Client] operation.
//
// Callers branch on Kind:
//
//	switch e.Kind {
//	case todo.KindNetwork:
//	case todo.KindNotFound:
//	case todo.KindUnknown: // e.StatusCode holds the status
//	}
//
// or use errors.Is with [ErrNetwork], [ErrItemNotFound] and [ErrUnknown].
type Error struct {
	Kind       Kind
	StatusCode int
	Op         string
	Err        error
}

// NewNetworkError reports a transport failure or undecodable body.
func NewNetworkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Err: cause}
}

// NewItemNotFoundError reports an HTTP 404.
func NewItemNotFoundError() *Error {
	return &Error{Kind: KindNotFound, StatusCode: http.StatusNotFound}
}

// NewUnknownError reports an unexpected status code.
func NewUnknownError(code int) *Error {
	return &Error{Kind: KindUnknown, StatusCode: code}
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindUnknown:
		msg = fmt.Sprintf("%s: status %d", e.Kind, e.StatusCode)
	default:
		msg = e.Kind.String()
	}

	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes the kind's sentinel and, when present, the cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// Equal reports whether e and other describe the same failure: same kind
// and, for unknown errors, the same status code. Op and cause are ignored.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}

	return e.Kind == other.Kind && e.StatusCode == other.StatusCode
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindNotFound:
		return ErrItemNotFound
	default:
		return ErrUnknown
	}
}

// IsNetworkError reports whether err is a network failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsItemNotFound reports whether err is a 404.
func IsItemNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

// UnknownStatus returns the status code carried by an unknown error.
func UnknownStatus(err error) (int, bool) {
	e, ok := errors.AsType[*Error](err)
	if !ok || e.Kind != KindUnknown {
		return 0, false
	}

	return e.StatusCode, true
}
