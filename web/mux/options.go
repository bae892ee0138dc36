package mux

import (
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Option configures an App.
type Option func(*options)

type options struct {
	tracer trace.Tracer
	logger *slog.Logger
	mw     []Middleware
}

// WithMiddleware orders the given middleware by function name so that the
// logger always sees the final status written by the error handler, and
// panics are recovered closest to the route handler. Unknown middleware
// runs between the error handler and panic recovery, in the order given.
func WithMiddleware(mw ...Middleware) Option {
	type ordered struct {
		priority int
		fn       Middleware
	}

	sorted := make([]ordered, 0, len(mw))
	for _, m := range mw {
		switch name(m) {
		case "Logger":
			sorted = append(sorted, ordered{priority: 1, fn: m})
		case "Errors":
			sorted = append(sorted, ordered{priority: 2, fn: m})
		case "Panics":
			sorted = append(sorted, ordered{priority: 100, fn: m})
		default:
			sorted = append(sorted, ordered{priority: 3, fn: m})
		}
	}

	slices.SortStableFunc(sorted, func(a, b ordered) int {
		return a.priority - b.priority
	})

	chain := make([]Middleware, len(sorted))
	for i, v := range sorted {
		chain[i] = v.fn
	}

	return func(opts *options) {
		opts.mw = chain
	}
}

// WithTracer injects the given tracer into the App.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) {
		opts.tracer = tracer
	}
}

// WithLogger sets the logger used by the App for unhandled handler errors.
func WithLogger(log *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = log
	}
}

// name reports the enclosing function of a middleware closure, e.g.
// "Logger" for ".../web/middleware.Logger.func1".
func name(mw Middleware) string {
	fnName := runtime.FuncForPC(reflect.ValueOf(mw).Pointer()).Name()

	if i := strings.LastIndex(fnName, "/"); i >= 0 {
		fnName = fnName[i+1:]
	}

	parts := strings.Split(fnName, ".")
	if len(parts) >= 2 {
		return parts[1]
	}

	return fnName
}
