package todotest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/todoapi/todo"
)

// Option configures the fake API built by [NewHandler] and [NewServer].
type Option func(*options) error

type options struct {
	seed   []todo.Task
	logger *slog.Logger
	tracer trace.Tracer
}

// WithSeed preloads the store with tasks, keeping their order.
func WithSeed(tasks ...todo.Task) Option {
	return func(o *options) error {
		o.seed = append(o.seed, tasks...)
		return nil
	}
}

// WithFixture preloads the store from a JSON array of tasks on disk, such
// as a saved /todos response.
func WithFixture(path string) Option {
	return func(o *options) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading fixture: %w", err)
		}

		var tasks []todo.Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			return fmt.Errorf("decoding fixture %s: %w", path, err)
		}

		o.seed = append(o.seed, tasks...)
		return nil
	}
}

// WithLogger sets the logger used by the request and error middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer records a span per request and per store operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}
