package todo

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/adamwoolhether/todoapi/client"
)

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error

type options struct {
	baseURL  *url.URL
	doer     Doer
	httpOpts []client.Option
	logger   *slog.Logger
}

// WithBaseURL points the client at another deployment of the API. Only the
// scheme, host and path prefix are used; /todos is appended.
func WithBaseURL(raw string) Option {
	return func(o *options) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base url %q must be absolute", raw)
		}
		o.baseURL = u
		return nil
	}
}

// WithDoer replaces the transport. Any type that can exchange a
// [client.Call] for a [client.Outcome] works, including *[client.Client].
func WithDoer(d Doer) Option {
	return func(o *options) error {
		if d == nil {
			return errors.New("doer must not be nil")
		}
		o.doer = d
		return nil
	}
}

// WithHTTPOptions configures the default net/http transport. It is ignored
// when [WithDoer] is also given.
func WithHTTPOptions(opts ...client.Option) Option {
	return func(o *options) error {
		o.httpOpts = append(o.httpOpts, opts...)
		return nil
	}
}

// WithLogger injects a custom [slog.Logger].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}
