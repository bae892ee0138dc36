// Package restyclient is a [github.com/go-resty/resty/v2] implementation of
// the exchange used by the todo API client, for callers already configuring
// resty elsewhere.
package restyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adamwoolhether/todoapi/client"
)

const contentTypeJSON = "application/json"

// Client exchanges [client.Call] values over resty. Like [client.Client] it
// never interprets status codes; errors are always *[client.TransportError].
type Client struct {
	rc          *resty.Client
	logger      *slog.Logger
	maxBodySize int64
}

// Option is a functional option for configuring a [Client] via [New].
type Option func(*options) error

type options struct {
	rc          *resty.Client
	rt          http.RoundTripper
	timeout     *time.Duration
	userAgent   string
	logger      *slog.Logger
	maxBodySize int64
}

// New creates a Client on a fresh resty client unless [WithRestyClient] is given.
func New(optFns ...Option) (*Client, error) {
	opts := options{maxBodySize: client.DefaultMaxBodySize}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying resty option: %w", err)
		}
	}

	rc := opts.rc
	if rc == nil {
		rc = resty.New()
	}

	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}
	rc.SetLogger(slogAdapter{logger: logger})

	if opts.rt != nil {
		rc.SetTransport(opts.rt)
	}
	if opts.timeout != nil {
		rc.SetTimeout(*opts.timeout)
	}
	if opts.userAgent != "" {
		rc.SetHeader("User-Agent", opts.userAgent)
	}

	return &Client{rc: rc, logger: logger, maxBodySize: opts.maxBodySize}, nil
}

// Exchange sends call as a JSON request and returns the raw outcome.
func (c *Client) Exchange(ctx context.Context, call client.Call) (*client.Outcome, error) {
	if call.URL == nil {
		return nil, &client.TransportError{Method: call.Method, Err: errors.New("nil url")}
	}
	target := call.URL.String()

	req := c.rc.R().
		SetContext(ctx).
		SetResponseBodyLimit(int(c.maxBodySize)).
		SetHeader("Content-Type", contentTypeJSON).
		SetHeader("Accept", contentTypeJSON)

	for k, v := range call.Header {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, &client.TransportError{Method: call.Method, URL: target, Err: fmt.Errorf("encoding request payload: %w", err)}
		}
		req.SetBody(payload)
	}

	resp, err := req.Execute(call.Method, target)
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		return nil, &client.TransportError{Method: call.Method, URL: target, Err: fmt.Errorf("%w: limit %d bytes", client.ErrBodyTooLarge, c.maxBodySize)}
	}
	if err != nil {
		return nil, &client.TransportError{Method: call.Method, URL: target, Err: fmt.Errorf("exec resty request: %w", err)}
	}

	c.logger.DebugContext(ctx, "resty exchange", "method", call.Method, "url", target, "status", resp.StatusCode(), "duration", resp.Time())

	return &client.Outcome{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// WithRestyClient uses rc instead of a fresh resty client. Other options
// are applied on top of it.
func WithRestyClient(rc *resty.Client) Option {
	return func(o *options) error {
		if rc == nil {
			return errors.New("resty client must not be nil")
		}
		o.rc = rc
		return nil
	}
}

// WithTransport sets the [http.RoundTripper] resty sends requests through.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		o.userAgent = ua
		return nil
	}
}

// WithMaxBodySize caps the number of response body bytes read per call.
// Larger bodies fail with [client.ErrBodyTooLarge].
func WithMaxBodySize(n int64) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.New("max body size must be positive")
		}
		o.maxBodySize = n
		return nil
	}
}

// WithLogger routes resty's own log output and per-call debug logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// slogAdapter satisfies resty.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (s slogAdapter) Errorf(format string, v ...any) {
	s.logger.Error(fmt.Sprintf(format, v...), "source", "resty")
}

func (s slogAdapter) Warnf(format string, v ...any) {
	s.logger.Warn(fmt.Sprintf(format, v...), "source", "resty")
}

func (s slogAdapter) Debugf(format string, v ...any) {
	s.logger.Debug(fmt.Sprintf(format, v...), "source", "resty")
}
