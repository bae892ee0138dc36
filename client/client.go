package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/todoapi/client/throttle"
)

const tracerName = "github.com/adamwoolhether/todoapi/client"

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c           *http.Client
	logger      *slog.Logger
	tracer      trace.Tracer
	maxBodySize int64
}

// Build creates a [Client] from the given options. Unless overridden, a fresh
// *http.Client on [http.DefaultTransport], the default slog logger and the
// global otel tracer provider are used.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:           &http.Client{},
		logger:      slog.Default(),
		maxBodySize: DefaultMaxBodySize,
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	} else {
		client.tracer = otel.Tracer(tracerName)
	}

	if opts.maxBodySize > 0 {
		client.maxBodySize = opts.maxBodySize
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Exchange builds a JSON request from call, fires it and returns the raw
// outcome. Any status code is a successful exchange; only failures to obtain
// a complete response are returned as errors, always as a *[TransportError].
func (c *Client) Exchange(ctx context.Context, call Call) (*Outcome, error) {
	ctx, span := c.tracer.Start(ctx, "client.exchange", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	opts := []RequestOption{WithAccept(contentTypeJSON)}
	if call.Body != nil {
		opts = append(opts, WithPayload(call.Body))
	}
	if len(call.Header) > 0 {
		opts = append(opts, WithHeaders(call.Header))
	}

	req, err := Request(ctx, call.URL, call.Method, opts...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		var target string
		if call.URL != nil {
			target = call.URL.String()
		}
		return nil, &TransportError{Method: call.Method, URL: target, Err: err}
	}

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.String()),
	)

	out, err := c.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", out.StatusCode))

	return out, nil
}

// Do fires the request and buffers the response body into an [Outcome].
func (c *Client) Do(req *http.Request) (*Outcome, error) {
	resp, err := c.c.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("exec http do: %w", err)}
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("reading body: %w", err)}
	}

	if int64(len(body)) > c.maxBodySize {
		discardBody = false
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, c.maxBodySize)}
	}

	return &Outcome{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Request instantiates an *http.Request with the provided information.
// It's just a convenience method that wraps the public Request func.
func (c *Client) Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	return Request(ctx, reqURL, method, opts...)
}

// URL creates a url.URL for use in Request.
// It's just a convenience method that wraps the public URL func.
func (c *Client) URL(scheme, host, path string, opts ...URLOption) *url.URL {
	return URL(scheme, host, path, opts...)
}

// Request instantiates an *http.Request with the provided information.
// Content-Type defaults to `application/json` if unspecified via WithContentType.
// Payloads are encoded without a trailing newline so Content-Length matches
// the JSON document exactly.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	if reqURL == nil {
		return nil, fmt.Errorf("instantiating request: nil url")
	}

	var payload []byte
	if settings.body != nil {
		b, err := json.Marshal(settings.body)
		if err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		payload = b
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for _, cookie := range settings.cookies {
		req.AddCookie(cookie)
	}

	contentType := contentTypeJSON
	if settings.contentType != nil {
		contentType = *settings.contentType
	}

	req.Header.Set("Content-Type", contentType)
	if settings.accept != "" {
		req.Header.Set("Accept", settings.accept)
	}
	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	return req, nil
}

// URL creates a url.URL for use in Request.
func URL(scheme, host, path string, opts ...URLOption) *url.URL {
	var settings urlOpts
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.port != nil {
		host = fmt.Sprintf("%s:%d", host, *settings.port)
	}

	endpoint := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}

	if settings.queryStrings != nil {
		queryParams := url.Values{}
		for k, v := range settings.queryStrings {
			queryParams.Add(k, v)
		}

		endpoint.RawQuery = queryParams.Encode()
	}

	return &endpoint
}
