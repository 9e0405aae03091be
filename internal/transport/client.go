// Package transport carries every call to the model server: unary JSON
// requests through resty, streaming requests through a raw net/http
// client whose body is handed to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the local model server API root.
const DefaultBaseURL = "http://localhost:11434/api"

// Config tunes a Client. Zero values mean "no limit" for timeouts and
// DefaultBaseURL for BaseURL.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
	Logger         *zerolog.Logger
	// HTTPClient overrides the underlying client for both unary and
	// streaming calls (tests use httptest clients).
	HTTPClient *http.Client
}

// Client is a thin JSON-over-HTTP client bound to one base URL.
type Client struct {
	baseURL        string
	requestTimeout time.Duration
	rest           *resty.Client
	stream         *http.Client
	log            zerolog.Logger
	tracer         trace.Tracer
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.ConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Timeout stays 0: unary deadlines come from RequestTimeout via
		// context, streams live as long as the caller reads them.
		hc = &http.Client{Transport: tr}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "transport").Logger()
	}
	rest := resty.NewWithClient(hc).
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{
		baseURL:        base,
		requestTimeout: cfg.RequestTimeout,
		rest:           rest,
		stream:         hc,
		log:            log,
		tracer:         otel.Tracer("ollamakit/transport"),
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends a unary request and decodes a 2xx JSON body into out (when out
// is non-nil). Non-2xx answers return a *StatusError; network failures are
// wrapped; an undecodable body wraps ErrMalformedResponse.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	ctx, span := c.startSpan(ctx, method, path)
	defer span.End()

	start := time.Now()
	req := c.rest.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		err = wrapSendError(ctx, err)
		c.finish(span, method, path, 0, start, err)
		return err
	}
	code := resp.StatusCode()
	if !resp.IsSuccess() {
		serr := &StatusError{Code: code, Body: strings.TrimSpace(resp.String())}
		c.finish(span, method, path, code, start, serr)
		return serr
	}
	c.finish(span, method, path, code, start, nil)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Stream sends a POST and returns the open response body on 2xx. The
// caller must close it. Cancelling ctx aborts the read.
func (c *Client) Stream(ctx context.Context, path string, body any) (io.ReadCloser, error) {
	ctx, span := c.startSpan(ctx, http.MethodPost, path)
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		span.End()
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		span.End()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.stream.Do(req)
	if err != nil {
		err = wrapSendError(ctx, err)
		c.finish(span, http.MethodPost, path, 0, start, err)
		span.End()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
		serr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		c.finish(span, http.MethodPost, path, resp.StatusCode, start, serr)
		span.End()
		return nil, serr
	}
	c.finish(span, http.MethodPost, path, resp.StatusCode, start, nil)
	return &spanBody{ReadCloser: resp.Body, span: span}, nil
}

func (c *Client) startSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("ollama.endpoint", path),
			attribute.String("ollama.base_url", c.baseURL),
		))
}

func (c *Client) finish(span trace.Span, method, path string, code int, start time.Time, err error) {
	dur := time.Since(start)
	status := "error"
	if code != 0 {
		status = strconv.Itoa(code)
		span.SetAttributes(attribute.Int("http.status_code", code))
	}
	observeRequest(path, method, status, dur)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Debug().Str("method", method).Str("path", path).Str("status", status).Dur("dur", dur).Err(err).Msg("request failed")
		return
	}
	c.log.Debug().Str("method", method).Str("path", path).Str("status", status).Dur("dur", dur).Msg("request done")
}

// spanBody ends the request span when the stream is closed.
type spanBody struct {
	io.ReadCloser
	span trace.Span
}

func (b *spanBody) Close() error {
	err := b.ReadCloser.Close()
	b.span.End()
	return err
}
