package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/USA-RedDragon/gory/internal/config"
	"github.com/USA-RedDragon/gory/internal/metrics"
	"github.com/USA-RedDragon/gory/internal/utils"
	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	tracerName     = "github.com/USA-RedDragon/gory/internal/api"
	maxDetailBytes = 4096
)

// Client talks to the trips API. It never retries; every failure is returned
// to the caller.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	inFlight   *xsync.Counter
	tracer     trace.Tracer
}

func NewClient(config *config.Config, metrics *metrics.Metrics) (*Client, error) {
	baseURL, err := url.Parse(config.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API base URL: %w", err)
	}
	if baseURL.Path == "" {
		baseURL.Path = "/"
	}

	var limiter *rate.Limiter
	if config.API.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.API.RateLimit), max(config.API.Burst, 1))
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: config.API.Timeout,
		},
		limiter:  limiter,
		metrics:  metrics,
		inFlight: xsync.NewCounter(),
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Health checks that the API answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, c.endpoint("health"), nil, "", nil)
}

// endpoint joins already-escaped path segments onto the base URL.
func (c *Client) endpoint(segments ...string) string {
	return c.baseURL.JoinPath(segments...).String()
}

func (c *Client) doJSON(ctx context.Context, op, method, endpoint string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: failed to encode request: %w", op, err)
	}
	return c.do(ctx, op, method, endpoint, bytes.NewReader(body), "application/json", out)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, op, method, endpoint, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// send performs the request and converts non-2xx answers into *StatusError.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, op, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	ctx, span := c.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", endpoint),
	)

	headers := map[string]string{
		"Accept": "application/json",
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	if id := utils.RequestIDFromContext(ctx); id != "" {
		headers[utils.RequestIDHeader] = id
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	c.inFlight.Inc()
	c.metrics.SetAPIInFlight(c.inFlight.Value())
	start := time.Now()
	resp, err := utils.HTTPRequest(ctx, c.httpClient, method, endpoint, body, headers)
	c.inFlight.Dec()
	c.metrics.SetAPIInFlight(c.inFlight.Value())
	if err != nil {
		c.metrics.ObserveAPIRequest(op, 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.metrics.ObserveAPIRequest(op, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		statusErr := &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
		span.SetStatus(codes.Error, statusErr.Error())
		return nil, statusErr
	}

	return resp, nil
}

// readDetail extracts the message of a FastAPI style {"detail": ...} body,
// falling back to the raw text.
func readDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxDetailBytes))
	if err != nil || len(data) == 0 {
		return ""
	}
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Detail != nil {
		if detail, ok := resp.Detail.(string); ok {
			return detail
		}
		encoded, err := json.Marshal(resp.Detail)
		if err == nil {
			return string(encoded)
		}
	}
	return strings.TrimSpace(string(data))
}
