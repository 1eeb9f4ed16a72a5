package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/pkg/logger"
	"github.com/capitalize-ai/gamebot/pkg/metrics"
)

const (
	// DefaultBaseURL is the public RAWG API root.
	DefaultBaseURL = "https://api.rawg.io/api"
	// DefaultTimeout bounds every catalog call.
	DefaultTimeout = 10 * time.Second
	// DefaultPageSize is the search result bound used when none is given.
	DefaultPageSize = 5

	maxBodyBytes = 8 << 20
)

// Config holds catalog client settings.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	PageSize int

	// HTTPClient overrides the default instrumented client. Its Timeout
	// is left untouched.
	HTTPClient *http.Client
}

// Client issues search, detail and screenshot queries. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     *http.Client
	logger   *logger.Logger
	tracer   trace.Tracer
}

// NewClient creates a catalog client. A missing API key is not an error
// here; every call then fails with ErrUnauthorized.
func NewClient(cfg Config, log *logger.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	if log == nil {
		log = logger.Global()
	}

	return &Client{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		http:     httpClient,
		logger:   log,
		tracer:   otel.Tracer("github.com/capitalize-ai/gamebot/internal/catalog"),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search returns up to limit games matching query, in upstream rank
// order. An empty query is sent as-is. Zero matches is a successful,
// empty result.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = c.pageSize
	}

	ctx, span := c.tracer.Start(ctx, "catalog.search", trace.WithAttributes(
		attribute.String("catalog.query", query),
		attribute.Int("catalog.limit", limit),
	))
	defer span.End()

	params := url.Values{}
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(limit))

	var resp searchResponse
	err := c.get(ctx, "search", "/games", params, &resp)
	if err == nil && resp.Results == nil {
		err = newError("search", ErrMalformed, "missing results field")
	}
	if err != nil {
		endSpan(span, err)
		return nil, err
	}

	results := make([]Summary, 0, len(*resp.Results))
	for _, r := range *resp.Results {
		results = append(results, r.toSummary())
	}
	span.SetAttributes(attribute.Int("catalog.results", len(results)))

	return results, nil
}

// GetDetail returns the full record for one game.
func (c *Client) GetDetail(ctx context.Context, id int) (*Detail, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.detail", trace.WithAttributes(
		attribute.Int("catalog.game_id", id),
	))
	defer span.End()

	var resp detailJSON
	if err := c.get(ctx, "detail", "/games/"+strconv.Itoa(id), url.Values{}, &resp); err != nil {
		endSpan(span, err)
		return nil, err
	}

	return resp.toDetail(), nil
}

// GetMedia returns up to count screenshots for one game.
func (c *Client) GetMedia(ctx context.Context, id int, count int) ([]MediaRef, error) {
	if count <= 0 {
		count = c.pageSize
	}

	ctx, span := c.tracer.Start(ctx, "catalog.media", trace.WithAttributes(
		attribute.Int("catalog.game_id", id),
		attribute.Int("catalog.count", count),
	))
	defer span.End()

	params := url.Values{}
	params.Set("page_size", strconv.Itoa(count))

	var resp mediaResponse
	err := c.get(ctx, "media", "/games/"+strconv.Itoa(id)+"/screenshots", params, &resp)
	if err == nil && resp.Results == nil {
		err = newError("media", ErrMalformed, "missing results field")
	}
	if err != nil {
		endSpan(span, err)
		return nil, err
	}

	media := make([]MediaRef, 0, len(*resp.Results))
	for _, r := range *resp.Results {
		if r.Image == "" {
			continue
		}
		media = append(media, MediaRef{ID: r.ID, Image: r.Image, Width: r.Width, Height: r.Height})
	}

	return media, nil
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalog(op, status(err), time.Since(start).Seconds())
		if err != nil {
			c.logger.Warn("catalog request failed",
				zap.String("operation", op),
				zap.String("path", path),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		}
	}()

	if c.apiKey == "" {
		return newError(op, ErrUnauthorized, "RAWG API key not configured")
	}

	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return newError(op, ErrTransport, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(op, ErrTransport, "%s", redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return newError(op, ErrTransport, "read body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newError(op, ErrMalformed, "decode: %v", err)
	}

	if msg := upstreamError(out); msg != "" {
		return newError(op, ErrTransport, "%s", msg)
	}

	return nil
}

func statusError(op string, code int, body []byte) error {
	var e errorJSON
	_ = json.Unmarshal(body, &e)
	msg := e.Error
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(op, ErrUnauthorized, "status %d: %s", code, msg)
	case http.StatusNotFound:
		return newError(op, ErrNotFound, "status %d: %s", code, msg)
	default:
		return newError(op, ErrTransport, "status %d: %s", code, msg)
	}
}

// upstreamError extracts an "error" field the service may send with a 200.
func upstreamError(out any) string {
	switch v := out.(type) {
	case *searchResponse:
		return v.Error
	case *detailJSON:
		return v.Error
	case *mediaResponse:
		return v.Error
	}
	return ""
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Sprintf("%s request timed out", urlErr.Op)
	}
	msg := err.Error()
	if key != "" {
		msg = strings.ReplaceAll(msg, key, "REDACTED")
	}
	return msg
}

func endSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
