// Package backend is the HTTP client for the document retrieval
// backend: plain and spatiotemporal search, title autocomplete, and
// the analytics feeds.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/document"
	"github.com/chronomap/georetrieve/internal/domain/search/mode"
	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
	"github.com/chronomap/georetrieve/internal/metrics"
)

// Backend endpoint paths.
const (
	pathSearch         = "/search"
	pathSpatiotemporal = "/spatiotemporal"
	pathAutocomplete   = "/autocomplete"
	pathTopGeorefs     = "/api/analytics/top-georeferences"
	pathTemporalDist   = "/api/analytics/temporal-distribution"
)

// Client talks to the retrieval backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the backend client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, Timeout is ignored when set
	Logger     *zap.Logger
}

// New creates a backend client.
func New(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Search dispatches a validated query to the endpoint matching its mode.
func (c *Client) Search(ctx context.Context, q *query.Query) (result.Set, error) {
	path, params := buildSearchRequest(q)

	var env envelope
	if err := c.getJSON(ctx, path, params, &env); err != nil {
		return result.Set{}, err
	}
	return env.toResultSet(), nil
}

// buildSearchRequest assembles the endpoint path and query parameters
// for either search mode.
func buildSearchRequest(q *query.Query) (string, url.Values) {
	params := url.Values{}
	params.Set("q", q.Text())

	if q.Mode() == mode.Text {
		if o := q.Origin(); o != nil {
			params.Set("lat", formatCoord(o.Lat))
			params.Set("lon", formatCoord(o.Lon))
		}
		if q.Georef() != "" {
			params.Set("georef", q.Georef())
		}
		return pathSearch, params
	}

	params.Set("start", q.Start())
	params.Set("end", q.End())
	params.Set("georef", q.Georef())
	params.Set("distance", q.Radius())
	o := q.Origin() // never nil after validation: defaults applied
	params.Set("lat", formatCoord(o.Lat))
	params.Set("lon", formatCoord(o.Lon))
	return pathSpatiotemporal, params
}

// Autocomplete fetches title suggestions. Minimum-length gating happens
// in the suggest use case, not here.
func (c *Client) Autocomplete(ctx context.Context, q string, size int) ([]document.Suggestion, error) {
	params := url.Values{}
	params.Set("q", q)
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}

	var env envelope
	if err := c.getJSON(ctx, pathAutocomplete, params, &env); err != nil {
		return nil, err
	}
	return env.toSuggestions(), nil
}

// TopGeoreferences returns the top-georeferences feed verbatim.
func (c *Client) TopGeoreferences(ctx context.Context, size int) (json.RawMessage, error) {
	params := url.Values{}
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}
	return c.getRaw(ctx, pathTopGeorefs, params)
}

// TemporalDistribution returns the temporal-distribution feed verbatim.
// startDate and endDate are optional ISO dates.
func (c *Client) TemporalDistribution(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	params := url.Values{}
	if startDate != "" {
		params.Set("start_date", startDate)
	}
	if endDate != "" {
		params.Set("end_date", endDate)
	}
	return c.getRaw(ctx, pathTemporalDist, params)
}

// Ping checks backend reachability via its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", domain.ErrBackendUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("ping backend: status %d: %w", resp.StatusCode, domain.ErrBackendUnavailable)
	}
	return nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.getRaw(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.observe(path, "decode_error", 0)
		c.logger.Warn("backend response not decodable",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("decode %s response: %w", path, domain.ErrBackendUnavailable)
	}
	return nil
}

// getRaw performs a GET and returns the raw body on 2xx.
func (c *Client) getRaw(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.observe(path, "transport_error", duration)
		c.logger.Warn("backend request failed",
			zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("call %s: %w", path, domain.ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(path, "read_error", duration)
		return nil, fmt.Errorf("read %s response: %w", path, domain.ErrBackendUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(path, strconv.Itoa(resp.StatusCode), duration)
		c.logger.Warn("backend returned non-2xx",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncateBody(body)))
		return nil, fmt.Errorf("%s returned status %d: %w", path, resp.StatusCode, domain.ErrBackendUnavailable)
	}

	c.observe(path, "success", duration)
	return body, nil
}

func (c *Client) observe(path, status string, duration time.Duration) {
	metrics.BackendRequestsTotal.WithLabelValues(path, status).Inc()
	if duration > 0 {
		metrics.BackendRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncateBody keeps error logs bounded.
func truncateBody(b []byte) []byte {
	const limit = 512
	if len(b) <= limit {
		return b
	}
	return b[:limit]
}
