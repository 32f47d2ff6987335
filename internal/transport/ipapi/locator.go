// Package ipapi resolves the caller's approximate position from an
// ip-api.com compatible JSON endpoint.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/geo"
)

// Locator queries an IP geolocation endpoint.
type Locator struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	URL        string // e.g. http://ip-api.com/json
	Timeout    time.Duration
	HTTPClient *http.Client // optional
	Logger     *zap.Logger
}

// New creates a Locator.
func New(cfg *Config) *Locator {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{url: cfg.URL, http: httpClient, logger: logger}
}

type response struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Current returns the current position. Failures are logged with their
// cause and surfaced as domain.ErrLocationUnavailable so the caller can
// guide the user without leaking provider internals.
func (l *Locator) Current(ctx context.Context) (geo.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return geo.Point{}, fmt.Errorf("build geolocation request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		l.logger.Warn("geolocation request failed", zap.Error(err))
		return geo.Point{}, domain.ErrLocationUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("geolocation provider returned non-200", zap.Int("status", resp.StatusCode))
		return geo.Point{}, domain.ErrLocationUnavailable
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		l.logger.Warn("geolocation response not decodable", zap.Error(err))
		return geo.Point{}, domain.ErrLocationUnavailable
	}
	if r.Status != "success" {
		l.logger.Warn("geolocation lookup refused", zap.String("message", r.Message))
		return geo.Point{}, domain.ErrLocationUnavailable
	}

	p := geo.Point{Lat: r.Lat, Lon: r.Lon}
	if !p.Valid() {
		l.logger.Warn("geolocation provider returned unusable coordinates",
			zap.Float64("lat", r.Lat), zap.Float64("lon", r.Lon))
		return geo.Point{}, domain.ErrLocationUnavailable
	}
	return p, nil
}
