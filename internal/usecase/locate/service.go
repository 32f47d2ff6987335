// Package locate resolves the user's current position for coordinate
// pre-filling and map recentering.
package locate

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/geo"
)

// RecenterZoom is the zoom level applied when the map recenters on the
// resolved position (city scale, closer than the initial overview).
const RecenterZoom = 10

// Guidance is the user-facing message shown when the position cannot
// be determined.
const Guidance = "Could not determine your location. Please enter coordinates manually."

// Locator resolves the current position.
type Locator interface {
	Current(ctx context.Context) (geo.Point, error)
}

// Fix is a resolved position ready for the coordinate inputs.
type Fix struct {
	Point geo.Point `json:"point"` // rounded to 4 decimal places
	Zoom  int       `json:"zoom"`
}

// Service wraps a Locator with the presentation rules.
type Service struct {
	locator Locator
	logger  *zap.Logger
}

// New creates a Service. locator may be nil when geolocation is not
// configured; Current then fails immediately.
func New(locator Locator, logger *zap.Logger) *Service {
	return &Service{locator: locator, logger: logger}
}

// Current resolves and rounds the position. Errors always wrap
// domain.ErrLocationUnavailable; the cause is logged, never surfaced.
func (s *Service) Current(ctx context.Context) (Fix, error) {
	if s.locator == nil {
		return Fix{}, domain.ErrLocationUnavailable
	}

	p, err := s.locator.Current(ctx)
	if err != nil {
		s.logger.Warn("geolocation failed", zap.Error(err))
		return Fix{}, domain.ErrLocationUnavailable
	}

	return Fix{
		Point: geo.Point{Lat: round4(p.Lat), Lon: round4(p.Lon)},
		Zoom:  RecenterZoom,
	}, nil
}

// round4 rounds to 4 decimal places, the precision shown in the
// coordinate inputs.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
