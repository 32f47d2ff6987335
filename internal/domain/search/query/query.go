package query

import (
	"fmt"
	"strings"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/mode"
)

// Backend protocol defaults. The origin pair is the reference point the
// spatiotemporal endpoint assumes when the user supplies no coordinates.
const (
	DefaultOriginLat = 32.2211
	DefaultOriginLon = 35.2544
	DefaultRadius    = "500km"
)

// Query is a validated search request. Construct via New; a Query is
// built fresh per submission and never persisted.
type Query struct {
	searchMode mode.Mode
	text       string
	origin     *geo.Point
	georef     string
	start      string
	end        string
	radius     string
}

// New validates and normalizes search parameters for the given mode.
//
// Text mode requires a non-empty query string; origin and georef are
// optional ranking hints. Spatiotemporal mode requires start, end, and
// georef; origin defaults to (32.2211, 35.2544) and radius to "500km"
// when omitted. Validation failures wrap domain.ErrValidation and never
// reach the backend.
func New(m mode.Mode, text string, origin *geo.Point, georef, start, end, radius string) (Query, error) {
	if !m.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown search mode %q", domain.ErrValidation, m)
	}

	text = strings.TrimSpace(text)
	georef = strings.TrimSpace(georef)
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	radius = strings.TrimSpace(radius)

	if origin != nil && !geo.ValidateCoordinates(origin.Lat, origin.Lon) {
		return Query{}, fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}

	switch m {
	case mode.Text:
		if text == "" {
			return Query{}, fmt.Errorf("%w: please enter a search query", domain.ErrValidation)
		}
	case mode.Spatiotemporal:
		var missing []string
		if start == "" {
			missing = append(missing, "start date")
		}
		if end == "" {
			missing = append(missing, "end date")
		}
		if georef == "" {
			missing = append(missing, "place name")
		}
		if len(missing) > 0 {
			return Query{}, fmt.Errorf(
				"%w: spatiotemporal search requires %s", domain.ErrValidation, strings.Join(missing, ", "))
		}
		if origin == nil {
			origin = &geo.Point{Lat: DefaultOriginLat, Lon: DefaultOriginLon}
		}
		if radius == "" {
			radius = DefaultRadius
		}
	}

	return Query{
		searchMode: m,
		text:       text,
		origin:     origin,
		georef:     georef,
		start:      start,
		end:        end,
		radius:     radius,
	}, nil
}

// Mode returns the search strategy.
func (q *Query) Mode() mode.Mode { return q.searchMode }

// Text returns the free-text query string.
func (q *Query) Text() string { return q.text }

// Origin returns the coordinate pair, nil when the text mode omits it.
func (q *Query) Origin() *geo.Point { return q.origin }

// Georef returns the place-name filter.
func (q *Query) Georef() string { return q.georef }

// Start returns the range start date (spatiotemporal mode).
func (q *Query) Start() string { return q.start }

// End returns the range end date (spatiotemporal mode).
func (q *Query) End() string { return q.end }

// Radius returns the search radius string, e.g. "500km".
func (q *Query) Radius() string { return q.radius }
