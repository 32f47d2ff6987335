package searchkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/mode"
	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/markers"
	"github.com/chronomap/georetrieve/internal/transport/backend"
	"github.com/chronomap/georetrieve/internal/transport/ipapi"
	locateuc "github.com/chronomap/georetrieve/internal/usecase/locate"
	searchuc "github.com/chronomap/georetrieve/internal/usecase/search"
	suggestuc "github.com/chronomap/georetrieve/internal/usecase/suggest"
	"github.com/chronomap/georetrieve/internal/view"
)

// Client is the searchkit entry point.
type Client struct {
	searchSvc  *searchuc.Service
	suggestSvc *suggestuc.Service
	locateSvc  *locateuc.Service
	backend    *backend.Client
	debounce   time.Duration
}

// New creates a Client for the retrieval backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("searchkit: backend base URL required")
	}

	cfg := &clientConfig{
		timeout:          defaultTimeout,
		autocompleteSize: defaultAutocompleteSize,
		debounce:         defaultDebounce,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	be := backend.New(&backend.Config{
		BaseURL:    baseURL,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
		Logger:     logger,
	})

	var locator locateuc.Locator
	if cfg.locatorURL != "" {
		locator = ipapi.New(&ipapi.Config{
			URL:        cfg.locatorURL,
			Timeout:    cfg.timeout,
			HTTPClient: cfg.httpClient,
			Logger:     logger,
		})
	}

	return &Client{
		searchSvc:  searchuc.New(be, logger),
		suggestSvc: suggestuc.New(be, cfg.autocompleteSize, logger),
		locateSvc:  locateuc.New(locator, logger),
		backend:    be,
		debounce:   cfg.debounce,
	}, nil
}

// Search validates the request, dispatches it, and returns the rendered
// outcome. Validation failures return ErrInvalidRequest without any
// backend call.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchOutcome, error) {
	m := mode.Mode(req.Mode)
	if req.Mode == "" {
		m = mode.Text
	}

	var origin *geo.Point
	if req.Lat != nil || req.Lon != nil {
		if req.Lat == nil || req.Lon == nil {
			return SearchOutcome{}, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidRequest)
		}
		origin = &geo.Point{Lat: *req.Lat, Lon: *req.Lon}
	}

	q, err := query.New(m, req.Query, origin, req.Place, req.Start, req.End, req.Radius)
	if err != nil {
		return SearchOutcome{}, mapErr(err)
	}

	set, err := c.searchSvc.Search(ctx, &q)
	if err != nil {
		return SearchOutcome{}, mapErr(err)
	}

	out := SearchOutcome{Count: set.Len()}
	for _, card := range view.Cards(&set) {
		out.Cards = append(out.Cards, Card{
			Score:       card.Score,
			Title:       card.Title,
			Authors:     card.Authors,
			Date:        card.Date,
			Coordinates: card.Coordinates,
			Preview:     card.Preview,
			FullContent: card.FullContent,
			Truncated:   card.Truncated,
			Georefs:     card.Georefs,
			Temporals:   card.Temporals,
		})
	}

	mgr := markers.NewManager()
	mgr.SetResults(&set)
	for _, mk := range mgr.Markers() {
		out.Markers = append(out.Markers, Marker{
			Lat:   mk.Point.Lat,
			Lon:   mk.Point.Lon,
			Title: mk.Popup.Title,
			Date:  mk.Popup.Date,
			Score: mk.Popup.Score,
		})
	}
	if bounds, ok := mgr.Viewport(); ok {
		out.Viewport = &Viewport{
			SouthWestLat: bounds.SouthWest.Lat,
			SouthWestLon: bounds.SouthWest.Lon,
			NorthEastLat: bounds.NorthEast.Lat,
			NorthEastLon: bounds.NorthEast.Lon,
		}
	}
	return out, nil
}

// Suggest fetches title suggestions for q. Queries shorter than 3
// characters return ErrQueryTooShort without a backend call.
func (c *Client) Suggest(ctx context.Context, q string) ([]Suggestion, error) {
	found, err := c.suggestSvc.Suggest(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]Suggestion, 0, len(found))
	for _, s := range found {
		out = append(out, Suggestion{Title: s.Title, Highlight: s.Highlight})
	}
	return out, nil
}

// Locate resolves the current approximate position. Requires
// WithGeolocation; fails with ErrLocationUnavailable otherwise.
func (c *Client) Locate(ctx context.Context) (Fix, error) {
	fix, err := c.locateSvc.Current(ctx)
	if err != nil {
		return Fix{}, mapErr(err)
	}
	return Fix{Lat: fix.Point.Lat, Lon: fix.Point.Lon, Zoom: fix.Zoom}, nil
}

// TopGeoreferences returns the top-georeferences analytics feed
// verbatim. size <= 0 uses the backend default.
func (c *Client) TopGeoreferences(ctx context.Context, size int) (json.RawMessage, error) {
	raw, err := c.backend.TopGeoreferences(ctx, size)
	return raw, mapErr(err)
}

// TemporalDistribution returns the temporal-distribution analytics feed
// verbatim. startDate and endDate are optional ISO dates.
func (c *Client) TemporalDistribution(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	raw, err := c.backend.TemporalDistribution(ctx, startDate, endDate)
	return raw, mapErr(err)
}

// Ping checks backend reachability.
func (c *Client) Ping(ctx context.Context) error {
	return mapErr(c.backend.Ping(ctx))
}
