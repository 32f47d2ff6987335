// Package web serves the search UI and its JSON endpoints.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/document"
	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/mode"
	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
	analyticsuc "github.com/chronomap/georetrieve/internal/usecase/analytics"
	healthuc "github.com/chronomap/georetrieve/internal/usecase/health"
	locateuc "github.com/chronomap/georetrieve/internal/usecase/locate"
)

// backendDownMessage is the generic user-facing message for transport
// failures; the underlying error is logged, never shown.
const backendDownMessage = "Search backend unreachable. Please try again later."

// Consumer-side interfaces over the use case services.
type searchService interface {
	Search(ctx context.Context, q *query.Query) (result.Set, error)
}

type suggestService interface {
	Suggest(ctx context.Context, q string) ([]document.Suggestion, error)
}

type locateService interface {
	Current(ctx context.Context) (locateuc.Fix, error)
}

type analyticsService interface {
	TopGeoreferences(ctx context.Context, size int) (json.RawMessage, error)
	TemporalDistribution(ctx context.Context, startDate, endDate string) (json.RawMessage, error)
	Overview(ctx context.Context, size int) (analyticsuc.Overview, error)
}

type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server renders the search UI and proxies the JSON endpoints.
type Server struct {
	search    searchService
	suggest   suggestService
	locate    locateService
	analytics analyticsService
	health    healthService
	logger    *zap.Logger
	renderer  *renderer
}

// NewServer creates the web server.
func NewServer(
	search searchService,
	suggest suggestService,
	locate locateService,
	analytics analyticsService,
	health healthService,
	logger *zap.Logger,
) (*Server, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Server{
		search:    search,
		suggest:   suggest,
		locate:    locate,
		analytics: analytics,
		health:    health,
		logger:    logger,
		renderer:  r,
	}, nil
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/search", s.handleSearch)
	r.Get("/analytics", s.handleAnalyticsPage)

	r.Get("/api/suggest", s.handleSuggest)
	r.Get("/api/locate", s.handleLocate)
	r.Get("/api/analytics/top-georeferences", s.handleTopGeoreferences)
	r.Get("/api/analytics/temporal-distribution", s.handleTemporalDistribution)

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS()))))
}

// handleHome renders the empty search page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderer.page(w, s.logger, newPageData(formState{Mode: string(mode.Text)}))
}

// handleSearch validates the submitted form, dispatches the query, and
// renders cards plus marker data. Validation failures never reach the
// backend.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	form := formFromRequest(r)
	data := newPageData(form)

	q, err := buildQuery(form)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			data.Flash = userMessage(err)
		} else {
			s.logger.Error("query build failed", zap.Error(err))
			data.Flash = backendDownMessage
		}
		s.renderer.page(w, s.logger, data)
		return
	}

	set, err := s.search.Search(r.Context(), &q)
	if err != nil {
		data.Flash = backendDownMessage
		s.renderer.page(w, s.logger, data)
		return
	}

	if err := data.setResults(&set); err != nil {
		s.logger.Error("render results", zap.Error(err))
		data.Flash = backendDownMessage
	}
	s.renderer.page(w, s.logger, data)
}

// handleSuggest serves the autocomplete panel. Any failure degrades to
// an empty suggestion list: the panel simply stays hidden.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggest.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		suggestions = nil
		if !errors.Is(err, domain.ErrQueryTooShort) && !errors.Is(err, domain.ErrSuperseded) {
			s.logger.Warn("suggest failed", zap.Error(err))
		}
	}
	if suggestions == nil {
		suggestions = []document.Suggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// handleLocate resolves the current position for the coordinate inputs.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	fix, err := s.locate.Current(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": locateuc.Guidance,
		})
		return
	}
	writeJSON(w, http.StatusOK, fix)
}

// handleTopGeoreferences proxies the feed verbatim.
func (s *Server) handleTopGeoreferences(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	raw, err := s.analytics.TopGeoreferences(r.Context(), size)
	s.writeFeed(w, raw, err)
}

// handleTemporalDistribution proxies the feed verbatim.
func (s *Server) handleTemporalDistribution(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	raw, err := s.analytics.TemporalDistribution(r.Context(), params.Get("start_date"), params.Get("end_date"))
	s.writeFeed(w, raw, err)
}

func (s *Server) writeFeed(w http.ResponseWriter, raw json.RawMessage, err error) {
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": backendDownMessage})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleAnalyticsPage renders the analytics dashboard.
func (s *Server) handleAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	overview, err := s.analytics.Overview(r.Context(), 10)
	data := analyticsData{}
	if err != nil {
		data.Flash = backendDownMessage
	} else {
		data.TopGeoreferences = prettyJSON(overview.TopGeoreferences)
		data.TemporalDistribution = prettyJSON(overview.TemporalDistribution)
	}
	s.renderer.analytics(w, s.logger, data)
}

// handleHealth reports component health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// buildQuery turns raw form values into a validated Query. An absent
// mode means text search, matching the form's default selection.
func buildQuery(form formState) (query.Query, error) {
	m := mode.Mode(form.Mode)
	if form.Mode == "" {
		m = mode.Text
	}
	origin, err := parseOrigin(form.Lat, form.Lon)
	if err != nil {
		return query.Query{}, err
	}
	return query.New(m, form.Q, origin, form.Georef, form.Start, form.End, form.Distance)
}

// parseOrigin parses the optional coordinate pair. Either both fields
// are present and numeric, or both are empty.
func parseOrigin(latStr, lonStr string) (*geo.Point, error) {
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("%w: coordinates must be numeric", domain.ErrValidation)
	}
	return &geo.Point{Lat: lat, Lon: lon}, nil
}

// userMessage strips the sentinel prefix from a validation error so the
// flash shows only the actionable part.
func userMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return "Please check the search form and try again."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func prettyJSON(raw json.RawMessage) string {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
