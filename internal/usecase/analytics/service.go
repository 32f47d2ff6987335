// Package analytics serves the index-wide analytics feeds, passed
// through verbatim from the backend with an optional short-TTL cache.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chronomap/georetrieve/internal/metrics"
	"github.com/chronomap/georetrieve/internal/repository/analytics"
)

// Feeder fetches the analytics feeds from the retrieval backend.
type Feeder interface {
	TopGeoreferences(ctx context.Context, size int) (json.RawMessage, error)
	TemporalDistribution(ctx context.Context, startDate, endDate string) (json.RawMessage, error)
}

// Cacher stores feed payloads between requests. Search results are
// never cached; these feeds are index-wide aggregates.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Overview bundles both feeds for the dashboard page.
type Overview struct {
	TopGeoreferences     json.RawMessage `json:"top_georeferences"`
	TemporalDistribution json.RawMessage `json:"temporal_distribution"`
}

// Service fetches and caches the analytics feeds.
type Service struct {
	backend Feeder
	cache   Cacher // nil when caching is disabled
	logger  *zap.Logger
}

// New creates an analytics service. cache may be nil.
func New(backend Feeder, cache Cacher, logger *zap.Logger) *Service {
	return &Service{backend: backend, cache: cache, logger: logger}
}

// TopGeoreferences returns the top-georeferences feed verbatim.
func (s *Service) TopGeoreferences(ctx context.Context, size int) (json.RawMessage, error) {
	return s.cached(ctx, fmt.Sprintf("top-georeferences:%d", size), func() (json.RawMessage, error) {
		return s.backend.TopGeoreferences(ctx, size)
	})
}

// TemporalDistribution returns the temporal-distribution feed verbatim.
func (s *Service) TemporalDistribution(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	key := fmt.Sprintf("temporal-distribution:%s:%s", startDate, endDate)
	return s.cached(ctx, key, func() (json.RawMessage, error) {
		return s.backend.TemporalDistribution(ctx, startDate, endDate)
	})
}

// Overview fetches both feeds concurrently for the dashboard.
func (s *Service) Overview(ctx context.Context, size int) (Overview, error) {
	var out Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.TopGeoreferences(gctx, size)
		out.TopGeoreferences = raw
		return err
	})
	g.Go(func() error {
		raw, err := s.TemporalDistribution(gctx, "", "")
		out.TemporalDistribution = raw
		return err
	})

	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("analytics overview: %w", err)
	}
	return out, nil
}

// cached consults the cache before the backend. Cache failures are
// never fatal: they degrade to a direct fetch.
func (s *Service) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			metrics.AnalyticsCacheTotal.WithLabelValues("hit").Inc()
			return data, nil
		case errors.Is(err, analytics.ErrCacheMiss):
			metrics.AnalyticsCacheTotal.WithLabelValues("miss").Inc()
		default:
			metrics.AnalyticsCacheTotal.WithLabelValues("error").Inc()
			s.logger.Warn("analytics cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data); err != nil {
			s.logger.Warn("analytics cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}
