// Package search orchestrates query dispatch against the retrieval
// backend.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
)

// Service coordinates search dispatch and result handling.
type Service struct {
	backend Searcher
	logger  *zap.Logger
}

// New creates a search service.
func New(backend Searcher, logger *zap.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Search dispatches q and returns the replacement result set. Queries
// are validated at construction (query.New), so anything reaching this
// point is dispatchable. Transport failures are logged here and wrap
// domain.ErrBackendUnavailable for the caller's generic message; there
// is no automatic retry.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Set, error) {
	set, err := s.backend.Search(ctx, q)
	if err != nil {
		s.logger.Warn("search dispatch failed",
			zap.String("mode", string(q.Mode())),
			zap.Error(err))
		return result.Set{}, fmt.Errorf("search: %w", err)
	}

	s.logger.Debug("search completed",
		zap.String("mode", string(q.Mode())),
		zap.Int("hits", set.Len()))
	return set, nil
}
