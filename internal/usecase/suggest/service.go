// Package suggest implements autocomplete: minimum-length gating and
// discarding responses superseded by newer input.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/document"
)

// MinChars is the minimum trimmed query length before a lookup is
// issued; shorter input yields no suggestions and no request.
const MinChars = 3

// Completer fetches title suggestions from the retrieval backend.
type Completer interface {
	Autocomplete(ctx context.Context, q string, size int) ([]document.Suggestion, error)
}

// Service issues autocomplete lookups. Each dispatch takes a
// monotonically increasing sequence number; responses that are no
// longer the latest are discarded, so an interleaved slow response can
// never repaint a newer suggestion list.
type Service struct {
	backend Completer
	size    int
	logger  *zap.Logger
	seq     atomic.Uint64
}

// New creates a suggest service. size is the number of suggestions
// requested from the backend.
func New(backend Completer, size int, logger *zap.Logger) *Service {
	return &Service{backend: backend, size: size, logger: logger}
}

// Suggest returns suggestions for q.
//
//   - Input shorter than MinChars (after trimming) returns
//     domain.ErrQueryTooShort; the caller hides the panel and no
//     request is made.
//   - A response superseded by a newer dispatch returns
//     domain.ErrSuperseded and its payload is dropped.
//   - Backend failures are non-fatal: logged, then surfaced as
//     domain.ErrBackendUnavailable for the caller to render as an
//     empty panel.
func (s *Service) Suggest(ctx context.Context, q string) ([]document.Suggestion, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinChars {
		return nil, domain.ErrQueryTooShort
	}

	token := s.seq.Add(1)

	suggestions, err := s.backend.Autocomplete(ctx, q, s.size)
	if err != nil {
		s.logger.Warn("autocomplete lookup failed", zap.Error(err))
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	if s.seq.Load() != token {
		return nil, domain.ErrSuperseded
	}
	return suggestions, nil
}
