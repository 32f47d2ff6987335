package result

import "github.com/chronomap/georetrieve/internal/domain/document"

// Hit is a single scored search result.
type Hit struct {
	score float64
	doc   document.Document
}

// New creates a search hit.
func New(score float64, doc document.Document) Hit {
	return Hit{score: score, doc: doc}
}

// Score returns the backend relevance score.
func (h *Hit) Score() float64 { return h.score }

// Document returns the hit payload.
func (h *Hit) Document() *document.Document { return &h.doc }

// Set is an ordered result set. Order is the backend's relevance
// ranking and is never re-sorted client-side. A Set replaces the
// previous one wholesale on every search.
type Set struct {
	hits []Hit
}

// NewSet creates a result set from ordered hits.
func NewSet(hits []Hit) Set { return Set{hits: hits} }

// Hits returns the hits in backend order.
func (s *Set) Hits() []Hit { return s.hits }

// Len returns the number of hits.
func (s *Set) Len() int { return len(s.hits) }

// Empty reports whether the set holds no hits.
func (s *Set) Empty() bool { return len(s.hits) == 0 }
