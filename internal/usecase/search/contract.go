package search

import (
	"context"

	"github.com/chronomap/georetrieve/internal/domain/search/query"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
)

// Searcher dispatches validated queries to the retrieval backend.
type Searcher interface {
	Search(ctx context.Context, q *query.Query) (result.Set, error)
}
