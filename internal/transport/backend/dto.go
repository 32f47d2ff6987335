package backend

import (
	"github.com/chronomap/georetrieve/internal/domain/document"
	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
)

// The backend returns raw Elasticsearch envelopes for both search modes
// and for autocomplete. This is the canonical wire shape; the flat
// results variant seen in older deployments is not supported.
type envelope struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

type esHit struct {
	Score     float64  `json:"_score"`
	Source    esSource `json:"_source"`
	Highlight struct {
		Title []string `json:"title"`
	} `json:"highlight"`
}

type esSource struct {
	Title               string                          `json:"title"`
	Content             string                          `json:"content"`
	Date                string                          `json:"date"`
	Authors             []document.Author               `json:"authors"`
	Geopoint            *geo.Point                      `json:"geopoint"`
	Georeferences       []document.Georeference         `json:"georeferences"`
	TemporalExpressions []document.TemporalExpression   `json:"temporalExpressions"`
}

func (e *envelope) toResultSet() result.Set {
	hits := make([]result.Hit, 0, len(e.Hits.Hits))
	for _, h := range e.Hits.Hits {
		hits = append(hits, result.New(h.Score, document.Document{
			Title:               h.Source.Title,
			Content:             h.Source.Content,
			Date:                h.Source.Date,
			Authors:             h.Source.Authors,
			Geopoint:            h.Source.Geopoint,
			Georeferences:       h.Source.Georeferences,
			TemporalExpressions: h.Source.TemporalExpressions,
		}))
	}
	return result.NewSet(hits)
}

func (e *envelope) toSuggestions() []document.Suggestion {
	out := make([]document.Suggestion, 0, len(e.Hits.Hits))
	for _, h := range e.Hits.Hits {
		s := document.Suggestion{Title: h.Source.Title}
		if len(h.Highlight.Title) > 0 {
			s.Highlight = h.Highlight.Title[0]
		}
		out = append(out, s)
	}
	return out
}
