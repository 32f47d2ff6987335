// Package document defines the payloads returned by the retrieval backend.
package document

import "github.com/chronomap/georetrieve/internal/domain/geo"

// Author is a first/last name pair attached to a document.
type Author struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Georeference is a named place tag attached to a document.
type Georeference struct {
	Name string `json:"name"`
}

// TemporalExpression is a text span identifying a date or period
// within a document.
type TemporalExpression struct {
	Text string `json:"text"`
}

// Document is the source payload of one search hit.
type Document struct {
	Title               string               `json:"title"`
	Content             string               `json:"content"`
	Date                string               `json:"date"` // ISO YYYY-MM-DD, may be empty
	Authors             []Author             `json:"authors"`
	Geopoint            *geo.Point           `json:"geopoint"`
	Georeferences       []Georeference       `json:"georeferences"`
	TemporalExpressions []TemporalExpression `json:"temporalExpressions"`
}

// HasLocation reports whether the document carries a plottable point.
func (d *Document) HasLocation() bool {
	return d.Geopoint != nil && d.Geopoint.Valid()
}

// Suggestion is one autocomplete entry: a title plus an optional
// pre-highlighted snippet produced by the backend.
type Suggestion struct {
	Title     string `json:"title"`
	Highlight string `json:"highlight,omitempty"`
}
