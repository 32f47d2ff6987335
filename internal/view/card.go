// Package view transforms backend documents into render-ready view
// models. Everything here is pure so it can be tested without a
// browser or an HTTP stack; templates and the SDK consume the output
// as-is.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/chronomap/georetrieve/internal/domain/document"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
)

// Rendering budgets.
const (
	// PreviewChars is the content preview budget in runes.
	PreviewChars = 300
	// MaxTemporalTags caps temporal-expression tags per card.
	MaxTemporalTags = 3
)

// Fallback labels for absent fields.
const (
	FallbackTitle   = "Untitled Document"
	FallbackAuthors = "Unknown"
	FallbackValue   = "N/A"
)

// Card is the display model for one search hit.
type Card struct {
	Score       string   // "7.89"
	Title       string   // never empty, falls back to FallbackTitle
	Authors     string   // "First Last, First Last" or FallbackAuthors
	Date        string   // "Jan 2, 2006" or FallbackValue
	Coordinates string   // "31.5000, 35.1000" or FallbackValue
	Preview     string   // content truncated to PreviewChars runes, "..." appended
	FullContent string   // untruncated content, empty when no toggle is needed
	Truncated   bool     // true when content exceeds the preview budget
	Georefs     []string // georeference tag names
	Temporals   []string // at most MaxTemporalTags temporal expression texts
}

// Cards converts a result set into cards, preserving backend order.
func Cards(set *result.Set) []Card {
	hits := set.Hits()
	cards := make([]Card, len(hits))
	for i := range hits {
		cards[i] = NewCard(&hits[i])
	}
	return cards
}

// NewCard builds the display model for a single hit.
func NewCard(hit *result.Hit) Card {
	doc := hit.Document()

	preview, full, truncated := truncate(doc.Content, PreviewChars)

	return Card{
		Score:       FormatScore(hit.Score()),
		Title:       FormatTitle(doc.Title),
		Authors:     authors(doc.Authors),
		Date:        FormatDate(doc.Date),
		Coordinates: coordinates(doc),
		Preview:     preview,
		FullContent: full,
		Truncated:   truncated,
		Georefs:     georefs(doc.Georeferences),
		Temporals:   temporals(doc.TemporalExpressions),
	}
}

// FormatScore renders a relevance score with two decimal places.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FormatDate renders an ISO date as "Jan 2, 2006". Unparseable values
// pass through as-is; empty values become the fallback label.
func FormatDate(iso string) string {
	if iso == "" {
		return FallbackValue
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// FormatTitle returns the title, or the fallback label when blank.
// Cards and marker popups share it so an untitled document reads the
// same everywhere.
func FormatTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return FallbackTitle
	}
	return title
}

func authors(aa []document.Author) string {
	if len(aa) == 0 {
		return FallbackAuthors
	}
	names := make([]string, 0, len(aa))
	for _, a := range aa {
		name := strings.TrimSpace(a.First + " " + a.Last)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return FallbackAuthors
	}
	return strings.Join(names, ", ")
}

func coordinates(doc *document.Document) string {
	if !doc.HasLocation() {
		return FallbackValue
	}
	return fmt.Sprintf("%.4f, %.4f", doc.Geopoint.Lat, doc.Geopoint.Lon)
}

// truncate cuts content at the rune budget. When content fits, the
// preview is the whole content and no full copy is kept.
func truncate(content string, budget int) (preview, full string, truncated bool) {
	runes := []rune(content)
	if len(runes) <= budget {
		return content, "", false
	}
	return string(runes[:budget]) + "...", content, true
}

func georefs(gg []document.Georeference) []string {
	if len(gg) == 0 {
		return nil
	}
	names := make([]string, 0, len(gg))
	for _, g := range gg {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

func temporals(tt []document.TemporalExpression) []string {
	if len(tt) == 0 {
		return nil
	}
	texts := make([]string, 0, MaxTemporalTags)
	for _, te := range tt {
		if te.Text == "" {
			continue
		}
		texts = append(texts, te.Text)
		if len(texts) == MaxTemporalTags {
			break
		}
	}
	return texts
}
