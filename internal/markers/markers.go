// Package markers synchronizes map pins with the current result set.
package markers

import (
	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
	"github.com/chronomap/georetrieve/internal/view"
)

// Viewport padding applied when framing all markers.
const (
	padFraction = 0.1
	padMinDeg   = 0.05
)

// Marker is one map pin with its popup summary.
type Marker struct {
	Point geo.Point `json:"point"`
	Popup Popup     `json:"popup"`
}

// Popup summarizes the hit behind a marker.
type Popup struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Score string `json:"score"`
}

// Manager owns the marker set for one map. Every SetResults is a full
// replace: all owned markers are removed and rebuilt from the new
// result set, no marker identity survives a search.
type Manager struct {
	owned  []Marker
	bounds geo.Bounds
}

// NewManager creates an empty marker manager.
func NewManager() *Manager {
	return &Manager{bounds: geo.NewBounds()}
}

// SetResults clears the owned set and creates one marker per hit with a
// valid geographic point, accumulating viewport bounds along the way.
func (m *Manager) SetResults(set *result.Set) {
	m.owned = m.owned[:0]
	m.bounds = geo.NewBounds()

	for _, h := range set.Hits() {
		doc := h.Document()
		if !doc.HasLocation() {
			continue
		}
		p := *doc.Geopoint
		m.owned = append(m.owned, Marker{
			Point: p,
			Popup: Popup{
				Title: view.FormatTitle(doc.Title),
				Date:  view.FormatDate(doc.Date),
				Score: view.FormatScore(h.Score()),
			},
		})
		m.bounds = m.bounds.Extend(p)
	}
}

// Markers returns the owned markers in result order.
func (m *Manager) Markers() []Marker { return m.owned }

// Len returns the number of owned markers.
func (m *Manager) Len() int { return len(m.owned) }

// Viewport returns the padded bounds framing all markers. ok is false
// when no marker exists, in which case the viewport must stay unchanged.
func (m *Manager) Viewport() (bounds geo.Bounds, ok bool) {
	if m.bounds.Empty() {
		return geo.Bounds{}, false
	}
	return m.bounds.Pad(padFraction, padMinDeg), true
}
