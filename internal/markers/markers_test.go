package markers

import (
	"testing"

	"github.com/chronomap/georetrieve/internal/domain/document"
	"github.com/chronomap/georetrieve/internal/domain/geo"
	"github.com/chronomap/georetrieve/internal/domain/search/result"
)

func located(score float64, title string, lat, lon float64) result.Hit {
	return result.New(score, document.Document{
		Title:    title,
		Date:     "2020-01-01",
		Geopoint: &geo.Point{Lat: lat, Lon: lon},
	})
}

func unlocated(title string) result.Hit {
	return result.New(1, document.Document{Title: title})
}

func TestSetResults_OneMarkerPerLocatedHit(t *testing.T) {
	m := NewManager()
	set := result.NewSet([]result.Hit{
		located(7.891, "X", 31.5, 35.1),
		unlocated("no point"),
		result.New(2, document.Document{Title: "zero pair", Geopoint: &geo.Point{}}),
		located(3, "Y", 32.2, 35.3),
	})

	m.SetResults(&set)

	if m.Len() != 2 {
		t.Fatalf("markers = %d, want 2", m.Len())
	}
	first := m.Markers()[0]
	if first.Popup.Title != "X" || first.Popup.Score != "7.89" || first.Popup.Date != "Jan 1, 2020" {
		t.Errorf("popup = %+v", first.Popup)
	}
}

func TestSetResults_UntitledPopupFallback(t *testing.T) {
	m := NewManager()
	set := result.NewSet([]result.Hit{located(4.2, "", 31.5, 35.1)})

	m.SetResults(&set)

	if m.Len() != 1 {
		t.Fatalf("markers = %d, want 1", m.Len())
	}
	if got := m.Markers()[0].Popup.Title; got != "Untitled Document" {
		t.Errorf("popup title = %q, want the card fallback", got)
	}
}

func TestSetResults_FullReplace(t *testing.T) {
	m := NewManager()

	first := result.NewSet([]result.Hit{
		located(1, "a", 10, 10), located(1, "b", 11, 11), located(1, "c", 12, 12),
	})
	m.SetResults(&first)
	if m.Len() != 3 {
		t.Fatalf("markers = %d, want 3", m.Len())
	}

	second := result.NewSet([]result.Hit{located(1, "d", 50, 50)})
	m.SetResults(&second)

	if m.Len() != 1 {
		t.Fatalf("markers = %d after replace, want 1", m.Len())
	}
	if m.Markers()[0].Popup.Title != "d" {
		t.Error("previous markers survived the replace")
	}
}

func TestViewport(t *testing.T) {
	m := NewManager()
	if _, ok := m.Viewport(); ok {
		t.Fatal("empty manager should leave the viewport unchanged")
	}

	set := result.NewSet([]result.Hit{
		located(1, "a", 31.5, 35.1),
		located(1, "b", 32.2, 34.9),
	})
	m.SetResults(&set)

	b, ok := m.Viewport()
	if !ok {
		t.Fatal("viewport expected with markers present")
	}
	// Padding must frame both points with room to spare.
	if b.SouthWest.Lat >= 31.5 || b.NorthEast.Lat <= 32.2 {
		t.Errorf("bounds do not frame markers: %+v", b)
	}

	empty := result.NewSet(nil)
	m.SetResults(&empty)
	if _, ok := m.Viewport(); ok {
		t.Error("viewport should be unchanged after an empty result set")
	}
	if m.Len() != 0 {
		t.Error("marker set should be empty after empty results")
	}
}
