package searchkit

// Mode selects the search strategy.
type Mode string

const (
	// Text ranks by relevance to the query string; coordinates and a
	// place name are optional hints.
	Text Mode = "text"
	// Spatiotemporal filters by date range and place name within a
	// radius around the origin.
	Spatiotemporal Mode = "spatiotemporal"
)

// SearchRequest holds raw search parameters. Zero values mean "not
// provided"; defaults are applied per mode at dispatch time.
type SearchRequest struct {
	Mode  Mode // defaults to Text
	Query string

	// Origin coordinates. Both or neither must be set.
	Lat *float64
	Lon *float64

	Place string // georeference name

	// Spatiotemporal range, ISO dates (YYYY-MM-DD).
	Start string
	End   string

	Radius string // e.g. "500km", defaulted when empty
}

// Card is a rendered result: formatted fields with fallbacks applied,
// content truncated at the preview budget.
type Card struct {
	Score       string // "%.2f"
	Title       string
	Authors     string
	Date        string
	Coordinates string
	Preview     string
	FullContent string // set only when Truncated
	Truncated   bool
	Georefs     []string
	Temporals   []string
}

// Marker is a map pin for one located hit.
type Marker struct {
	Lat   float64
	Lon   float64
	Title string
	Date  string
	Score string
}

// Viewport is the padded bounding box framing all markers.
type Viewport struct {
	SouthWestLat float64
	SouthWestLon float64
	NorthEastLat float64
	NorthEastLon float64
}

// SearchOutcome bundles everything a UI needs after one search: the
// cards in backend order, the markers for located hits, and the
// viewport to fit (nil when no hit has coordinates).
type SearchOutcome struct {
	Count    int
	Cards    []Card
	Markers  []Marker
	Viewport *Viewport
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Title     string
	Highlight string // optional pre-highlighted snippet
}

// Fix is a resolved position, rounded to 4 decimal places, with the
// zoom level to recenter at.
type Fix struct {
	Lat  float64
	Lon  float64
	Zoom int
}
