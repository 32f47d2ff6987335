package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Text is a plain free-text search, optionally boosted by an origin
	// point and a place-name filter.
	Text Mode = "text"
	// Spatiotemporal restricts results to a date range around a place.
	Spatiotemporal Mode = "spatiotemporal"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Text || m == Spatiotemporal
}
