// Package geo provides coordinate types and bounds math for map markers.
package geo

import "math"

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
const EarthRadiusMeters = 6_371_000.0

// Point is a latitude/longitude pair in degrees (WGS84).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point can be placed on a map. The zero pair
// (0, 0) is treated as "no coordinates": the backend emits it for
// documents without a geotag.
func (p Point) Valid() bool {
	if p.Lat == 0 && p.Lon == 0 {
		return false
	}
	return ValidateCoordinates(p.Lat, p.Lon)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b Point) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Bounds is a rectangular viewport accumulated from marker points.
type Bounds struct {
	SouthWest Point `json:"southWest"`
	NorthEast Point `json:"northEast"`
	empty     bool
}

// NewBounds returns an empty bounds accumulator.
func NewBounds() Bounds {
	return Bounds{empty: true}
}

// Empty reports whether no point has been accumulated.
func (b Bounds) Empty() bool { return b.empty }

// Extend grows the bounds to include p.
func (b Bounds) Extend(p Point) Bounds {
	if b.empty {
		return Bounds{SouthWest: p, NorthEast: p}
	}
	out := b
	out.SouthWest.Lat = math.Min(out.SouthWest.Lat, p.Lat)
	out.SouthWest.Lon = math.Min(out.SouthWest.Lon, p.Lon)
	out.NorthEast.Lat = math.Max(out.NorthEast.Lat, p.Lat)
	out.NorthEast.Lon = math.Max(out.NorthEast.Lon, p.Lon)
	return out
}

// Pad expands the bounds by fraction of its span on each side, with a
// minimum expansion in degrees so a single marker still gets breathing
// room. Padding an empty bounds is a no-op.
func (b Bounds) Pad(fraction, minDegrees float64) Bounds {
	if b.empty {
		return b
	}
	padLat := math.Max((b.NorthEast.Lat-b.SouthWest.Lat)*fraction, minDegrees)
	padLon := math.Max((b.NorthEast.Lon-b.SouthWest.Lon)*fraction, minDegrees)

	out := b
	out.SouthWest.Lat = math.Max(out.SouthWest.Lat-padLat, -90)
	out.NorthEast.Lat = math.Min(out.NorthEast.Lat+padLat, 90)
	out.SouthWest.Lon = math.Max(out.SouthWest.Lon-padLon, -180)
	out.NorthEast.Lon = math.Min(out.NorthEast.Lon+padLon, 180)
	return out
}
