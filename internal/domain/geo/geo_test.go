package geo

import (
	"math"
	"testing"
)

func TestPointValid(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		want bool
	}{
		{"regular", Point{Lat: 31.5, Lon: 35.1}, true},
		{"zero pair treated as missing", Point{}, false},
		{"zero lat only", Point{Lat: 0, Lon: 35.1}, true},
		{"lat out of range", Point{Lat: 91, Lon: 0.1}, false},
		{"lon out of range", Point{Lat: 10, Lon: -181}, false},
	}
	for _, tc := range cases {
		if got := tc.p.Valid(); got != tc.want {
			t.Errorf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHaversine(t *testing.T) {
	// Jerusalem to Nablus is roughly 49 km.
	jerusalem := Point{Lat: 31.7683, Lon: 35.2137}
	nablus := Point{Lat: 32.2211, Lon: 35.2544}

	d := Haversine(jerusalem, nablus)
	if d < 45_000 || d > 55_000 {
		t.Errorf("Haversine = %.0f m, want about 49 km", d)
	}
	if Haversine(nablus, nablus) != 0 {
		t.Error("distance to self should be zero")
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds()
	if !b.Empty() {
		t.Fatal("new bounds should be empty")
	}

	b = b.Extend(Point{Lat: 31.5, Lon: 35.1})
	b = b.Extend(Point{Lat: 32.2, Lon: 34.9})

	if b.Empty() {
		t.Fatal("bounds with points should not be empty")
	}
	if b.SouthWest.Lat != 31.5 || b.SouthWest.Lon != 34.9 {
		t.Errorf("south-west = %+v", b.SouthWest)
	}
	if b.NorthEast.Lat != 32.2 || b.NorthEast.Lon != 35.1 {
		t.Errorf("north-east = %+v", b.NorthEast)
	}
}

func TestBoundsPad(t *testing.T) {
	b := NewBounds().Extend(Point{Lat: 30, Lon: 30}).Extend(Point{Lat: 32, Lon: 34})
	p := b.Pad(0.1, 0.05)

	if math.Abs(p.SouthWest.Lat-29.8) > 1e-9 || math.Abs(p.NorthEast.Lat-32.2) > 1e-9 {
		t.Errorf("lat padding: %+v", p)
	}
	if math.Abs(p.SouthWest.Lon-29.6) > 1e-9 || math.Abs(p.NorthEast.Lon-34.4) > 1e-9 {
		t.Errorf("lon padding: %+v", p)
	}

	// Single point gets at least the minimum padding.
	single := NewBounds().Extend(Point{Lat: 10, Lon: 10}).Pad(0.1, 0.05)
	if single.NorthEast.Lat-single.SouthWest.Lat < 0.09 {
		t.Errorf("single-point bounds not padded: %+v", single)
	}

	// Padding never leaves the valid coordinate range.
	edge := NewBounds().Extend(Point{Lat: 89.99, Lon: 179.99}).Pad(0.1, 0.05)
	if edge.NorthEast.Lat > 90 || edge.NorthEast.Lon > 180 {
		t.Errorf("padding escaped coordinate range: %+v", edge)
	}

	if !NewBounds().Pad(0.1, 0.05).Empty() {
		t.Error("padding an empty bounds should stay empty")
	}
}
