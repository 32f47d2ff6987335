package mode

import "testing"

func TestIsValid(t *testing.T) {
	for _, m := range []Mode{Text, Spatiotemporal} {
		if !m.IsValid() {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range []Mode{"", "hybrid", "TEXT"} {
		if m.IsValid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
