package locate

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/chronomap/georetrieve/internal/domain"
	"github.com/chronomap/georetrieve/internal/domain/geo"
)

type mockLocator struct {
	p   geo.Point
	err error
}

func (m *mockLocator) Current(_ context.Context) (geo.Point, error) {
	return m.p, m.err
}

func TestCurrent_RoundsToFourDecimals(t *testing.T) {
	svc := New(&mockLocator{p: geo.Point{Lat: 32.221149, Lon: 35.254451}}, zap.NewNop())

	fix, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fix.Point.Lat != 32.2211 || fix.Point.Lon != 35.2545 {
		t.Errorf("point = %+v", fix.Point)
	}
	if fix.Zoom != RecenterZoom {
		t.Errorf("zoom = %d, want %d", fix.Zoom, RecenterZoom)
	}
}

func TestCurrent_NoLocatorConfigured(t *testing.T) {
	svc := New(nil, zap.NewNop())
	if _, err := svc.Current(context.Background()); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestCurrent_ProviderFailureMapped(t *testing.T) {
	svc := New(&mockLocator{err: errors.New("timeout")}, zap.NewNop())
	if _, err := svc.Current(context.Background()); !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}
