package searchkit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const envelopeBody = `{"hits":{"hits":[
  {"_score":7.891,"_source":{
    "title":"Flood report","content":"Heavy rainfall in the valley.",
    "date":"2020-01-01",
    "authors":[{"first":"Ada","last":"Lovelace"}],
    "geopoint":{"lat":31.5,"lon":35.1},
    "georeferences":[{"name":"Nablus"}],
    "temporalExpressions":[{"text":"January 2020"}]}},
  {"_score":3.2,"_source":{"title":"No location","content":"","date":""}}
]}}`

type capture struct {
	mu     sync.Mutex
	paths  []string
	params []url.Values
}

func (c *capture) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, r.URL.Path)
	c.params = append(c.params, r.URL.Query())
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}

func newBackend(t *testing.T, body string) (*httptest.Server, *capture) {
	t.Helper()
	cap := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, cap
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestSearch_TextMode(t *testing.T) {
	srv, cap := newBackend(t, envelopeBody)
	client, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := client.Search(context.Background(), SearchRequest{Query: "flood"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if cap.paths[0] != "/search" {
		t.Errorf("path = %q, want /search", cap.paths[0])
	}
	if out.Count != 2 || len(out.Cards) != 2 {
		t.Fatalf("count = %d, cards = %d", out.Count, len(out.Cards))
	}

	card := out.Cards[0]
	if card.Score != "7.89" {
		t.Errorf("score = %q, want 7.89", card.Score)
	}
	if card.Title != "Flood report" || card.Authors != "Ada Lovelace" {
		t.Errorf("card = %+v", card)
	}
	if card.Date != "Jan 1, 2020" {
		t.Errorf("date = %q", card.Date)
	}

	// Only the located hit becomes a marker; the viewport frames it.
	if len(out.Markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(out.Markers))
	}
	if out.Markers[0].Score != "7.89" {
		t.Errorf("marker score = %q", out.Markers[0].Score)
	}
	if out.Viewport == nil {
		t.Fatal("viewport missing")
	}
	if out.Viewport.SouthWestLat >= 31.5 || out.Viewport.NorthEastLat <= 31.5 {
		t.Errorf("viewport does not frame the marker: %+v", out.Viewport)
	}
}

func TestSearch_SpatiotemporalDefaults(t *testing.T) {
	srv, cap := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)

	_, err := client.Search(context.Background(), SearchRequest{
		Mode:  Spatiotemporal,
		Query: "flood",
		Place: "Nablus",
		Start: "2019-01-01",
		End:   "2020-01-01",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if cap.paths[0] != "/spatiotemporal" {
		t.Errorf("path = %q, want /spatiotemporal", cap.paths[0])
	}
	params := cap.params[0]
	if got := params.Get("lat"); got != "32.2211" {
		t.Errorf("lat = %q, want default origin", got)
	}
	if got := params.Get("lon"); got != "35.2544" {
		t.Errorf("lon = %q, want default origin", got)
	}
	if got := params.Get("distance"); got != "500km" {
		t.Errorf("distance = %q, want 500km", got)
	}
}

func TestSearch_ValidationNeverDispatches(t *testing.T) {
	srv, cap := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)

	_, err := client.Search(context.Background(), SearchRequest{
		Mode:  Spatiotemporal,
		Query: "flood", // start, end, place missing
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if cap.count() != 0 {
		t.Fatalf("backend called %d times on invalid request", cap.count())
	}
}

func TestSearch_MismatchedCoordinates(t *testing.T) {
	srv, _ := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)

	lat := 31.5
	_, err := client.Search(context.Background(), SearchRequest{Query: "x", Lat: &lat})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSearch_BackendDown(t *testing.T) {
	srv, _ := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)
	srv.Close()

	_, err := client.Search(context.Background(), SearchRequest{Query: "flood"})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestSuggest_ShortQuery(t *testing.T) {
	srv, cap := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)

	_, err := client.Suggest(context.Background(), "ab")
	if !errors.Is(err, ErrQueryTooShort) {
		t.Fatalf("expected ErrQueryTooShort, got %v", err)
	}
	if cap.count() != 0 {
		t.Fatalf("backend called for a short query")
	}
}

func TestSuggest_ReturnsTitles(t *testing.T) {
	body := `{"hits":{"hits":[{"_source":{"title":"Economy rebounds"},
	  "highlight":{"title":["<em>Eco</em>nomy rebounds"]}}]}}`
	srv, cap := newBackend(t, body)
	client, _ := New(srv.URL, WithAutocompleteSize(5))

	got, err := client.Suggest(context.Background(), "eco")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Economy rebounds" {
		t.Fatalf("suggestions = %+v", got)
	}
	if got[0].Highlight == "" {
		t.Error("highlight dropped")
	}
	if size := cap.params[0].Get("size"); size != "5" {
		t.Errorf("size = %q, want 5", size)
	}
}

func TestLocate_NotConfigured(t *testing.T) {
	srv, _ := newBackend(t, envelopeBody)
	client, _ := New(srv.URL)

	_, err := client.Locate(context.Background())
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestLocate_RoundsCoordinates(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":31.76834219,"lon":35.21371004}`))
	}))
	defer provider.Close()
	srv, _ := newBackend(t, envelopeBody)
	client, _ := New(srv.URL, WithGeolocation(provider.URL))

	fix, err := client.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if fix.Lat != 31.7683 || fix.Lon != 35.2137 {
		t.Errorf("fix = %+v, want 4-decimal rounding", fix)
	}
	if fix.Zoom != 10 {
		t.Errorf("zoom = %d, want 10", fix.Zoom)
	}
}

func TestAnalytics_Passthrough(t *testing.T) {
	raw := `{"aggregations":{"top":[]}}`
	srv, cap := newBackend(t, raw)
	client, _ := New(srv.URL)

	got, err := client.TopGeoreferences(context.Background(), 7)
	if err != nil {
		t.Fatalf("TopGeoreferences: %v", err)
	}
	if string(got) != raw {
		t.Errorf("feed altered: %s", got)
	}
	if size := cap.params[0].Get("size"); size != "7" {
		t.Errorf("size = %q, want 7", size)
	}
}
