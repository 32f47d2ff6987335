package searchkit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestSession_BurstFiresOnce(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"title":"Jerusalem dig"}}]}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan []Suggestion, 1)
	session := client.NewSession(func(s []Suggestion, err error) {
		if err != nil {
			t.Errorf("handler error: %v", err)
		}
		done <- s
	})
	defer session.Close()

	// A typing burst: only the final input may dispatch.
	session.Input("jer")
	session.Input("jeru")
	session.Input("jerus")

	var got []Suggestion
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never called")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 {
		t.Fatalf("backend saw %d requests, want 1 (got %v)", len(queries), queries)
	}
	if queries[0] != "jerus" {
		t.Errorf("dispatched query = %q, want the last input", queries[0])
	}
	if len(got) != 1 || got[0].Title != "Jerusalem dig" {
		t.Errorf("suggestions = %+v", got)
	}
}

func TestSession_ShortInputClearsPanel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("backend must not be called for short input")
	}))
	defer srv.Close()

	client, _ := New(srv.URL, WithDebounce(5*time.Millisecond))

	done := make(chan []Suggestion, 1)
	session := client.NewSession(func(s []Suggestion, err error) {
		if err != nil {
			t.Errorf("handler error: %v", err)
		}
		done <- s
	})
	defer session.Close()

	session.Input("ab")

	select {
	case got := <-done:
		if len(got) != 0 {
			t.Errorf("suggestions = %+v, want empty", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never called")
	}
}

func TestSession_CloseCancelsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("backend must not be called after Close")
	}))
	defer srv.Close()

	client, _ := New(srv.URL, WithDebounce(30*time.Millisecond))
	session := client.NewSession(func([]Suggestion, error) {
		t.Error("handler must not run after Close")
	})

	session.Input("jerusalem")
	session.Close()

	time.Sleep(100 * time.Millisecond)
}
