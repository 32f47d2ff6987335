package searchkit

import (
	"context"
	"errors"

	"github.com/chronomap/georetrieve/internal/debounce"
)

// SuggestionHandler receives the suggestions for the latest input.
// Stale results never reach the handler; a too-short input delivers an
// empty list so the caller can clear its panel.
type SuggestionHandler func(suggestions []Suggestion, err error)

// Session debounces autocomplete input. Only the last Input in each
// debounce window dispatches, and responses superseded by newer input
// are dropped.
type Session struct {
	client   *Client
	debounce *debounce.Debouncer
	handler  SuggestionHandler
}

// NewSession creates a debounced autocomplete session. Close it when
// the input field goes away.
func (c *Client) NewSession(handler SuggestionHandler) *Session {
	return &Session{
		client:   c,
		debounce: debounce.New(c.debounce),
		handler:  handler,
	}
}

// Input registers a keystroke. The lookup fires after the debounce
// window unless a newer Input arrives first.
func (s *Session) Input(q string) {
	s.debounce.Do(func() {
		suggestions, err := s.client.Suggest(context.Background(), q)
		switch {
		case errors.Is(err, ErrSuperseded):
			return // a newer lookup owns the panel
		case errors.Is(err, ErrQueryTooShort):
			s.handler([]Suggestion{}, nil)
		default:
			s.handler(suggestions, err)
		}
	})
}

// Close cancels any pending lookup.
func (s *Session) Close() {
	s.debounce.Stop()
}
