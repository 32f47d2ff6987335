package searchkit

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout          = 15 * time.Second
	defaultAutocompleteSize = 10
	defaultDebounce         = 250 * time.Millisecond
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient       *http.Client
	timeout          time.Duration
	logger           *zap.Logger
	autocompleteSize int
	debounce         time.Duration
	locatorURL       string
}

// WithHTTPClient sets a custom HTTP client for all backend calls.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout. Default: 15s. Ignored when
// a custom HTTP client is provided.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithAutocompleteSize sets the number of suggestions requested per
// autocomplete lookup. Default: 10.
func WithAutocompleteSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.autocompleteSize = size
	})
}

// WithDebounce sets the autocomplete session debounce window.
// Default: 250ms.
func WithDebounce(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.debounce = d
	})
}

// WithGeolocation enables Locate against an ip-api style JSON endpoint.
// Without it Locate fails immediately.
func WithGeolocation(providerURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.locatorURL = providerURL
	})
}
