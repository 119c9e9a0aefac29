package fit

import "github.com/leofalp/jsonfit/providers/observability"

// DefaultMaxCompletionLength bounds the closing-string length tried by Fit.
const DefaultMaxCompletionLength = 5

// Option configures a Fitter.
type Option func(*config)

type config struct {
	maxCompletionLength int
	observer            observability.Provider
	deduplicate         bool
	lenient             bool
}

// WithMaxCompletionLength sets the longest closing string Fit will try.
// Values below 1 fall back to DefaultMaxCompletionLength. The search space
// grows exponentially with this bound.
func WithMaxCompletionLength(n int) Option {
	return func(c *config) {
		c.maxCompletionLength = n
	}
}

// WithObserver reports spans, metrics and debug logs to provider.
func WithObserver(provider observability.Provider) Option {
	return func(c *config) {
		c.observer = provider
	}
}

// WithDeduplicate collapses suggestions with identical renderings. Several
// closing strings often truncate back to the same value; by default every
// successful attempt is kept.
func WithDeduplicate(enabled bool) Option {
	return func(c *config) {
		c.deduplicate = enabled
	}
}

// WithLenient lets the first check accept Python-style literals through
// DecodeLenient, so input that only needs quote or constant normalisation is
// reported as completed without a search.
func WithLenient(enabled bool) Option {
	return func(c *config) {
		c.lenient = enabled
	}
}

func applyOptions(opts ...Option) config {
	cfg := config{maxCompletionLength: DefaultMaxCompletionLength}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxCompletionLength < 1 {
		cfg.maxCompletionLength = DefaultMaxCompletionLength
	}
	return cfg
}
