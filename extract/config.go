// Package extract drives event extraction: bounded concurrent fetching, the
// normalize, truncate, ask and clean pipeline, and optional enrichment.
package extract

import (
	"time"

	"github.com/fwojciec/eventsift"
)

// Defaults for Config.
const (
	DefaultMaxConcurrentFetches = 5
	DefaultFetchTimeout         = 30 * time.Second
	DefaultMaxContextLength     = 2000
)

// Config holds the recognized extraction options.
type Config struct {
	// MaxConcurrentFetches caps pages in flight, from fetch through the
	// pipeline's Capability calls.
	MaxConcurrentFetches int

	// FetchTimeout bounds each fetch. Expiry drops only that URL.
	FetchTimeout time.Duration

	// MaxContextLength caps the text passed to the question-answering
	// capability, in characters.
	MaxContextLength int

	// ScrapeDelay is the minimum gap between fetches to the same host.
	// Zero disables the delay.
	ScrapeDelay time.Duration
}

// DefaultConfig returns the default extraction options.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentFetches: DefaultMaxConcurrentFetches,
		FetchTimeout:         DefaultFetchTimeout,
		MaxContextLength:     DefaultMaxContextLength,
	}
}

// Validate returns EINVALID if any option is out of range.
func (c Config) Validate() error {
	switch {
	case c.MaxConcurrentFetches <= 0:
		return eventsift.Errorf(eventsift.EINVALID, "max concurrent fetches must be positive, got %d", c.MaxConcurrentFetches)
	case c.FetchTimeout <= 0:
		return eventsift.Errorf(eventsift.EINVALID, "fetch timeout must be positive, got %s", c.FetchTimeout)
	case c.MaxContextLength <= 0:
		return eventsift.Errorf(eventsift.EINVALID, "max context length must be positive, got %d", c.MaxContextLength)
	case c.ScrapeDelay < 0:
		return eventsift.Errorf(eventsift.EINVALID, "scrape delay must not be negative, got %s", c.ScrapeDelay)
	}
	return nil
}
