package extract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/extract"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		cfg := extract.DefaultConfig()

		assert.NoError(t, cfg.Validate())
		assert.Equal(t, 5, cfg.MaxConcurrentFetches)
		assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
		assert.Equal(t, 2000, cfg.MaxContextLength)
		assert.Zero(t, cfg.ScrapeDelay)
	})

	tests := []struct {
		name   string
		modify func(*extract.Config)
	}{
		{name: "zero concurrency", modify: func(c *extract.Config) { c.MaxConcurrentFetches = 0 }},
		{name: "negative timeout", modify: func(c *extract.Config) { c.FetchTimeout = -time.Second }},
		{name: "zero context length", modify: func(c *extract.Config) { c.MaxContextLength = 0 }},
		{name: "negative delay", modify: func(c *extract.Config) { c.ScrapeDelay = -time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := extract.DefaultConfig()
			tt.modify(&cfg)

			assert.Equal(t, eventsift.EINVALID, eventsift.ErrorCode(cfg.Validate()))
		})
	}
}
