package extract_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/eventsift/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(100 * time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://venue.example/events/1")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(100 * time.Millisecond)

		require.NoError(t, limiter.Wait(context.Background(), "https://venue.example/events/1"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://venue.example/events/2")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("hosts are independent", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(time.Second)

		require.NoError(t, limiter.Wait(context.Background(), "https://a.example/"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "https://b.example/")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context ends", func(t *testing.T) {
		t.Parallel()

		limiter := extract.NewDomainLimiter(time.Hour)
		require.NoError(t, limiter.Wait(context.Background(), "https://venue.example/"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "https://venue.example/"))
	})
}
