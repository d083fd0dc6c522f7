package extract_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/extract"
	"github.com/fwojciec/eventsift/goquery"
	"github.com/fwojciec/eventsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// namePipeline answers the name question with the page's <h1> text.
func namePipeline() *extract.Pipeline {
	return &extract.Pipeline{
		Normalizer: goquery.NewNormalizer(),
		Capability: &mock.Capability{
			AnswerFn: func(_ context.Context, question, passage string) (string, error) {
				if question == eventsift.QuestionFor(eventsift.FieldName) {
					return passage, nil
				}
				return "", nil
			},
		},
		MaxContextLength: 2000,
	}
}

func testConfig() extract.Config {
	cfg := extract.DefaultConfig()
	cfg.FetchTimeout = 50 * time.Millisecond
	return cfg
}

func TestBatcher_Extract(t *testing.T) {
	t.Parallel()

	t.Run("drops timeouts and nameless pages", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				switch url {
				case "https://a.example/slow":
					<-ctx.Done()
					return "", ctx.Err()
				case "https://a.example/empty":
					return "<html><body><script>1</script></body></html>", nil
				default:
					return "<h1>Jazz Night</h1>", nil
				}
			},
		}
		cfg := testConfig()
		cfg.MaxConcurrentFetches = 2
		b := extract.NewBatcher(fetcher, namePipeline(), cfg, nil)

		result := b.Extract(context.Background(), []string{
			"https://a.example/slow",
			"https://a.example/empty",
			"https://a.example/jazz",
		}, nil)

		require.Len(t, result.Events, 1)
		assert.Equal(t, "Jazz Night", result.Events[0].Name)
		assert.Equal(t, "https://a.example/jazz", result.Events[0].URL)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Nameless)
		assert.True(t, b.Idle(), "all fetch slots should be released")
	})

	t.Run("returns events in input order", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				// Earlier URLs finish later.
				switch url {
				case "https://a.example/1":
					time.Sleep(30 * time.Millisecond)
				case "https://a.example/2":
					time.Sleep(15 * time.Millisecond)
				}
				return "<h1>Event " + url[len(url)-1:] + "</h1>", nil
			},
		}
		b := extract.NewBatcher(fetcher, namePipeline(), testConfig(), nil)

		result := b.Extract(context.Background(), []string{
			"https://a.example/1",
			"https://a.example/2",
			"https://a.example/3",
		}, nil)

		require.Len(t, result.Events, 3)
		assert.Equal(t, "https://a.example/1", result.Events[0].URL)
		assert.Equal(t, "https://a.example/2", result.Events[1].URL)
		assert.Equal(t, "https://a.example/3", result.Events[2].URL)
	})

	t.Run("never exceeds the fetch cap", func(t *testing.T) {
		t.Parallel()

		var inflight, peak atomic.Int64
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				n := inflight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				inflight.Add(-1)
				return "<h1>Show</h1>", nil
			},
		}
		cfg := testConfig()
		cfg.MaxConcurrentFetches = 3
		b := extract.NewBatcher(fetcher, namePipeline(), cfg, nil)

		urls := make([]string, 12)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://a.example/%d", i)
		}
		result := b.Extract(context.Background(), urls, nil)

		assert.Len(t, result.Events, 12)
		assert.LessOrEqual(t, peak.Load(), int64(3))
		assert.True(t, b.Idle())
	})

	t.Run("caps concurrent capability calls", func(t *testing.T) {
		t.Parallel()

		var inflight, peak atomic.Int64
		pipeline := &extract.Pipeline{
			Normalizer: goquery.NewNormalizer(),
			Capability: &mock.Capability{
				AnswerFn: func(_ context.Context, question, passage string) (string, error) {
					n := inflight.Add(1)
					defer inflight.Add(-1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(2 * time.Millisecond)
					if question == eventsift.QuestionFor(eventsift.FieldName) {
						return passage, nil
					}
					return "", nil
				},
			},
			MaxContextLength: 2000,
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<h1>Show</h1>", nil
			},
		}
		cfg := testConfig()
		cfg.MaxConcurrentFetches = 2
		b := extract.NewBatcher(fetcher, pipeline, cfg, nil)

		urls := make([]string, 20)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://a.example/%d", i)
		}
		result := b.Extract(context.Background(), urls, nil)

		assert.Len(t, result.Events, 20)
		assert.LessOrEqual(t, peak.Load(), int64(2))
		assert.True(t, b.Idle())
	})

	t.Run("releases slots on fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 500")
			},
		}
		cfg := testConfig()
		cfg.MaxConcurrentFetches = 1
		b := extract.NewBatcher(fetcher, namePipeline(), cfg, nil)

		result := b.Extract(context.Background(), []string{"https://a.example/1", "https://a.example/2"}, nil)

		assert.Empty(t, result.Events)
		assert.NotNil(t, result.Events)
		assert.Equal(t, 2, result.Failed)
		assert.True(t, b.Idle())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBatcher(&mock.Fetcher{}, namePipeline(), testConfig(), nil)

		result := b.Extract(context.Background(), nil, nil)

		assert.Empty(t, result.Events)
		assert.Zero(t, result.Failed)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://a.example/bad" {
					return "", errors.New("HTTP 404")
				}
				return "<h1>Fair</h1>", nil
			},
		}
		b := extract.NewBatcher(fetcher, namePipeline(), testConfig(), nil)

		var mu sync.Mutex
		var types []extract.ProgressType
		b.Extract(context.Background(), []string{"https://a.example/ok", "https://a.example/bad"}, func(e extract.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			types = append(types, e.Type)
			if e.Type == extract.ProgressFailed {
				assert.Equal(t, "https://a.example/bad", e.URL)
				assert.Error(t, e.Error)
			}
		})

		require.Len(t, types, 4)
		assert.Equal(t, extract.ProgressStarted, types[0])
		assert.ElementsMatch(t, []extract.ProgressType{extract.ProgressCompleted, extract.ProgressFailed}, types[1:3])
		assert.Equal(t, extract.ProgressFinished, types[3])
	})

	t.Run("spaces fetches to one host when a delay is set", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var times []time.Time
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				mu.Lock()
				times = append(times, time.Now())
				mu.Unlock()
				return "<h1>Gala</h1>", nil
			},
		}
		cfg := testConfig()
		cfg.ScrapeDelay = 60 * time.Millisecond
		b := extract.NewBatcher(fetcher, namePipeline(), cfg, nil)

		b.Extract(context.Background(), []string{"https://a.example/1", "https://a.example/2"}, nil)

		require.Len(t, times, 2)
		gap := times[1].Sub(times[0])
		if gap < 0 {
			gap = -gap
		}
		assert.GreaterOrEqual(t, gap, 40*time.Millisecond)
	})
}
