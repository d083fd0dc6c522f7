package extract

import (
	"context"
	"log/slog"

	"github.com/fwojciec/eventsift"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Result holds the outcome of a batch.
type Result struct {
	// Events are the records with a non-empty name, in input URL order.
	Events []*eventsift.Event

	// Failed counts URLs whose fetch failed or timed out.
	Failed int

	// Nameless counts pages fetched whose extracted name was empty.
	Nameless int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is always
// called from the goroutine running Extract.
type ProgressFunc func(event ProgressEvent)

// Batcher fetches many URLs under a concurrency cap and runs each page
// through a Pipeline. It is safe to run several batches at once; they share
// the same cap.
type Batcher struct {
	fetcher  eventsift.Fetcher
	pipeline *Pipeline
	config   Config
	sem      *semaphore.Weighted
	limiter  *DomainLimiter
	logger   *slog.Logger
}

// NewBatcher creates a Batcher. A positive cfg.ScrapeDelay enables per-host
// spacing of fetches. cfg is assumed valid; see Config.Validate.
func NewBatcher(fetcher eventsift.Fetcher, pipeline *Pipeline, cfg Config, logger *slog.Logger) *Batcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Batcher{
		fetcher:  fetcher,
		pipeline: pipeline,
		config:   cfg,
		sem:      semaphore.NewWeighted(int64(cfg.MaxConcurrentFetches)),
		logger:   logger,
	}
	if cfg.ScrapeDelay > 0 {
		b.limiter = NewDomainLimiter(cfg.ScrapeDelay)
	}
	return b
}

// Idle reports whether every fetch slot is free.
func (b *Batcher) Idle() bool {
	n := int64(b.config.MaxConcurrentFetches)
	if !b.sem.TryAcquire(n) {
		return false
	}
	b.sem.Release(n)
	return true
}

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	event    *eventsift.Event
	err      error
}

// Extract processes every URL and returns the named events in input order.
// A URL that fails to fetch, times out or yields no name is dropped; no
// per-URL failure fails the batch. Fetches are not retried.
func (b *Batcher) Extract(ctx context.Context, urls []string, progress ProgressFunc) *Result {
	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan pageResult, total)
	go func() {
		var g errgroup.Group
		for i, url := range urls {
			g.Go(func() error {
				event, err := b.process(ctx, url)
				resultCh <- pageResult{position: i, url: url, event: event, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	slots := make([]*eventsift.Event, total)
	result := &Result{}
	completed := 0
	for r := range resultCh {
		completed++
		if r.err != nil {
			result.Failed++
			b.logger.Warn("fetch failed", "url", r.url, "err", r.err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.url, Error: r.err})
			}
			continue
		}

		if r.event.Name == "" {
			result.Nameless++
			b.logger.Debug("no event name", "url", r.url)
		} else {
			slots[r.position] = r.event
		}
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.url})
		}
	}

	result.Events = make([]*eventsift.Event, 0, total)
	for _, e := range slots {
		if e != nil {
			result.Events = append(result.Events, e)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result
}

// process holds a concurrency slot from before the fetch until the pipeline
// has finished with the page, so the cap also bounds Capability calls.
func (b *Batcher) process(ctx context.Context, url string) (*eventsift.Event, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx, url); err != nil {
			return nil, err
		}
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer b.sem.Release(1)

	html, err := b.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return b.pipeline.Extract(ctx, html, url), nil
}

// fetch bounds the network call by FetchTimeout.
func (b *Batcher) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.config.FetchTimeout)
	defer cancel()
	return b.fetcher.Fetch(ctx, url)
}
