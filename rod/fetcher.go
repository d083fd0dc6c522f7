// Package rod fetches event pages through headless Chrome so listings that
// are assembled by JavaScript arrive fully rendered.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/eventsift"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements eventsift.Fetcher at compile time.
var _ eventsift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML. It is safe for concurrent use; each call
// opens its own tab.
type Fetcher struct {
	pool      *browserPool
	maxPages  int
	userAgent string
	settle    time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets how many pages one Chrome process serves before it is
// replaced. Zero disables recycling. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgent overrides the browser's User-Agent for every page.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithSettle waits, after the load event, until the DOM has been unchanged
// for d. Useful for calendars and ticket widgets that render late.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher launches headless Chrome. Close must be called when the Fetcher
// is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates a new tab to url and returns the rendered HTML. A main
// document status outside 2xx is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	in, err := f.pool.acquire()
	if err != nil {
		return "", err
	}
	defer f.pool.release(in)

	page, err := in.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	status := 0
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	waitDocument()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if status != 0 && (status < 200 || status > 299) {
		return "", fmt.Errorf("HTTP %d for %s", status, url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		if err := page.WaitStable(f.settle); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources. Safe to call more than once.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

// LauncherPID returns the process ID of the current Chrome launcher.
// It exists so tests can verify process cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.pool.pid()
}
