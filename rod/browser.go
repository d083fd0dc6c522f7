package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/eventsift"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a Chrome process serves before it is
// replaced. Chrome's memory baseline only grows under sustained load.
const DefaultMaxPages = 75

// instance is one launched Chrome process and the pages still open on it.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	inflight int
	retired  bool
}

func (in *instance) shutdown() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// browserPool hands out a shared Chrome instance and swaps in a fresh one
// after maxPages pages. A retired instance is shut down once its last page
// is released. Safe for concurrent use.
type browserPool struct {
	mu       sync.Mutex
	current  *instance
	served   int
	maxPages int
	closed   bool
}

func newBrowserPool(maxPages int) (*browserPool, error) {
	in, err := launch()
	if err != nil {
		return nil, err
	}
	return &browserPool{current: in, maxPages: maxPages}, nil
}

// acquire returns the instance to open the next page on. Callers must pass it
// to release when the page is closed.
func (p *browserPool) acquire() (*instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, eventsift.Errorf(eventsift.EINVALID, "browser is closed")
	}

	if p.maxPages > 0 && p.served >= p.maxPages {
		// Keep serving from the old instance if a replacement cannot start.
		if fresh, err := launch(); err == nil {
			old := p.current
			old.retired = true
			if old.inflight == 0 {
				_ = old.shutdown()
			}
			p.current = fresh
			p.served = 0
		}
	}

	p.served++
	p.current.inflight++
	return p.current, nil
}

func (p *browserPool) release(in *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	in.inflight--
	if in.retired && in.inflight == 0 {
		_ = in.shutdown()
	}
}

// close shuts down the current instance. Retired instances still serving
// pages shut down on their final release. Safe to call more than once.
func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.current.retired = true
	if p.current.inflight > 0 {
		return nil
	}
	return p.current.shutdown()
}

// pid returns the launcher process ID of the current instance.
func (p *browserPool) pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.launcher.PID()
}

// launch starts headless Chrome with flags that keep background tabs from
// being throttled.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{browser: b, launcher: l}, nil
}
