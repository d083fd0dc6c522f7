package extract

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DomainLimiter spaces out requests to the same host. Requests to different
// hosts do not wait on each other. Safe for concurrent use.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per host
// every interval, with no bursting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
	}
}

// Wait blocks until a request to rawURL's host is allowed. URLs without a
// parseable host share a single bucket. Returns an error if ctx ends first.
func (d *DomainLimiter) Wait(ctx context.Context, rawURL string) error {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Hostname()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.every, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
