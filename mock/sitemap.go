package mock

import (
	"context"

	"github.com/fwojciec/eventsift"
)

var _ eventsift.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of eventsift.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string, filter *eventsift.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *eventsift.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL, filter)
}
