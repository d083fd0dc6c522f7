package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/eventsift"
)

// Ensure LoggingSitemapService implements eventsift.SitemapService.
var _ eventsift.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging. Each discovery
// is logged with the filter's pattern counts so an empty result can be told
// apart from an over-narrow filter.
type LoggingSitemapService struct {
	next   eventsift.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next eventsift.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. Failures are logged at warn
// level.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *eventsift.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		include, exclude := 0, 0
		if filter != nil {
			include, exclude = len(filter.Include), len(filter.Exclude)
		}
		s.logger.Log(ctx, level, "sitemap discovery",
			"site", siteURL,
			"include_patterns", include,
			"exclude_patterns", exclude,
			"event_urls", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, siteURL, filter)
}
