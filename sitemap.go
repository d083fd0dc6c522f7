package eventsift

import (
	"context"
	"regexp"
)

// SitemapService discovers candidate event page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the sitemaps of siteURL.
	// Sitemaps are located through robots.txt, falling back to /sitemap.xml,
	// and sitemap indexes are followed. A nil filter passes every URL.
	DiscoverURLs(ctx context.Context, siteURL string, filter *URLFilter) ([]string, error)
}

// URLFilter includes and excludes URLs by pattern.
type URLFilter struct {
	// Include patterns. When set, a URL must match at least one.
	Include []*regexp.Regexp

	// Exclude patterns, applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether the URL passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !anyMatch(f.Include, url) {
		return false
	}
	return !anyMatch(f.Exclude, url)
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
