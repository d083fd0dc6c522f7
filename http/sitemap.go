package http

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/eventsift"
)

// Ensure SitemapService implements eventsift.SitemapService at compile time.
var _ eventsift.SitemapService = (*SitemapService)(nil)

// maxSitemaps bounds how many sitemap documents one discovery will read.
const maxSitemaps = 100

// SitemapService lists candidate event page URLs from a site's sitemaps.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs reads the sitemaps announced in robots.txt, falling back to
// /sitemap.xml, and returns page URLs in discovery order without duplicates.
// A site without sitemaps yields an empty slice.
//
// When siteURL has a path (e.g. https://venue.example/events/), only pages
// under that path are returned. filter, if non-nil, is applied last.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *eventsift.URLFilter) ([]string, error) {
	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, eventsift.Errorf(eventsift.EINVALID, "invalid site URL %q", siteURL)
	}
	scope := strings.TrimSuffix(site.Path, "/")
	root := &url.URL{Scheme: site.Scheme, Host: site.Host}

	queue, err := s.sitemapsFor(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenPages := make(map[string]bool)
	seenMaps := make(map[string]bool)
	for len(queue) > 0 && len(seenMaps) < maxSitemaps {
		next := queue[0]
		queue = queue[1:]
		if seenMaps[next] {
			continue
		}
		seenMaps[next] = true

		children, pages, err := s.readSitemap(ctx, next)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)

		for _, p := range pages {
			if seenPages[p] || !inScope(p, scope) || (filter != nil && !filter.Match(p)) {
				continue
			}
			seenPages[p] = true
			urls = append(urls, p)
		}
	}
	return urls, nil
}

// inScope reports whether page lies under the path scope, on a segment
// boundary: /events matches /events and /events/jazz but not /eventsarchive.
func inScope(page, scope string) bool {
	if scope == "" {
		return true
	}
	u, err := url.Parse(page)
	if err != nil {
		return false
	}
	return u.Path == scope || strings.HasPrefix(u.Path, scope+"/")
}

// sitemapsFor returns the sitemap URLs declared in robots.txt, or
// /sitemap.xml if it exists, or nothing.
func (s *SitemapService) sitemapsFor(ctx context.Context, root *url.URL) ([]string, error) {
	if maps := s.robotsSitemaps(ctx, root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()); len(maps) > 0 {
		return maps, nil
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps returns the Sitemap: directives of robots.txt. Any failure
// reading robots.txt counts as having none.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	resp, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	var maps []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			maps = append(maps, v)
		}
	}
	return maps
}

// readSitemap fetches one sitemap document. A <sitemapindex> yields child
// sitemap URLs; a <urlset> yields page URLs.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (children, pages []string, err error) {
	resp, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, nil, eventsift.Errorf(eventsift.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, eventsift.Errorf(eventsift.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return locs(root, "sitemap"), nil, nil
	}
	return nil, locs(root, "url"), nil
}

// locs collects the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp, nil
}
