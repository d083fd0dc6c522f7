package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Events      eventsift.EventService
	Sitemaps    eventsift.SitemapService
	Fetcher     eventsift.Fetcher
	Normalizer  eventsift.Normalizer
	Synthesizer eventsift.SelectorSynthesizer
	Capability  eventsift.Capability
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log each fetch and inference call to stderr"`
	Model   string `default:"gemini-2.5-flash" env:"EVENTSIFT_MODEL" help:"Gemini model used for question answering"`

	Extract   ExtractCmd   `cmd:"" help:"Extract events from pages"`
	Selectors SelectorsCmd `cmd:"" help:"Synthesize CSS selectors for a page layout"`
	Discover  DiscoverCmd  `cmd:"" help:"List candidate event URLs from a site's sitemaps"`
	List      ListCmd      `cmd:"" help:"List saved events"`
	Stats     StatsCmd     `cmd:"" help:"Show statistics over saved events"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a saved event"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs     []string `arg:"" name:"url" help:"Event page URLs"`
	Save     bool     `short:"s" help:"Save extracted events to the database"`
	Enrich   bool     `short:"e" help:"Add sentiment, category, popularity and summary"`
	Classify bool     `help:"Assign missing categories with the model instead of keywords (implies --enrich)"`
	JS       bool     `name:"js" help:"Render pages in headless Chrome"`
	Format   string   `short:"o" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`

	MaxConcurrentFetches int           `short:"c" default:"5" env:"EVENTSIFT_MAX_CONCURRENT_FETCHES" help:"Concurrent fetch limit"`
	FetchTimeout         time.Duration `default:"30s" env:"EVENTSIFT_FETCH_TIMEOUT" help:"Per-URL fetch timeout"`
	MaxContextLength     int           `default:"2000" env:"EVENTSIFT_MAX_CONTEXT_LENGTH" help:"Character budget of text passed to the model"`
	ScrapeDelay          time.Duration `default:"0s" env:"EVENTSIFT_SCRAPE_DELAY" help:"Minimum delay between fetches to the same host"`
}

// Config returns the extraction settings carried by the flags.
func (c *ExtractCmd) Config() extract.Config {
	return extract.Config{
		MaxConcurrentFetches: c.MaxConcurrentFetches,
		FetchTimeout:         c.FetchTimeout,
		MaxContextLength:     c.MaxContextLength,
		ScrapeDelay:          c.ScrapeDelay,
	}
}

// SelectorsCmd is the "selectors" subcommand.
type SelectorsCmd struct {
	URL    string `arg:"" help:"Sample event page URL"`
	Apply  bool   `short:"a" help:"Also extract an event using the synthesized selectors"`
	JS     bool   `name:"js" help:"Render the page in headless Chrome"`
	Format string `short:"o" enum:"json,yaml" default:"json" help:"Output format for --apply (json, yaml)"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Site    string   `arg:"" help:"Site URL; a path limits discovery to pages below it"`
	Filter  []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude []string `short:"x" name:"exclude" help:"Exclude URLs matching regex (repeatable)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	City     string `help:"Filter by city"`
	Category string `help:"Filter by category"`
	Source   string `help:"Filter by source site"`
	Query    string `short:"q" help:"Search name, venue, city and description"`
	Limit    int    `short:"n" default:"50" help:"Maximum number of events"`
	Offset   int    `help:"Number of events to skip"`
	Format   string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Format string `short:"o" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Event ID"`
	Force bool   `help:"Confirm deletion"`
}
