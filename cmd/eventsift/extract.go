package main

import (
	"fmt"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := c.Config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	pipeline := &extract.Pipeline{
		Normalizer:       deps.Normalizer,
		Capability:       deps.Capability,
		MaxContextLength: cfg.MaxContextLength,
		Logger:           deps.Logger,
	}
	batcher := extract.NewBatcher(deps.Fetcher, pipeline, cfg, deps.Logger)

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Fetching %d URLs\n", event.Total)
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result := batcher.Extract(deps.Ctx, c.URLs, progress)
	if err := deps.Ctx.Err(); err != nil {
		return err
	}

	if c.Enrich || c.Classify {
		enricher := &extract.Enricher{
			Capability: deps.Capability,
			Classify:   c.Classify,
			Logger:     deps.Logger,
		}
		for _, event := range result.Events {
			enricher.Enrich(deps.Ctx, event)
		}
	}

	if c.Save {
		saved := 0
		for _, event := range result.Events {
			if err := deps.Events.CreateEvent(deps.Ctx, event); err != nil {
				fmt.Fprintf(deps.Stderr, "  not saved %s: %s\n", event.URL, eventsift.ErrorMessage(err))
				continue
			}
			saved++
		}
		fmt.Fprintf(deps.Stderr, "  Saved %d events\n", saved)
	}

	fmt.Fprintf(deps.Stderr, "  Extracted %d events from %d URLs (%d failed, %d without a name)\n",
		len(result.Events), len(c.URLs), result.Failed, result.Nameless)

	return writeOutput(deps.Stdout, c.Format, result.Events)
}
