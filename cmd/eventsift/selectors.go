package main

import (
	"fmt"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/extract"
)

// Run executes the selectors command.
func (c *SelectorsCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	selectors := deps.Synthesizer.Synthesize(html)
	if len(selectors) == 0 {
		fmt.Fprintln(deps.Stderr, "No selectors found for this page.")
	}

	for _, q := range eventsift.ExtractionQuestions() {
		if loc, ok := selectors[q.Field]; ok {
			fmt.Fprintf(deps.Stdout, "%-12s %s\n", q.Field, loc)
		}
	}

	if !c.Apply {
		return nil
	}

	ex := &extract.SelectorExtractor{Selectors: selectors, Normalizer: deps.Normalizer}
	event, err := ex.Extract(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout)
	return writeOutput(deps.Stdout, c.Format, event)
}
