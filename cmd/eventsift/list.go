package main

import (
	"fmt"

	"github.com/fwojciec/eventsift"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := eventsift.EventFilter{
		City:       optional(c.City),
		Category:   optional(c.Category),
		SourceSite: optional(c.Source),
		Query:      optional(c.Query),
		Limit:      c.Limit,
		Offset:     c.Offset,
	}

	events, err := deps.Events.FindEvents(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	if c.Format != "text" {
		return writeOutput(deps.Stdout, c.Format, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(deps.Stdout, "No events found. Use 'eventsift extract --save' to add some.")
		return nil
	}

	for _, e := range events {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n", e.ID, e.Name, dash(e.Date), dash(e.City), e.URL)
	}
	return nil
}

// optional maps an empty flag value to an unset filter field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
