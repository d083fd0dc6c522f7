package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/eventsift"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Events.EventStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	if c.Format != "text" {
		return writeOutput(deps.Stdout, c.Format, stats)
	}

	fmt.Fprintf(deps.Stdout, "Total events:  %d\n", stats.Total)
	fmt.Fprintf(deps.Stdout, "Free events:   %d\n", stats.Free)
	if stats.AveragePrice != nil {
		fmt.Fprintf(deps.Stdout, "Average price: %.2f\n", *stats.AveragePrice)
	} else {
		fmt.Fprintln(deps.Stdout, "Average price: -")
	}

	if len(stats.ByCategory) > 0 {
		fmt.Fprintln(deps.Stdout, "By category:")
		categories := make([]string, 0, len(stats.ByCategory))
		for category := range stats.ByCategory {
			categories = append(categories, category)
		}
		slices.Sort(categories)
		for _, category := range categories {
			fmt.Fprintf(deps.Stdout, "  %-22s %d\n", category, stats.ByCategory[category])
		}
	}
	return nil
}
