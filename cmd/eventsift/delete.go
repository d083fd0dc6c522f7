package main

import (
	"fmt"

	"github.com/fwojciec/eventsift"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return eventsift.Errorf(eventsift.EINVALID, "use --force to confirm deletion")
	}

	event, err := deps.Events.FindEventByID(deps.Ctx, c.ID)
	if eventsift.ErrorCode(err) == eventsift.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: event %q not found. Use 'eventsift list' to see saved events.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	if err := deps.Events.DeleteEvent(deps.Ctx, event.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eventsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted event %q\n", event.Name)
	return nil
}
