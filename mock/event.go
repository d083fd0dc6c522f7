package mock

import (
	"context"

	"github.com/fwojciec/eventsift"
)

var _ eventsift.EventService = (*EventService)(nil)

// EventService is a mock implementation of eventsift.EventService.
type EventService struct {
	CreateEventFn   func(ctx context.Context, event *eventsift.Event) error
	FindEventByIDFn func(ctx context.Context, id string) (*eventsift.Event, error)
	FindEventsFn    func(ctx context.Context, filter eventsift.EventFilter) ([]*eventsift.Event, error)
	DeleteEventFn   func(ctx context.Context, id string) error
	EventStatsFn    func(ctx context.Context) (*eventsift.EventStats, error)
}

func (s *EventService) CreateEvent(ctx context.Context, event *eventsift.Event) error {
	return s.CreateEventFn(ctx, event)
}

func (s *EventService) FindEventByID(ctx context.Context, id string) (*eventsift.Event, error) {
	return s.FindEventByIDFn(ctx, id)
}

func (s *EventService) FindEvents(ctx context.Context, filter eventsift.EventFilter) ([]*eventsift.Event, error) {
	return s.FindEventsFn(ctx, filter)
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	return s.DeleteEventFn(ctx, id)
}

func (s *EventService) EventStats(ctx context.Context) (*eventsift.EventStats, error) {
	return s.EventStatsFn(ctx)
}
