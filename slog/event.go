package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/eventsift"
)

// Ensure LoggingEventService implements eventsift.EventService.
var _ eventsift.EventService = (*LoggingEventService)(nil)

// LoggingEventService wraps an EventService with logging.
type LoggingEventService struct {
	next   eventsift.EventService
	logger *slog.Logger
}

// NewLoggingEventService creates a new LoggingEventService.
func NewLoggingEventService(next eventsift.EventService, logger *slog.Logger) *LoggingEventService {
	return &LoggingEventService{next: next, logger: logger}
}

func (s *LoggingEventService) CreateEvent(ctx context.Context, event *eventsift.Event) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create event",
			"name", event.Name,
			"url", event.URL,
			"id", event.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateEvent(ctx, event)
}

func (s *LoggingEventService) FindEventByID(ctx context.Context, id string) (event *eventsift.Event, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find event by id",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEventByID(ctx, id)
}

func (s *LoggingEventService) FindEvents(ctx context.Context, filter eventsift.EventFilter) (events []*eventsift.Event, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find events",
			"count", len(events),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEvents(ctx, filter)
}

func (s *LoggingEventService) DeleteEvent(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete event",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteEvent(ctx, id)
}

func (s *LoggingEventService) EventStats(ctx context.Context) (stats *eventsift.EventStats, err error) {
	defer func(begin time.Time) {
		total := 0
		if stats != nil {
			total = stats.Total
		}
		s.logger.Debug("event stats",
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.EventStats(ctx)
}
