package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/mock"
	esslog "github.com/fwojciec/eventsift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingEventService_CreateEvent(t *testing.T) {
	t.Parallel()

	t.Run("logs the assigned id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.EventService{
			CreateEventFn: func(ctx context.Context, event *eventsift.Event) error {
				event.ID = "evt-1"
				return nil
			},
		}

		svc := esslog.NewLoggingEventService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := svc.CreateEvent(context.Background(), &eventsift.Event{Name: "Jazz Night", URL: "https://example.com/jazz"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, `msg="create event"`)
		assert.Contains(t, output, `name="Jazz Night"`)
		assert.Contains(t, output, "id=evt-1")
	})

	t.Run("logs validation errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.EventService{
			CreateEventFn: func(ctx context.Context, event *eventsift.Event) error {
				return eventsift.Errorf(eventsift.EINVALID, "event name required")
			},
		}

		svc := esslog.NewLoggingEventService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		err := svc.CreateEvent(context.Background(), &eventsift.Event{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "event name required")
	})
}

func TestLoggingEventService_FindEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.EventService{
		FindEventsFn: func(ctx context.Context, filter eventsift.EventFilter) ([]*eventsift.Event, error) {
			return []*eventsift.Event{{Name: "A"}, {Name: "B"}}, nil
		},
	}

	svc := esslog.NewLoggingEventService(inner, debugLogger(&buf))
	events, err := svc.FindEvents(context.Background(), eventsift.EventFilter{})

	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggingEventService_DeleteEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.EventService{
		DeleteEventFn: func(ctx context.Context, id string) error {
			return eventsift.Errorf(eventsift.ENOTFOUND, "event not found")
		},
	}

	svc := esslog.NewLoggingEventService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
	err := svc.DeleteEvent(context.Background(), "missing")

	assert.Equal(t, eventsift.ENOTFOUND, eventsift.ErrorCode(err))
	assert.Contains(t, buf.String(), "id=missing")
}

func TestLoggingEventService_EventStats(t *testing.T) {
	t.Parallel()

	t.Run("logs the total", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.EventService{
			EventStatsFn: func(ctx context.Context) (*eventsift.EventStats, error) {
				return &eventsift.EventStats{Total: 7}, nil
			},
		}

		svc := esslog.NewLoggingEventService(inner, debugLogger(&buf))
		stats, err := svc.EventStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, stats.Total)
		assert.Contains(t, buf.String(), "total=7")
	})

	t.Run("tolerates nil stats on error", func(t *testing.T) {
		t.Parallel()

		inner := &mock.EventService{
			EventStatsFn: func(ctx context.Context) (*eventsift.EventStats, error) {
				return nil, eventsift.Errorf(eventsift.EINTERNAL, "boom")
			},
		}

		svc := esslog.NewLoggingEventService(inner, slog.New(slog.DiscardHandler))
		_, err := svc.EventStats(context.Background())

		require.Error(t, err)
	})
}
