package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/eventsift"
	main "github.com/fwojciec/eventsift/cmd/eventsift"
	"github.com/fwojciec/eventsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	stored := []*eventsift.Event{
		{ID: "evt-1", Name: "Jazz Night", Date: "2024-06-01", City: "Austin", URL: "https://example.com/jazz"},
		{ID: "evt-2", Name: "Taco Fest", URL: "https://example.com/taco"},
	}

	t.Run("lists events with ID, name, date, city and URL", func(t *testing.T) {
		t.Parallel()

		events := &mock.EventService{
			FindEventsFn: func(_ context.Context, _ eventsift.EventFilter) ([]*eventsift.Event, error) {
				return stored, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Events: events}

		err := (&main.ListCmd{Format: "text"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "evt-1  Jazz Night  2024-06-01  Austin  https://example.com/jazz")
		assert.Contains(t, stdout.String(), "evt-2  Taco Fest  -  -  https://example.com/taco")
	})

	t.Run("passes set flags as filters", func(t *testing.T) {
		t.Parallel()

		var got eventsift.EventFilter
		events := &mock.EventService{
			FindEventsFn: func(_ context.Context, f eventsift.EventFilter) ([]*eventsift.Event, error) {
				got = f
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Events: events}

		err := (&main.ListCmd{City: "Austin", Query: "jazz", Limit: 10, Offset: 5, Format: "text"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.City)
		assert.Equal(t, "Austin", *got.City)
		require.NotNil(t, got.Query)
		assert.Equal(t, "jazz", *got.Query)
		assert.Nil(t, got.Category)
		assert.Nil(t, got.SourceSite)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 5, got.Offset)
	})

	t.Run("shows helpful message when no events exist", func(t *testing.T) {
		t.Parallel()

		events := &mock.EventService{
			FindEventsFn: func(_ context.Context, _ eventsift.EventFilter) ([]*eventsift.Event, error) {
				return []*eventsift.Event{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Events: events}

		require.NoError(t, (&main.ListCmd{Format: "text"}).Run(deps))
		assert.Contains(t, stdout.String(), "No events found")
	})

	t.Run("writes JSON", func(t *testing.T) {
		t.Parallel()

		events := &mock.EventService{
			FindEventsFn: func(_ context.Context, _ eventsift.EventFilter) ([]*eventsift.Event, error) {
				return stored, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Events: events}

		require.NoError(t, (&main.ListCmd{Format: "json"}).Run(deps))

		var got []eventsift.Event
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "evt-1", got[0].ID)
	})

	t.Run("returns store errors", func(t *testing.T) {
		t.Parallel()

		events := &mock.EventService{
			FindEventsFn: func(_ context.Context, _ eventsift.EventFilter) ([]*eventsift.Event, error) {
				return nil, errors.New("database locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Events: events}

		require.Error(t, (&main.ListCmd{Format: "text"}).Run(deps))
		assert.Contains(t, stderr.String(), "error: Internal error.")
	})
}
