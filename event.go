package eventsift

import (
	"context"
	"time"
)

// Event is a structured event record extracted from a single page.
//
// All string fields default to the empty string. Price is nil when no price
// could be determined, and zero for free events. URL and SourceSite are always
// derived from the input URL, whether or not extraction found anything.
type Event struct {
	Name        string   `json:"name" yaml:"name"`
	Date        string   `json:"date" yaml:"date"`
	Venue       string   `json:"venue" yaml:"venue"`
	City        string   `json:"city" yaml:"city"`
	State       string   `json:"state" yaml:"state"`
	Price       *float64 `json:"price" yaml:"price"`
	Description string   `json:"description" yaml:"description"`
	Artists     string   `json:"artists" yaml:"artists"`
	URL         string   `json:"url" yaml:"url"`
	SourceSite  string   `json:"sourceSite" yaml:"source_site"`
	Category    string   `json:"category" yaml:"category"`

	// Set by the store.
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	ContentHash string    `json:"contentHash,omitempty" yaml:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero" yaml:"created_at,omitempty"`

	// Set by enrichment.
	SentimentScore  *float64 `json:"sentimentScore,omitempty" yaml:"sentiment_score,omitempty"`
	PopularityScore float64  `json:"popularityScore,omitempty" yaml:"popularity_score,omitempty"`
	Summary         string   `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Validate returns an error if the event cannot be stored.
func (e *Event) Validate() error {
	if e.Name == "" {
		return Errorf(EINVALID, "event name required")
	}
	if e.Price != nil && *e.Price < 0 {
		return Errorf(EINVALID, "event price must not be negative")
	}
	return nil
}

// EventService represents a service for persisting extracted events.
type EventService interface {
	// CreateEvent stores an event. Storing an event with the same URL, name
	// and date as an existing one replaces the existing record.
	CreateEvent(ctx context.Context, event *Event) error

	// FindEventByID retrieves an event by ID.
	// Returns ENOTFOUND if the event does not exist.
	FindEventByID(ctx context.Context, id string) (*Event, error)

	// FindEvents retrieves events matching the filter.
	FindEvents(ctx context.Context, filter EventFilter) ([]*Event, error)

	// DeleteEvent permanently removes an event.
	// Returns ENOTFOUND if the event does not exist.
	DeleteEvent(ctx context.Context, id string) error

	// EventStats returns aggregate statistics over all stored events.
	EventStats(ctx context.Context) (*EventStats, error)
}

// EventFilter represents a filter for FindEvents.
type EventFilter struct {
	ID         *string `json:"id"`
	City       *string `json:"city"`
	Category   *string `json:"category"`
	SourceSite *string `json:"sourceSite"`

	// Query matches events whose name, venue, city or description contains
	// the text, case-insensitively.
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EventStats holds aggregate statistics over stored events.
type EventStats struct {
	Total        int            `json:"total" yaml:"total"`
	Free         int            `json:"free" yaml:"free"`
	AveragePrice *float64       `json:"averagePrice" yaml:"average_price"`
	ByCategory   map[string]int `json:"byCategory" yaml:"by_category"`
}
