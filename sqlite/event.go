package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/eventsift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ eventsift.EventService = (*EventService)(nil)

// EventService implements eventsift.EventService using SQLite.
type EventService struct {
	db *DB
}

// NewEventService creates a new EventService.
func NewEventService(db *DB) *EventService {
	return &EventService{db: db}
}

// hashEvent identifies an event by URL, name and date.
func hashEvent(e *eventsift.Event) string {
	h := xxhash.New()
	for _, part := range []string{e.URL, e.Name, e.Date} {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

const eventColumns = `id, content_hash, name, date, venue, city, state, price, description, artists,
	url, source_site, category, sentiment_score, popularity_score, summary, created_at`

// CreateEvent stores an event, replacing any stored event with the same URL,
// name and date. The replaced event keeps its ID and creation time.
func (s *EventService) CreateEvent(ctx context.Context, event *eventsift.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	event.ContentHash = hashEvent(event)
	now := time.Now().UTC().Format(time.RFC3339)

	var id, createdAt string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			venue = excluded.venue,
			city = excluded.city,
			state = excluded.state,
			price = excluded.price,
			description = excluded.description,
			artists = excluded.artists,
			source_site = excluded.source_site,
			category = excluded.category,
			sentiment_score = excluded.sentiment_score,
			popularity_score = excluded.popularity_score,
			summary = excluded.summary
		RETURNING id, created_at
	`, uuid.New().String(), event.ContentHash, event.Name, event.Date, event.Venue, event.City, event.State,
		nullFloat(event.Price), event.Description, event.Artists, event.URL, event.SourceSite, event.Category,
		nullFloat(event.SentimentScore), event.PopularityScore, event.Summary, now,
	).Scan(&id, &createdAt)
	if err != nil {
		return err
	}

	event.ID = id
	event.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	return err
}

// FindEventByID retrieves an event by ID.
func (s *EventService) FindEventByID(ctx context.Context, id string) (*eventsift.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eventsift.Errorf(eventsift.ENOTFOUND, "event not found")
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// FindEvents retrieves events matching the filter, newest first. City is
// matched case-insensitively.
func (s *EventService) FindEvents(ctx context.Context, filter eventsift.EventFilter) ([]*eventsift.Event, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + eventColumns + ` FROM events WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.City != nil {
		query.WriteString(" AND city = ? COLLATE NOCASE")
		args = append(args, *filter.City)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.SourceSite != nil {
		query.WriteString(" AND source_site = ?")
		args = append(args, *filter.SourceSite)
	}
	if filter.Query != nil && *filter.Query != "" {
		query.WriteString(" AND (name LIKE ? ESCAPE '\\' OR venue LIKE ? ESCAPE '\\' OR city LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(*filter.Query) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*eventsift.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteEvent permanently removes an event.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return eventsift.Errorf(eventsift.ENOTFOUND, "event not found")
	}
	return nil
}

// uncategorized labels events without a category in EventStats.
const uncategorized = "unknown"

// EventStats aggregates over all stored events.
func (s *EventService) EventStats(ctx context.Context) (*eventsift.EventStats, error) {
	stats := &eventsift.EventStats{ByCategory: map[string]int{}}

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN price = 0 THEN 1 ELSE 0 END), 0), AVG(price)
		FROM events
	`).Scan(&stats.Total, &stats.Free, &avg)
	if err != nil {
		return nil, err
	}
	stats.AveragePrice = floatPtr(avg)

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(category, ''), ?), COUNT(*)
		FROM events
		GROUP BY 1
	`, uncategorized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = n
	}
	return stats, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*eventsift.Event, error) {
	var e eventsift.Event
	var price, sentiment sql.NullFloat64
	var createdAt string

	if err := row.Scan(&e.ID, &e.ContentHash, &e.Name, &e.Date, &e.Venue, &e.City, &e.State, &price,
		&e.Description, &e.Artists, &e.URL, &e.SourceSite, &e.Category, &sentiment, &e.PopularityScore,
		&e.Summary, &createdAt); err != nil {
		return nil, err
	}

	e.Price = floatPtr(price)
	e.SentimentScore = floatPtr(sentiment)

	var err error
	e.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// escapeLike escapes LIKE wildcards so q matches literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
