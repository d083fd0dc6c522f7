package extract

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/fwojciec/eventsift"
)

// DefaultSummaryThreshold is the description length, in characters, above
// which Enricher asks for a summary.
const DefaultSummaryThreshold = 200

// Enricher adds derived attributes to extracted events: sentiment, a
// category when none was extracted, a popularity score, and a summary of long
// descriptions. Capability failures fall back to defaults.
type Enricher struct {
	Capability eventsift.Capability

	// Classify asks the capability for the category before falling back to
	// the keyword rules.
	Classify bool

	// SummaryThreshold overrides DefaultSummaryThreshold when positive.
	SummaryThreshold int

	Logger *slog.Logger
}

// Enrich updates event in place.
func (e *Enricher) Enrich(ctx context.Context, event *eventsift.Event) {
	score := e.sentiment(ctx, event)
	event.SentimentScore = &score

	if event.Category == "" {
		event.Category = e.category(ctx, event)
	}

	event.PopularityScore = eventsift.PopularityScore(event)

	threshold := e.SummaryThreshold
	if threshold <= 0 {
		threshold = DefaultSummaryThreshold
	}
	if utf8.RuneCountInString(event.Description) > threshold {
		summary, err := e.Capability.Summarize(ctx, event.Description)
		if err != nil {
			e.logger().Debug("summarize failed", "url", event.URL, "err", err)
		} else {
			event.Summary = summary
		}
	}
}

// sentiment scores the description, or the name when there is none.
func (e *Enricher) sentiment(ctx context.Context, event *eventsift.Event) float64 {
	text := event.Description
	if text == "" {
		text = event.Name
	}
	if text == "" {
		return eventsift.NeutralSentiment.Score
	}

	s, err := e.Capability.Sentiment(ctx, text)
	if err != nil {
		e.logger().Debug("sentiment failed", "url", event.URL, "err", err)
		return eventsift.NeutralSentiment.Score
	}
	return s.Score
}

func (e *Enricher) category(ctx context.Context, event *eventsift.Event) string {
	if e.Classify {
		label, err := e.Capability.Classify(ctx, event.Name+" "+event.Description, eventsift.Categories())
		switch {
		case err != nil:
			e.logger().Debug("classify failed", "url", event.URL, "err", err)
		case label == "":
			e.logger().Debug("classify returned no label", "url", event.URL)
		default:
			return label
		}
	}
	return eventsift.AssignCategory(event)
}

func (e *Enricher) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
