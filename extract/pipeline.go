package extract

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/eventsift"
)

// Pipeline turns one page's HTML into an event: normalize, bound the text to
// the context budget, ask the fixed questions, clean the answers.
type Pipeline struct {
	Normalizer       eventsift.Normalizer
	Capability       eventsift.Capability
	MaxContextLength int
	Logger           *slog.Logger
}

// Extract runs the pipeline on html fetched from url. The returned event
// always carries url and its source site, even when no field was answered.
func (p *Pipeline) Extract(ctx context.Context, html, url string) *eventsift.Event {
	text := p.Normalizer.Normalize(html)
	answers := p.Ask(ctx, p.Bound(text))
	return eventsift.BuildEvent(answers, text, url)
}

// Bound returns text unchanged when it fits MaxContextLength and its
// relevance digest otherwise.
func (p *Pipeline) Bound(text string) string {
	if utf8.RuneCountInString(text) <= p.MaxContextLength {
		return text
	}
	return eventsift.Truncate(text, p.MaxContextLength)
}

// Ask answers every extraction question against passage. Each question is
// isolated: a failed call records an empty answer for that question only.
// An empty passage answers nothing and makes no calls.
func (p *Pipeline) Ask(ctx context.Context, passage string) eventsift.RawAnswers {
	questions := eventsift.ExtractionQuestions()
	answers := make(eventsift.RawAnswers, len(questions))
	for _, q := range questions {
		answers[q.Text] = ""
	}
	if strings.TrimSpace(passage) == "" || p.Capability == nil {
		return answers
	}

	for _, q := range questions {
		answer, err := p.Capability.Answer(ctx, q.Text, passage)
		if err != nil {
			p.logger().Debug("answer failed", "field", q.Field, "err", err)
			continue
		}
		answers[q.Text] = strings.TrimSpace(answer)
	}
	return answers
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}
