package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/eventsift"
)

// Ensure LoggingCapability implements eventsift.Capability.
var _ eventsift.Capability = (*LoggingCapability)(nil)

// LoggingCapability wraps a Capability with debug logging. Text is logged
// by length only.
type LoggingCapability struct {
	next   eventsift.Capability
	logger *slog.Logger
}

// NewLoggingCapability creates a new LoggingCapability.
func NewLoggingCapability(next eventsift.Capability, logger *slog.Logger) *LoggingCapability {
	return &LoggingCapability{next: next, logger: logger}
}

func (c *LoggingCapability) Answer(ctx context.Context, question, passage string) (answer string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("answer",
			"question", question,
			"passage_len", len(passage),
			"answer_len", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Answer(ctx, question, passage)
}

func (c *LoggingCapability) Sentiment(ctx context.Context, text string) (s eventsift.Sentiment, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("sentiment",
			"text_len", len(text),
			"label", s.Label,
			"score", s.Score,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Sentiment(ctx, text)
}

func (c *LoggingCapability) Classify(ctx context.Context, text string, labels []string) (label string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("classify",
			"text_len", len(text),
			"labels", len(labels),
			"label", label,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Classify(ctx, text, labels)
}

func (c *LoggingCapability) Summarize(ctx context.Context, text string) (summary string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("summarize",
			"text_len", len(text),
			"summary_len", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Summarize(ctx, text)
}

func (c *LoggingCapability) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("embed",
			"text_len", len(text),
			"dims", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Embed(ctx, text)
}
