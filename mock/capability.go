package mock

import (
	"context"

	"github.com/fwojciec/eventsift"
)

var _ eventsift.Capability = (*Capability)(nil)

// Capability is a mock implementation of eventsift.Capability.
type Capability struct {
	AnswerFn    func(ctx context.Context, question, passage string) (string, error)
	SentimentFn func(ctx context.Context, text string) (eventsift.Sentiment, error)
	ClassifyFn  func(ctx context.Context, text string, labels []string) (string, error)
	SummarizeFn func(ctx context.Context, text string) (string, error)
	EmbedFn     func(ctx context.Context, text string) ([]float32, error)
}

func (c *Capability) Answer(ctx context.Context, question, passage string) (string, error) {
	return c.AnswerFn(ctx, question, passage)
}

func (c *Capability) Sentiment(ctx context.Context, text string) (eventsift.Sentiment, error) {
	return c.SentimentFn(ctx, text)
}

func (c *Capability) Classify(ctx context.Context, text string, labels []string) (string, error) {
	return c.ClassifyFn(ctx, text, labels)
}

func (c *Capability) Summarize(ctx context.Context, text string) (string, error) {
	return c.SummarizeFn(ctx, text)
}

func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.EmbedFn(ctx, text)
}
