package eventsift

import "context"

// Sentiment is the result of sentiment scoring. Score is in [0, 1] where 0.5
// is neutral and higher is more positive.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NeutralSentiment is returned when sentiment cannot be determined.
var NeutralSentiment = Sentiment{Label: "neutral", Score: 0.5}

// Capability is the narrow contract to the external inference engines.
// Implementations must tolerate empty input.
type Capability interface {
	// Answer answers question using only the given passage. An empty
	// passage yields an empty answer.
	Answer(ctx context.Context, question, passage string) (string, error)

	// Sentiment scores the sentiment of text.
	Sentiment(ctx context.Context, text string) (Sentiment, error)

	// Classify picks the best matching label for text (zero-shot).
	Classify(ctx context.Context, text string, labels []string) (string, error)

	// Summarize returns a short summary of text.
	Summarize(ctx context.Context, text string) (string, error)

	// Embed returns a vector embedding of text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Ensure NopCapability implements Capability at compile time.
var _ Capability = NopCapability{}

// NopCapability is used when no inference backend is configured. Answers are
// empty, sentiment is neutral, and the other operations report EUNAVAILABLE.
type NopCapability struct{}

func (NopCapability) Answer(context.Context, string, string) (string, error) {
	return "", nil
}

func (NopCapability) Sentiment(context.Context, string) (Sentiment, error) {
	return NeutralSentiment, nil
}

func (NopCapability) Classify(context.Context, string, []string) (string, error) {
	return "", Errorf(EUNAVAILABLE, "classification capability not configured")
}

func (NopCapability) Summarize(context.Context, string) (string, error) {
	return "", Errorf(EUNAVAILABLE, "summarization capability not configured")
}

func (NopCapability) Embed(context.Context, string) ([]float32, error) {
	return nil, Errorf(EUNAVAILABLE, "embedding capability not configured")
}
