// Package gemini implements eventsift.Capability on Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/eventsift"
	"google.golang.org/genai"
)

const (
	// DefaultModel answers, classifies, summarizes and scores sentiment.
	DefaultModel = "gemini-2.5-flash"

	// DefaultEmbeddingModel produces embeddings.
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// noAnswer is the reply the model is told to give when the passage does not
// contain the answer.
const noAnswer = "NONE"

// Ensure Capability implements eventsift.Capability at compile time.
var _ eventsift.Capability = (*Capability)(nil)

// Capability answers extraction questions and runs the enrichment
// inferences through the Gemini API.
type Capability struct {
	client     *genai.Client
	model      string
	embedModel string
}

// Option configures a Capability.
type Option func(*Capability)

// WithModel sets the generation model.
func WithModel(model string) Option {
	return func(c *Capability) {
		c.model = model
	}
}

// WithEmbeddingModel sets the embedding model.
func WithEmbeddingModel(model string) Option {
	return func(c *Capability) {
		c.embedModel = model
	}
}

// NewCapability creates a Capability backed by client.
func NewCapability(client *genai.Client, opts ...Option) *Capability {
	c := &Capability{
		client:     client,
		model:      DefaultModel,
		embedModel: DefaultEmbeddingModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Answer extracts the answer to question from passage. A passage that does
// not contain the answer yields the empty string.
func (c *Capability) Answer(ctx context.Context, question, passage string) (string, error) {
	if question == "" {
		return "", eventsift.Errorf(eventsift.EINVALID, "question required")
	}
	if strings.TrimSpace(passage) == "" {
		return "", nil
	}

	reply, err := c.generate(ctx, BuildAnswerPrompt(question, passage), answerConfig())
	if err != nil {
		return "", err
	}
	return ParseAnswer(reply), nil
}

// Sentiment scores text. Empty text is neutral.
func (c *Capability) Sentiment(ctx context.Context, text string) (eventsift.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return eventsift.NeutralSentiment, nil
	}

	reply, err := c.generate(ctx, BuildSentimentPrompt(text), sentimentConfig())
	if err != nil {
		return eventsift.Sentiment{}, err
	}
	return ParseSentiment(reply)
}

// Classify returns the label from labels that best describes text.
func (c *Capability) Classify(ctx context.Context, text string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", eventsift.Errorf(eventsift.EINVALID, "labels required")
	}
	if strings.TrimSpace(text) == "" {
		return "", eventsift.Errorf(eventsift.EINVALID, "text required")
	}

	reply, err := c.generate(ctx, BuildClassifyPrompt(text, labels), plainConfig(0))
	if err != nil {
		return "", err
	}
	label, ok := MatchLabel(reply, labels)
	if !ok {
		return "", eventsift.Errorf(eventsift.EINTERNAL, "model replied with unknown label %q", strings.TrimSpace(reply))
	}
	return label, nil
}

// Summarize condenses text into at most two sentences.
func (c *Capability) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	reply, err := c.generate(ctx, BuildSummaryPrompt(text), plainConfig(0.2))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Embed returns the embedding vector of text.
func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, eventsift.Errorf(eventsift.EINVALID, "text required")
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.embedModel,
		[]*genai.Content{genai.NewContentFromText(text, "user")},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, eventsift.Errorf(eventsift.EINTERNAL, "gemini returned no embedding")
	}
	return resp.Embeddings[0].Values, nil
}

func (c *Capability) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", eventsift.Errorf(eventsift.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func answerConfig() *genai.GenerateContentConfig {
	config := plainConfig(0)
	config.SystemInstruction = &genai.Content{
		Parts: []*genai.Part{{
			Text: "You extract facts about an event from a web page. Reply with the shortest span of the passage that answers the question, copied verbatim. If the passage does not answer it, reply with " + noAnswer + ".",
		}},
	}
	return config
}

func sentimentConfig() *genai.GenerateContentConfig {
	config := plainConfig(0)
	config.ResponseMIMEType = "application/json"
	return config
}

func plainConfig(temp float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{Temperature: &temp}
}

// BuildAnswerPrompt builds the extractive question-answering prompt.
func BuildAnswerPrompt(question, passage string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<passage>\n%s\n</passage>\n\n", passage)
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// ParseAnswer trims a reply and maps the no-answer marker to "".
func ParseAnswer(reply string) string {
	reply = strings.Trim(strings.TrimSpace(reply), `"`)
	if strings.EqualFold(strings.TrimSuffix(reply, "."), noAnswer) {
		return ""
	}
	return reply
}

// BuildSentimentPrompt asks for a JSON sentiment verdict.
func BuildSentimentPrompt(text string) string {
	return "Classify the sentiment of the text as positive, negative or neutral and score it from 0 (very negative) to 1 (very positive), with 0.5 for neutral. " +
		`Respond with JSON of the form {"label": "positive", "score": 0.9}.` + "\n\n<text>\n" + text + "\n</text>"
}

// ParseSentiment decodes a JSON sentiment verdict. The score is clamped to
// [0, 1].
func ParseSentiment(reply string) (eventsift.Sentiment, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimSuffix(strings.TrimPrefix(reply, "```"), "```")

	var s eventsift.Sentiment
	if err := json.Unmarshal([]byte(reply), &s); err != nil {
		return eventsift.Sentiment{}, eventsift.Errorf(eventsift.EINTERNAL, "decoding sentiment: %v", err)
	}
	s.Label = strings.ToLower(strings.TrimSpace(s.Label))
	if s.Label == "" {
		return eventsift.Sentiment{}, eventsift.Errorf(eventsift.EINTERNAL, "sentiment label missing")
	}
	s.Score = min(max(s.Score, 0), 1)
	return s, nil
}

// BuildClassifyPrompt asks the model to pick one of labels.
func BuildClassifyPrompt(text string, labels []string) string {
	var sb strings.Builder
	sb.WriteString("Pick the single label that best describes the event. Reply with the label only.\n\n")
	sb.WriteString("Labels:\n")
	for _, l := range labels {
		fmt.Fprintf(&sb, "- %s\n", l)
	}
	fmt.Fprintf(&sb, "\n<event>\n%s\n</event>", text)
	return sb.String()
}

// MatchLabel maps a reply onto one of labels, ignoring case, surrounding
// punctuation and a leading list marker.
func MatchLabel(reply string, labels []string) (string, bool) {
	reply = strings.Trim(strings.TrimSpace(reply), "-*`\"'. \n")
	for _, l := range labels {
		if strings.EqualFold(reply, l) {
			return l, true
		}
	}
	return "", false
}

// BuildSummaryPrompt asks for a short summary.
func BuildSummaryPrompt(text string) string {
	return "Summarize this event description in at most two sentences. Reply with the summary only.\n\n<text>\n" + text + "\n</text>"
}
