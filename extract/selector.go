package extract

import (
	"github.com/fwojciec/eventsift"
	"github.com/fwojciec/eventsift/goquery"
)

// SelectorExtractor builds events from pages that share a layout, reading
// fields at previously synthesized locators instead of asking questions.
type SelectorExtractor struct {
	Selectors eventsift.SelectorMap

	// Normalizer, if set, supplies page text for the description fallback.
	Normalizer eventsift.Normalizer
}

// Extract reads the fields at the configured locators and cleans them like
// answered questions.
func (s *SelectorExtractor) Extract(html, url string) (*eventsift.Event, error) {
	values, err := goquery.ApplySelectors(html, s.Selectors)
	if err != nil {
		return nil, err
	}

	var text string
	if s.Normalizer != nil {
		text = s.Normalizer.Normalize(html)
	}
	return eventsift.BuildEvent(eventsift.AnswersFromFields(values), text, url), nil
}
