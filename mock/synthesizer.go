package mock

import "github.com/fwojciec/eventsift"

var _ eventsift.SelectorSynthesizer = (*SelectorSynthesizer)(nil)

// SelectorSynthesizer is a mock implementation of eventsift.SelectorSynthesizer.
type SelectorSynthesizer struct {
	SynthesizeFn func(html string) eventsift.SelectorMap
}

func (s *SelectorSynthesizer) Synthesize(html string) eventsift.SelectorMap {
	return s.SynthesizeFn(html)
}
