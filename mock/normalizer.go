package mock

import "github.com/fwojciec/eventsift"

var _ eventsift.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of eventsift.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) string
}

func (n *Normalizer) Normalize(html string) string {
	return n.NormalizeFn(html)
}
