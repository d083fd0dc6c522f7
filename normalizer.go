package eventsift

// Normalizer reduces raw HTML to plain text.
type Normalizer interface {
	// Normalize strips non-content markup (script, style, nav, footer,
	// header) and returns the remaining text in document order, joined with
	// single spaces. It never fails; unparseable input yields whatever text is
	// recoverable, possibly the empty string.
	Normalize(html string) string
}
