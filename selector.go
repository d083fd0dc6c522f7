package eventsift

import "regexp"

// SelectorMap maps a field to a locator: "#id", ".class1.class2" or a bare
// tag name. Fields without a locator are absent from the map.
type SelectorMap map[Field]string

// SelectorPattern describes elements likely to hold a field's value.
//
// A pattern with both Tag and ClassContains matches elements of that tag
// whose class list contains any of the substrings. ClassContains alone
// matches any element by class. Tag alone matches by tag name. TextPattern
// matches the element directly holding visible text that matches.
type SelectorPattern struct {
	Tag           string
	ClassContains []string
	TextPattern   *regexp.Regexp
}

// FieldPatterns lists candidate patterns for a field, most specific first.
type FieldPatterns struct {
	Field    Field
	Patterns []SelectorPattern
}

// DefaultSelectorPatterns returns the ordered pattern table used for
// selector synthesis.
func DefaultSelectorPatterns() []FieldPatterns {
	return []FieldPatterns{
		{Field: FieldName, Patterns: []SelectorPattern{
			{Tag: "h1", ClassContains: []string{"title", "name", "event"}},
			{Tag: "h2", ClassContains: []string{"title", "name", "event"}},
			{ClassContains: []string{"event-title", "festival-name", "title"}},
		}},
		{Field: FieldDate, Patterns: []SelectorPattern{
			{ClassContains: []string{"date", "time", "when"}},
			{TextPattern: regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)},
		}},
		{Field: FieldVenue, Patterns: []SelectorPattern{
			{ClassContains: []string{"venue", "location", "where", "place"}},
			{TextPattern: regexp.MustCompile(`(?i)\b\w+\s+(?:center|centre|hall|arena|stadium|park)\b`)},
		}},
		{Field: FieldPrice, Patterns: []SelectorPattern{
			{ClassContains: []string{"price", "cost", "ticket"}},
			{TextPattern: regexp.MustCompile(`(?i)\$\d+(?:\.\d{2})?`)},
		}},
	}
}

// SelectorSynthesizer proposes reusable locators for event fields from a
// page's structure, without any inference calls.
type SelectorSynthesizer interface {
	Synthesize(html string) SelectorMap
}
