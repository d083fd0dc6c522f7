package eventsift

import (
	"strings"
	"unicode/utf8"
)

// minFallbackTextLength is the normalized text length above which a missing
// description is recovered from the page text.
const minFallbackTextLength = 100

// BuildEvent cleans raw answers into an Event. text is the normalized page
// text, used to recover a description when none was extracted. URL and
// SourceSite are always set from rawURL.
func BuildEvent(answers RawAnswers, text, rawURL string) *Event {
	e := &Event{
		URL:        rawURL,
		SourceSite: SourceSite(rawURL),
	}

	for _, q := range ExtractionQuestions() {
		answer := answers[q.Text]
		if strings.TrimSpace(answer) == "" {
			continue
		}

		switch q.Field {
		case FieldName:
			e.Name = CleanName(answer)
		case FieldDate:
			e.Date = CleanDate(answer)
		case FieldVenue:
			loc := ParseVenue(answer)
			e.Venue, e.City, e.State = loc.Venue, loc.City, loc.State
		case FieldPrice:
			e.Price = CleanPrice(answer)
		case FieldDescription:
			e.Description = CleanDescription(answer)
		case FieldArtists:
			e.Artists = CleanArtists(answer)
		case FieldCategory:
			e.Category = CleanCategory(answer)
		}
	}

	if e.Description == "" && utf8.RuneCountInString(text) > minFallbackTextLength {
		e.Description = DescriptionFromText(text)
	}

	return e
}
