package eventsift

// Field identifies an event field targeted by extraction.
type Field string

// Fields targeted by extraction.
const (
	FieldName        Field = "name"
	FieldDate        Field = "date"
	FieldVenue       Field = "venue"
	FieldPrice       Field = "price"
	FieldArtists     Field = "artists"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

// Question pairs a target field with the natural-language question asked to
// extract it.
type Question struct {
	Field Field
	Text  string
}

// ExtractionQuestions returns the fixed, ordered question set. The same text
// is used for every document so answers stay comparable and cacheable.
func ExtractionQuestions() []Question {
	return []Question{
		{Field: FieldName, Text: "What is the event name?"},
		{Field: FieldDate, Text: "When is the event date?"},
		{Field: FieldVenue, Text: "Where is the venue?"},
		{Field: FieldPrice, Text: "What is the ticket price?"},
		{Field: FieldArtists, Text: "Who are the performers or artists?"},
		{Field: FieldDescription, Text: "What is the event description?"},
		{Field: FieldCategory, Text: "What type of event is this?"},
	}
}

// QuestionFor returns the extraction question text for a field, or the empty
// string if the field has no question.
func QuestionFor(field Field) string {
	for _, q := range ExtractionQuestions() {
		if q.Field == field {
			return q.Text
		}
	}
	return ""
}

// RawAnswers maps question text to the raw answer string. Unanswered
// questions map to the empty string.
type RawAnswers map[string]string

// AnswersFromFields keys field values by their extraction question, so values
// obtained without the question-answering path can be cleaned by BuildEvent.
// Fields without a question are dropped.
func AnswersFromFields(values map[Field]string) RawAnswers {
	answers := make(RawAnswers, len(values))
	for field, v := range values {
		if q := QuestionFor(field); q != "" {
			answers[q] = v
		}
	}
	return answers
}
