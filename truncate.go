package eventsift

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// RelevanceKeywords are the domain keywords used to rank sentences.
var RelevanceKeywords = []string{
	"festival", "event", "concert", "show", "performance", "venue",
	"date", "time", "location", "price", "ticket", "artist", "performer",
}

// minSentenceLength is the shortest sentence, in characters, kept by Truncate.
const minSentenceLength = 10

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on runs of '.', '!' and '?' and trims each part.
// Empty parts are kept so callers can apply their own length filters.
func SplitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// RelevanceScore counts how many RelevanceKeywords appear in sentence,
// ignoring case. Each keyword counts at most once.
func RelevanceScore(sentence string) int {
	lower := strings.ToLower(sentence)
	score := 0
	for _, kw := range RelevanceKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

type scoredSentence struct {
	text  string
	score int
}

// Truncate builds a relevance digest of text that fits within budget
// characters. Sentences shorter than 10 characters are dropped, the rest are
// ordered by RelevanceScore (highest first, ties in document order) and
// appended, each followed by ". ", until the next sentence would exceed the
// budget. The result is trimmed, so it ends with a period.
//
// The digest does not preserve document order.
func Truncate(text string, budget int) string {
	var sentences []scoredSentence
	for _, s := range SplitSentences(text) {
		if utf8.RuneCountInString(s) < minSentenceLength {
			continue
		}
		sentences = append(sentences, scoredSentence{text: s, score: RelevanceScore(s)})
	}

	sort.SliceStable(sentences, func(i, j int) bool {
		return sentences[i].score > sentences[j].score
	})

	var b strings.Builder
	length := 0
	for _, s := range sentences {
		n := utf8.RuneCountInString(s.text)
		if length+n > budget {
			break
		}
		b.WriteString(s.text)
		b.WriteString(". ")
		length += n + 2
	}

	return strings.TrimSpace(b.String())
}
