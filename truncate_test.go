package eventsift_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/eventsift"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	text := "Buy tickets for the concert at the venue. Hello there friend. " +
		"The festival show starts at noon. Short."

	t.Run("orders sentences by keyword score", func(t *testing.T) {
		t.Parallel()

		got := eventsift.Truncate(text, 1000)

		assert.Equal(t, "Buy tickets for the concert at the venue. "+
			"The festival show starts at noon. Hello there friend.", got)
	})

	t.Run("stops at the first sentence that does not fit", func(t *testing.T) {
		t.Parallel()

		got := eventsift.Truncate(text, 45)

		assert.Equal(t, "Buy tickets for the concert at the venue.", got)
	})

	t.Run("keeps document order for equal scores", func(t *testing.T) {
		t.Parallel()

		got := eventsift.Truncate("Alpha sentence one here. Beta sentence two here.", 1000)

		assert.Equal(t, "Alpha sentence one here. Beta sentence two here.", got)
	})

	t.Run("returns empty when no sentence is long enough", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, eventsift.Truncate("Hi. Yes! Ok? Fine.", 1000))
		assert.Empty(t, eventsift.Truncate("", 1000))
	})

	t.Run("returns empty when the budget fits nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, eventsift.Truncate(text, 5))
	})

	t.Run("never exceeds the budget plus the final period", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("The concert venue opens early for ticket holders. "+
			"Parking is available nearby on weekends! "+
			"Is the artist performance sold out? ", 20)

		for budget := 0; budget <= 600; budget += 7 {
			got := eventsift.Truncate(long, budget)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), budget+1, "budget %d", budget)
		}
	})

	t.Run("included sentences outscore excluded ones", func(t *testing.T) {
		t.Parallel()

		input := "Nothing relevant in this line. The festival concert has a show. " +
			"Tickets at the venue box office. Another plain sentence here."

		got := eventsift.Truncate(input, 70)

		included := eventsift.SplitSentences(got)
		minIncluded := 1 << 30
		for _, s := range included {
			if s == "" {
				continue
			}
			minIncluded = min(minIncluded, eventsift.RelevanceScore(s))
		}
		for _, s := range eventsift.SplitSentences(input) {
			if len(s) < 10 || strings.Contains(got, s) {
				continue
			}
			assert.LessOrEqual(t, eventsift.RelevanceScore(s), minIncluded, "excluded %q", s)
		}
	})
}

func TestRelevanceScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, eventsift.RelevanceScore("nothing to see"))
	assert.Equal(t, 3, eventsift.RelevanceScore("CONCERT tickets at the Venue"))
	assert.Equal(t, 1, eventsift.RelevanceScore("show show show"))
}
