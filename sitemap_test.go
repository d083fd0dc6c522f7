package eventsift_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/eventsift"
	"github.com/stretchr/testify/assert"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("nil filter passes everything", func(t *testing.T) {
		t.Parallel()

		var f *eventsift.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})

	t.Run("include and exclude patterns", func(t *testing.T) {
		t.Parallel()

		f := &eventsift.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/events/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/archive/`)},
		}

		assert.True(t, f.Match("https://example.com/events/jazz"))
		assert.False(t, f.Match("https://example.com/blog/jazz"))
		assert.False(t, f.Match("https://example.com/events/archive/2019"))
	})
}
