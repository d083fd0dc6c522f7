package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/eventsift"
)

// ApplySelectors reads the text of the first element at each locator.
// Locators that match nothing, including unparseable ones, or match only
// whitespace are omitted.
func ApplySelectors(page string, selectors eventsift.SelectorMap) (map[eventsift.Field]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, eventsift.Errorf(eventsift.EINVALID, "failed to parse HTML: %v", err)
	}

	values := make(map[eventsift.Field]string, len(selectors))
	for field, loc := range selectors {
		if loc == "" {
			continue
		}
		text := strings.Join(strings.Fields(doc.Find(loc).First().Text()), " ")
		if text != "" {
			values[field] = text
		}
	}
	return values, nil
}
