package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/eventsift"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements eventsift.Normalizer at compile time.
var _ eventsift.Normalizer = (*Normalizer)(nil)

// DefaultStripTags lists the elements whose subtrees never carry event
// content.
var DefaultStripTags = []string{"script", "style", "nav", "footer", "header"}

// Normalizer reduces HTML to whitespace-collapsed visible text.
type Normalizer struct {
	strip string
}

// NewNormalizer creates a Normalizer that removes the given tags before
// extracting text. With no tags, DefaultStripTags is used.
func NewNormalizer(tags ...string) *Normalizer {
	if len(tags) == 0 {
		tags = DefaultStripTags
	}
	return &Normalizer{strip: strings.Join(tags, ", ")}
}

// Normalize strips noise subtrees and returns the remaining text nodes in
// document order joined by single spaces.
func (n *Normalizer) Normalize(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	doc.Find(n.strip).Remove()

	var b strings.Builder
	for _, node := range doc.Nodes {
		writeText(&b, node)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// writeText appends every text node under n, each followed by a space.
func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
