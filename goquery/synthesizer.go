package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/eventsift"
	"golang.org/x/net/html"
)

// Ensure Synthesizer implements eventsift.SelectorSynthesizer at compile time.
var _ eventsift.SelectorSynthesizer = (*Synthesizer)(nil)

// Synthesizer proposes locators for event fields by matching a pattern table
// against page structure.
type Synthesizer struct {
	patterns []eventsift.FieldPatterns
}

// NewSynthesizer creates a Synthesizer using eventsift.DefaultSelectorPatterns.
func NewSynthesizer() *Synthesizer {
	return NewSynthesizerWithPatterns(eventsift.DefaultSelectorPatterns())
}

// NewSynthesizerWithPatterns creates a Synthesizer with a custom pattern table.
func NewSynthesizerWithPatterns(patterns []eventsift.FieldPatterns) *Synthesizer {
	return &Synthesizer{patterns: patterns}
}

// Synthesize returns a locator for each field whose patterns match. For each
// field the patterns are tried in order and the first matching element in
// document order wins. Unparseable HTML yields an empty map.
func (s *Synthesizer) Synthesize(page string) eventsift.SelectorMap {
	selectors := make(eventsift.SelectorMap)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return selectors
	}

	for _, fp := range s.patterns {
		for _, p := range fp.Patterns {
			if nodes := matchPattern(doc, p); len(nodes) > 0 {
				selectors[fp.Field] = locator(nodes[0])
				break
			}
		}
	}
	return selectors
}

// matchPattern returns the elements matching p in document order.
func matchPattern(doc *goquery.Document, p eventsift.SelectorPattern) []*html.Node {
	switch {
	case p.Tag != "" && len(p.ClassContains) > 0:
		return doc.Find(p.Tag).FilterFunction(classFilter(p.ClassContains)).Nodes
	case len(p.ClassContains) > 0:
		return doc.Find("[class]").FilterFunction(classFilter(p.ClassContains)).Nodes
	case p.TextPattern != nil:
		var nodes []*html.Node
		for _, root := range doc.Nodes {
			collectTextParents(root, p.TextPattern, &nodes)
		}
		return nodes
	case p.Tag != "":
		return doc.Find(p.Tag).Nodes
	}
	return nil
}

func classFilter(substrings []string) func(int, *goquery.Selection) bool {
	return func(_ int, sel *goquery.Selection) bool {
		class := strings.ToLower(strings.Join(strings.Fields(sel.AttrOr("class", "")), " "))
		for _, sub := range substrings {
			if strings.Contains(class, sub) {
				return true
			}
		}
		return false
	}
}

// collectTextParents appends the parent element of every visible text node
// under n matching re.
func collectTextParents(n *html.Node, re *regexp.Regexp, out *[]*html.Node) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		if n.Parent != nil && n.Parent.Type == html.ElementNode && re.MatchString(n.Data) {
			*out = append(*out, n.Parent)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTextParents(c, re, out)
	}
}

// locator derives "#id", ".c1.c2" or the bare tag name for an element.
func locator(n *html.Node) string {
	var id, class string
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			id = strings.TrimSpace(a.Val)
		case "class":
			class = a.Val
		}
	}
	if id != "" {
		return "#" + id
	}
	if classes := strings.Fields(class); len(classes) > 0 {
		return "." + strings.Join(classes, ".")
	}
	return n.Data
}
