package eventsift

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	namePrefix      = regexp.MustCompile(`(?i)^(?:event|festival)\s*:\s*`)
	weekdayPrefix   = regexp.MustCompile(`(?i)^(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)[,\s]*`)
	clockTime       = regexp.MustCompile(`(?i)(?:\s*,|\s+at|\s*@)?\s*\b(\d{1,2})(?::([0-5]\d))?\s*([ap])\.?m\b\.?`)
	atBeforeTime    = regexp.MustCompile(`(?i)\s+(?:at|@)\s+(\d)`)
	ordinalSuffix   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	pricePattern    = regexp.MustCompile(`\$?(\d+(?:\.\d{2})?)`)
	boilerplateText = regexp.MustCompile(`(?i)(?:click here|read more|learn more)`)
	artistSeparator = regexp.MustCompile(`[,;&]`)
)

// Length limits applied by the cleaners. Truncated text gets an ellipsis.
const (
	maxDescriptionLength         = 500
	maxFallbackDescriptionLength = 400
	maxArtists                   = 5
	ellipsis                     = "..."
)

// isoLayout matches the ISO-8601 form emitted for parsed dates.
const isoLayout = "2006-01-02T15:04:05"

// StateNames are the full state names recognized by ParseVenue in addition
// to short codes. The list is intentionally small.
var StateNames = []string{"california", "texas", "florida", "new york", "illinois"}

// freeMarkers mark a price as free.
var freeMarkers = []string{"free", "no charge", "complimentary"}

// collapseWhitespace trims s and replaces internal whitespace runs with a
// single space.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// truncateRunes cuts s to max characters and appends an ellipsis when s is
// longer than max.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + ellipsis
}

// CleanName collapses whitespace and strips a leading "event:" or
// "festival:" label.
func CleanName(name string) string {
	name = collapseWhitespace(name)
	return namePrefix.ReplaceAllString(name, "")
}

// CleanDate strips a leading weekday and parses the rest as a date. Parsed
// dates are returned in ISO-8601 form; anything unparseable is returned
// trimmed but otherwise unchanged.
func CleanDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	t, ok := parseDate(weekdayPrefix.ReplaceAllString(date, ""))
	if !ok {
		return date
	}
	if _, offset := t.Zone(); offset != 0 {
		return t.Format(isoLayout + "-07:00")
	}
	return t.Format(isoLayout)
}

// parseDate parses s as a calendar date with an optional time of day. A
// 12-hour clock time ("7pm", "8:30 p.m.") is taken out and applied to the
// parsed day. Dates without a year do not parse.
func parseDate(s string) (time.Time, bool) {
	hour, minute, hasClock := -1, 0, false
	if m := clockTime.FindStringSubmatchIndex(s); m != nil {
		h, _ := strconv.Atoi(s[m[2]:m[3]])
		if m[4] >= 0 {
			minute, _ = strconv.Atoi(s[m[4]:m[5]])
		}
		if h < 1 || h > 12 {
			return time.Time{}, false
		}
		hour = h % 12
		if strings.EqualFold(s[m[6]:m[7]], "p") {
			hour += 12
		}
		hasClock = true
		s = s[:m[0]] + s[m[1]:]
	}
	s = atBeforeTime.ReplaceAllString(s, " $1")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.TrimRight(strings.TrimSpace(s), ",")

	t, ok := parseDateString(s)
	if !ok || t.Year() == 0 {
		return time.Time{}, false
	}
	if hasClock {
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
			return time.Time{}, false
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	}
	return t, true
}

func parseDateString(s string) (t time.Time, ok bool) {
	// dateparse panics on a handful of malformed inputs.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Location is the venue, city and state parsed from a venue answer.
type Location struct {
	Venue string
	City  string
	State string
}

// ParseVenue splits "Venue, City, State" into its parts. The state is only
// set when there are at least three parts and the last one is a short code
// (three characters or fewer) or contains one of StateNames.
func ParseVenue(s string) Location {
	var loc Location
	if strings.TrimSpace(s) == "" {
		return loc
	}

	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	loc.Venue = parts[0]
	if len(parts) >= 2 {
		loc.City = parts[1]
	}
	if len(parts) >= 3 {
		last := parts[len(parts)-1]
		if utf8.RuneCountInString(last) <= 3 || isStateName(last) {
			loc.State = last
		}
	}
	return loc
}

func isStateName(s string) bool {
	lower := strings.ToLower(s)
	for _, name := range StateNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// CleanPrice returns 0 for free events, the first dollar amount in s
// otherwise, or nil if s holds no price.
func CleanPrice(s string) *float64 {
	lower := strings.ToLower(s)
	for _, marker := range freeMarkers {
		if strings.Contains(lower, marker) {
			free := 0.0
			return &free
		}
	}

	m := pricePattern.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// CleanDescription collapses whitespace, removes link boilerplate such as
// "read more", and limits the result to 500 characters.
func CleanDescription(desc string) string {
	desc = collapseWhitespace(desc)
	desc = collapseWhitespace(boilerplateText.ReplaceAllString(desc, ""))
	return truncateRunes(desc, maxDescriptionLength)
}

// CleanArtists splits a performer list on ',', ';' and '&', drops
// single-character entries and keeps at most five names.
func CleanArtists(s string) string {
	s = collapseWhitespace(s)

	var artists []string
	for _, a := range artistSeparator.Split(s, -1) {
		a = strings.TrimSpace(a)
		if utf8.RuneCountInString(a) <= 1 {
			continue
		}
		artists = append(artists, a)
		if len(artists) == maxArtists {
			break
		}
	}
	return strings.Join(artists, ", ")
}

// descriptionKeywords mark a sentence as descriptive for DescriptionFromText.
var descriptionKeywords = []string{"festival", "event", "experience", "enjoy", "celebrate", "featuring"}

// DescriptionFromText builds a description from the first three sentences of
// text that are longer than 50 characters and mention an event-related word.
// The result is limited to 400 characters.
func DescriptionFromText(text string) string {
	var picked []string
	for _, s := range SplitSentences(text) {
		if utf8.RuneCountInString(s) <= 50 || !containsAny(strings.ToLower(s), descriptionKeywords) {
			continue
		}
		picked = append(picked, s)
		if len(picked) == 3 {
			break
		}
	}
	if len(picked) == 0 {
		return ""
	}
	return truncateRunes(strings.Join(picked, ". "), maxFallbackDescriptionLength)
}

// SourceSite returns the host of rawURL, or the empty string if it cannot be
// parsed.
func SourceSite(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
