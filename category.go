package eventsift

import "strings"

// Canonical event categories.
const (
	CategoryMusic      = "music_festival"
	CategoryFood       = "food_festival"
	CategoryArt        = "art_festival"
	CategoryCultural   = "cultural_festival"
	CategoryOutdoor    = "outdoor_festival"
	CategoryTechnology = "technology_conference"
	CategoryGeneral    = "general"
)

// KeywordMapping maps a keyword to a canonical category.
type KeywordMapping struct {
	Keyword  string
	Category string
}

// CategoryMappings is the ordered table used by CleanCategory. The first
// keyword contained in the answer wins.
var CategoryMappings = []KeywordMapping{
	{Keyword: "music", Category: CategoryMusic},
	{Keyword: "food", Category: CategoryFood},
	{Keyword: "art", Category: CategoryArt},
	{Keyword: "culture", Category: CategoryCultural},
	{Keyword: "tech", Category: CategoryTechnology},
}

// CleanCategory maps a free-text event type to a canonical category.
// Unmatched input is lowercased with spaces replaced by underscores.
func CleanCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return ""
	}
	for _, m := range CategoryMappings {
		if strings.Contains(category, m.Keyword) {
			return m.Category
		}
	}
	return strings.ReplaceAll(category, " ", "_")
}

// CategoryRule assigns a category when any of its keywords occur.
type CategoryRule struct {
	Category string
	Keywords []string
}

// CategoryRules is the ordered table used by AssignCategory.
var CategoryRules = []CategoryRule{
	{Category: CategoryMusic, Keywords: []string{"music", "concert", "band", "singer"}},
	{Category: CategoryFood, Keywords: []string{"food", "culinary", "taste", "chef"}},
	{Category: CategoryArt, Keywords: []string{"art", "gallery", "artist", "painting"}},
	{Category: CategoryCultural, Keywords: []string{"cultural", "heritage", "tradition"}},
	{Category: CategoryOutdoor, Keywords: []string{"outdoor", "park", "nature"}},
}

// Categories lists every category AssignCategory can return, in table order.
func Categories() []string {
	categories := make([]string, 0, len(CategoryRules)+1)
	for _, r := range CategoryRules {
		categories = append(categories, r.Category)
	}
	return append(categories, CategoryGeneral)
}

// AssignCategory guesses a category from the event's name and description,
// returning CategoryGeneral when no rule matches.
func AssignCategory(e *Event) string {
	text := strings.ToLower(e.Name + " " + e.Description)
	for _, r := range CategoryRules {
		if containsAny(text, r.Keywords) {
			return r.Category
		}
	}
	return CategoryGeneral
}

// PopularityScore rates how complete and attractive an event listing is, in
// [0, 1].
func PopularityScore(e *Event) float64 {
	score := 0.5
	if len(e.Description) > 50 {
		score += 0.2
	}
	if e.Venue != "" {
		score += 0.1
	}
	if e.Price != nil {
		score += 0.1
		if *e.Price == 0 {
			score += 0.1
		}
	}
	return min(score, 1.0)
}
