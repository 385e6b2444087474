package catalog

import (
	"net/url"
	"strings"
)

// All is the criterion value meaning "no filter".
const All = "All"

// Criteria are the user-selected filter values. A blank field or All leaves
// that field unfiltered.
type Criteria struct {
	Genre    string `json:"genre"`
	Year     string `json:"year"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// AllCriteria matches every movie.
func AllCriteria() Criteria {
	return Criteria{Genre: All, Year: All, Language: All, Category: All}
}

// ParseCriteria reads genre, year, language and category from a query string.
func ParseCriteria(q url.Values) Criteria {
	return Criteria{
		Genre:    strings.TrimSpace(q.Get("genre")),
		Year:     strings.TrimSpace(q.Get("year")),
		Language: strings.TrimSpace(q.Get("language")),
		Category: strings.TrimSpace(q.Get("category")),
	}.Normalize()
}

// Normalize replaces blank fields with All.
func (c Criteria) Normalize() Criteria {
	c.Genre = orAll(c.Genre)
	c.Year = orAll(c.Year)
	c.Language = orAll(c.Language)
	c.Category = orAll(c.Category)
	return c
}

// Active reports whether any field filters.
func (c Criteria) Active() bool {
	return isSet(c.Genre) || isSet(c.Year) || isSet(c.Language) || isSet(c.Category)
}

// Matches reports whether m passes every active field.
func (c Criteria) Matches(m *Movie) bool {
	if isSet(c.Genre) && !matchGenre(m, c.Genre) {
		return false
	}
	if isSet(c.Year) && m.Year() != c.Year {
		return false
	}
	if isSet(c.Language) && (m.Language == "" || m.Language != c.Language) {
		return false
	}
	if isSet(c.Category) && (m.Category == "" || m.Category != c.Category) {
		return false
	}
	return true
}

// Filter returns the movies matching c, keeping catalog order.
func Filter(movies []Movie, c Criteria) []Movie {
	if !c.Active() {
		return append([]Movie(nil), movies...)
	}
	out := make([]Movie, 0, len(movies))
	for i := range movies {
		if c.Matches(&movies[i]) {
			out = append(out, movies[i])
		}
	}
	return out
}

func matchGenre(m *Movie, genre string) bool {
	if m.HasGenre(genre) {
		return true
	}
	return m.Genre != "" && strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre))
}

func isSet(v string) bool {
	return v != "" && v != All
}

func orAll(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return All
	}
	return v
}
