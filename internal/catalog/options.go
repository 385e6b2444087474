package catalog

import "strings"

// QuickGenres is the fixed genre tab bar.
var QuickGenres = []string{All, "Action", "Comedy", "Drama", "Thriller", "Sci-Fi"}

// MaxYearOptions caps the year choices, All included.
const MaxYearOptions = 8

// FilterOptions lists the selectable values per criterion, each led by All.
type FilterOptions struct {
	Genres     []string `json:"genres"`
	Years      []string `json:"years"`
	Languages  []string `json:"languages"`
	Categories []string `json:"categories"`
}

// Options collects distinct values in first-seen order.
func Options(movies []Movie) FilterOptions {
	genres := newDistinct()
	years := newDistinct()
	languages := newDistinct()
	categories := newDistinct()

	for i := range movies {
		m := &movies[i]
		for _, g := range m.Genres {
			genres.add(g)
		}
		years.add(m.Year())
		languages.add(m.Language)
		categories.add(m.Category)
	}

	yearList := years.list()
	if len(yearList) > MaxYearOptions {
		yearList = yearList[:MaxYearOptions]
	}

	return FilterOptions{
		Genres:     genres.list(),
		Years:      yearList,
		Languages:  languages.list(),
		Categories: categories.list(),
	}
}

type distinct struct {
	seen  map[string]struct{}
	order []string
}

func newDistinct() *distinct {
	return &distinct{seen: map[string]struct{}{}, order: []string{All}}
}

func (d *distinct) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == All {
		return
	}
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.order = append(d.order, v)
}

func (d *distinct) list() []string { return d.order }
