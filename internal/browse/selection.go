package browse

import "github.com/handsomefox/cinestream/internal/catalog"

// Selection is either empty or holds the movie shown in the detail view.
type Selection struct {
	movie  catalog.Movie
	active bool
}

func (s *Selection) Select(m catalog.Movie) {
	s.movie = m
	s.active = true
}

func (s *Selection) Close() {
	s.movie = catalog.Movie{}
	s.active = false
}

func (s Selection) Active() (catalog.Movie, bool) {
	return s.movie, s.active
}
