package browse

import "github.com/handsomefox/cinestream/internal/catalog"

// Session is the browse state of a single viewer. It is not safe for
// concurrent use; a UI drives it from its event loop.
type Session struct {
	catalog catalog.Catalog
	loading bool
	err     error

	criteria  catalog.Criteria
	window    Window
	selection Selection

	Hero     Carousel
	TopRated Carousel

	movies   []catalog.Movie
	filtered []catalog.Movie
	topRated []catalog.Movie
	featured []catalog.Movie
	options  catalog.FilterOptions
}

func NewSession() *Session {
	s := &Session{
		catalog:  catalog.New(nil),
		loading:  true,
		criteria: catalog.AllCriteria(),
		window:   NewWindow(),
	}
	s.derive()
	return s
}

// Apply installs a loader state. Derived views are recomputed once here so
// the per-event accessors stay cheap.
func (s *Session) Apply(st catalog.State) {
	s.catalog = st.Catalog
	s.loading = st.Loading
	s.err = st.Err
	s.derive()
	if m, ok := s.selection.Active(); ok {
		if _, found := s.catalog.ByID(m.ID); !found {
			s.selection.Close()
		}
	}
}

func (s *Session) derive() {
	s.movies = s.catalog.Movies()
	s.filtered = catalog.Filter(s.movies, s.criteria)
	s.topRated = catalog.TopRated(s.movies)
	s.featured = catalog.Featured(s.movies)
	s.options = catalog.Options(s.movies)
	s.Hero.Resize(len(s.featured))
	s.TopRated.Resize(len(s.topRated))
}

func (s *Session) Loading() bool { return s.loading }
func (s *Session) Err() error    { return s.err }

// Loaded reports a settled, successful load.
func (s *Session) Loaded() bool { return !s.loading && s.err == nil }

func (s *Session) Catalog() catalog.Catalog { return s.catalog }

func (s *Session) Criteria() catalog.Criteria { return s.criteria }

// SetCriteria replaces the filter. The window is kept as is; Visible clamps it.
func (s *Session) SetCriteria(c catalog.Criteria) {
	s.criteria = c.Normalize()
	s.filtered = catalog.Filter(s.movies, s.criteria)
}

func (s *Session) Filtered() []catalog.Movie { return s.filtered }

func (s *Session) Visible() []catalog.Movie { return s.window.Slice(s.filtered) }

func (s *Session) Window() Window { return s.window }

func (s *Session) HasMore() bool { return s.window.HasMore(len(s.filtered)) }

func (s *Session) LoadMore() { s.window.LoadMore(len(s.filtered)) }

func (s *Session) TopRatedMovies() []catalog.Movie { return s.topRated }

func (s *Session) Featured() []catalog.Movie { return s.featured }

// HeroMovie is the current hero slide, or the spotlight for an empty catalog.
func (s *Session) HeroMovie() catalog.Movie {
	if len(s.featured) == 0 {
		return catalog.Spotlight
	}
	return s.featured[s.Hero.Index()]
}

func (s *Session) Options() catalog.FilterOptions { return s.options }

// Select activates the movie with id. Ids outside the catalog are rejected.
func (s *Session) Select(id string) bool {
	m, ok := s.catalog.ByID(id)
	if !ok {
		return false
	}
	s.selection.Select(m)
	return true
}

func (s *Session) Close() { s.selection.Close() }

func (s *Session) Active() (catalog.Movie, bool) { return s.selection.Active() }
