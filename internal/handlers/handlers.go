// Package handlers wires HTTP routing and API handlers.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/handsomefox/cinestream/internal/browse"
	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/notify"
)

type Handler struct {
	loader     *catalog.Loader
	notices    *notify.Recorder
	origins    []string
	rateLimit  int
	rateWindow time.Duration
}

type Config struct {
	Loader *catalog.Loader
	// Notices holds the load notices replayed to every session.
	Notices *notify.Recorder

	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type imagesResponse struct {
	Card   string `json:"card"`
	Hero   string `json:"hero"`
	Poster string `json:"poster"`
	Thumb  string `json:"thumb"`
}

type movieResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Year         string         `json:"year"`
	ReleasedDate string         `json:"released_date,omitempty"`
	Rating       float64        `json:"rating"`
	Genre        string         `json:"genre,omitempty"`
	Genres       []string       `json:"genres"`
	Language     string         `json:"language,omitempty"`
	Category     string         `json:"category,omitempty"`
	Images       imagesResponse `json:"images"`
	Description  string         `json:"description,omitempty"`
	TrailerURL   string         `json:"trailer_url,omitempty"`
	Tagline      string         `json:"tagline,omitempty"`
}

type listResponse struct {
	Movies   []movieResponse  `json:"movies"`
	Total    int              `json:"total"`
	Visible  int              `json:"visible"`
	HasMore  bool             `json:"has_more"`
	Loading  bool             `json:"loading"`
	Criteria catalog.Criteria `json:"criteria"`
}

type collectionResponse struct {
	Movies  []movieResponse `json:"movies"`
	Loading bool            `json:"loading"`
}

type filtersResponse struct {
	catalog.FilterOptions
	QuickGenres []string `json:"quick_genres"`
}

type sessionResponse struct {
	Loading     bool            `json:"loading"`
	Loaded      bool            `json:"loaded"`
	Count       int             `json:"count"`
	Error       string          `json:"error,omitempty"`
	ShowWelcome bool            `json:"show_welcome"`
	Welcome     *notify.Notice  `json:"welcome,omitempty"`
	Notices     []notify.Notice `json:"notices"`
}

func New(cfg *Config) (*Handler, error) {
	if cfg.Loader == nil {
		return nil, errors.New("catalog loader is required")
	}
	notices := cfg.Notices
	if notices == nil {
		notices = &notify.Recorder{}
	}
	return &Handler{
		loader:     cfg.Loader,
		notices:    notices,
		origins:    cfg.AllowedOrigins,
		rateLimit:  cfg.RateLimitRequests,
		rateWindow: cfg.RateLimitWindow,
	}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware(h.origins))
		r.Use(rateLimit(h.rateLimit, h.rateWindow))

		r.Method(http.MethodGet, "/session", Adapt(h.getSession))
		r.Method(http.MethodPost, "/session/welcome", Adapt(h.postSessionWelcome))
		r.Method(http.MethodGet, "/filters", Adapt(h.getFilters))

		r.Route("/movies", func(r chi.Router) {
			r.Method(http.MethodGet, "/", Adapt(h.getMovies))
			r.Method(http.MethodGet, "/more", Adapt(h.getMoreMovies))
			r.Method(http.MethodGet, "/top-rated", Adapt(h.getTopRated))
			r.Method(http.MethodGet, "/featured", Adapt(h.getFeatured))
			r.Method(http.MethodGet, "/{id}", Adapt(h.getMovie))
		})
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) error {
	st := h.loader.Snapshot()
	loaded := !st.Loading && st.Err == nil

	resp := &sessionResponse{
		Loading: st.Loading,
		Loaded:  loaded,
		Count:   st.Catalog.Len(),
		Notices: orEmpty(h.notices.Notices()),
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	if browse.ShouldWelcome(cookieMarker{w: w, r: r}, loaded) {
		welcome := browse.WelcomeNotice()
		resp.ShowWelcome = true
		resp.Welcome = &welcome
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) postSessionWelcome(w http.ResponseWriter, r *http.Request) error {
	cookieMarker{w: w, r: r}.MarkSeen()
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) getFilters(w http.ResponseWriter, r *http.Request) error {
	st := h.loader.Snapshot()
	writeJSON(w, http.StatusOK, &filtersResponse{
		FilterOptions: catalog.Options(st.Catalog.Movies()),
		QuickGenres:   catalog.QuickGenres,
	})
	return nil
}

func (h *Handler) getMovies(w http.ResponseWriter, r *http.Request) error {
	return h.writeWindow(w, r, false)
}

func (h *Handler) getMoreMovies(w http.ResponseWriter, r *http.Request) error {
	return h.writeWindow(w, r, true)
}

func (h *Handler) writeWindow(w http.ResponseWriter, r *http.Request, more bool) error {
	visible, err := intQuery(r, "visible", browse.PageSize)
	if err != nil {
		return err
	}

	st := h.loader.Snapshot()
	criteria := catalog.ParseCriteria(r.URL.Query())
	filtered := catalog.Filter(st.Catalog.Movies(), criteria)

	window := browse.WindowAt(visible)
	if more {
		window.LoadMore(len(filtered))
	}

	writeJSON(w, http.StatusOK, &listResponse{
		Movies:   toMovieResponses(window.Slice(filtered)),
		Total:    len(filtered),
		Visible:  window.Count(),
		HasMore:  window.HasMore(len(filtered)),
		Loading:  st.Loading,
		Criteria: criteria,
	})
	return nil
}

func (h *Handler) getTopRated(w http.ResponseWriter, r *http.Request) error {
	st := h.loader.Snapshot()
	writeJSON(w, http.StatusOK, &collectionResponse{
		Movies:  toMovieResponses(catalog.TopRated(st.Catalog.Movies())),
		Loading: st.Loading,
	})
	return nil
}

func (h *Handler) getFeatured(w http.ResponseWriter, r *http.Request) error {
	st := h.loader.Snapshot()
	featured := catalog.Featured(st.Catalog.Movies())
	if len(featured) == 0 {
		featured = []catalog.Movie{catalog.Spotlight}
	}
	writeJSON(w, http.StatusOK, &collectionResponse{
		Movies:  toMovieResponses(featured),
		Loading: st.Loading,
	})
	return nil
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r, "id")
	if err != nil {
		return err
	}

	st := h.loader.Snapshot()
	if st.Loading {
		return unavailable("catalog loading")
	}
	movie, ok := st.Catalog.ByID(id)
	if !ok {
		return notFound("not found")
	}

	writeJSON(w, http.StatusOK, toMovieResponse(&movie))
	return nil
}

// CatalogDocument serves the raw catalog at /movies.json for sources outside
// the embedded bundle: local files are served as-is, remote ones redirect.
func CatalogDocument(location string) http.Handler {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return http.RedirectHandler(location, http.StatusFound)
	}
	path := strings.TrimPrefix(location, "file://")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		http.ServeFile(w, r, path)
	})
}

func toMovieResponse(m *catalog.Movie) movieResponse {
	return movieResponse{
		ID:           m.ID,
		Title:        m.Title,
		Year:         m.Year(),
		ReleasedDate: m.ReleasedDate,
		Rating:       m.Rating,
		Genre:        m.Genre,
		Genres:       orEmpty(m.Genres),
		Language:     m.Language,
		Category:     m.Category,
		Images: imagesResponse{
			Card:   m.Image(catalog.ImageCard),
			Hero:   m.Image(catalog.ImageHero),
			Poster: m.Image(catalog.ImagePoster),
			Thumb:  m.Image(catalog.ImageThumb),
		},
		Description: m.Description,
		TrailerURL:  m.TrailerURL,
		Tagline:     m.Tagline,
	}
}

func toMovieResponses(movies []catalog.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(movies))
	for i := range movies {
		out = append(out, toMovieResponse(&movies[i]))
	}
	return out
}
