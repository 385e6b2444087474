package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/logger"
	"github.com/handsomefox/cinestream/internal/notify"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]byte, error) { return nil, errors.New("unreachable") }

func catalogDoc(n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		genre := "Comedy"
		if i%2 == 1 {
			genre = "Action"
		}
		fmt.Fprintf(&b, `{"id": %d, "title": "Movie %d", "genre": %q, "rating": %.1f, "year": %d, "poster_small": "s%d.jpg"}`,
			i, i, genre, float64(i%10)+0.5, 2000+i%3, i)
	}
	b.WriteString("]")
	return b.String()
}

func newRouter(t *testing.T, src catalog.Source, load bool) (http.Handler, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	loader, err := catalog.NewLoader(catalog.LoaderConfig{Source: src, Notifier: rec, Logger: logger.Discard()})
	require.NoError(t, err)
	if load {
		_ = loader.Load(context.Background())
	}

	h, err := New(&Config{Loader: loader, Notices: rec})
	require.NoError(t, err)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, rec
}

func loadedRouter(t *testing.T, n int) http.Handler {
	t.Helper()
	fsys := fstest.MapFS{"movies.json": {Data: []byte(catalogDoc(n))}}
	r, _ := newRouter(t, catalog.NewFileSource(fsys, "movies.json"), true)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestNew_RequiresLoader(t *testing.T) {
	_, err := New(&Config{})
	require.Error(t, err)
}

func TestGetMovies_Window(t *testing.T) {
	r := loadedRouter(t, 25)

	rr := do(t, r, http.MethodGet, "/api/movies")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[listResponse](t, rr)
	assert.Len(t, page.Movies, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 10, page.Visible)
	assert.True(t, page.HasMore)
	assert.Equal(t, "1", page.Movies[0].ID)
	assert.Equal(t, "s1.jpg", page.Movies[0].Images.Card)

	var visible []int
	v := 10
	for i := 0; i < 3; i++ {
		rr = do(t, r, http.MethodGet, fmt.Sprintf("/api/movies/more?visible=%d", v))
		require.Equal(t, http.StatusOK, rr.Code)
		page = decode[listResponse](t, rr)
		v = page.Visible
		visible = append(visible, v)
	}
	assert.Equal(t, []int{20, 25, 25}, visible)
	assert.Len(t, page.Movies, 25)
	assert.False(t, page.HasMore)
}

func TestGetMovies_Filtered(t *testing.T) {
	r := loadedRouter(t, 25)

	rr := do(t, r, http.MethodGet, "/api/movies?genre=Action&visible=30")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[listResponse](t, rr)
	assert.Equal(t, 13, page.Total)
	assert.Len(t, page.Movies, 13)
	assert.Equal(t, 30, page.Visible)
	for _, m := range page.Movies {
		assert.Equal(t, "Action", m.Genre)
	}
	assert.Equal(t, catalog.All, page.Criteria.Year)

	rr = do(t, r, http.MethodGet, "/api/movies?visible=abc")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetTopRatedAndFeatured(t *testing.T) {
	r := loadedRouter(t, 25)

	rr := do(t, r, http.MethodGet, "/api/movies/top-rated")
	require.Equal(t, http.StatusOK, rr.Code)
	top := decode[collectionResponse](t, rr)
	require.NotEmpty(t, top.Movies)
	assert.LessOrEqual(t, len(top.Movies), catalog.TopRatedLimit)
	for i, m := range top.Movies {
		assert.GreaterOrEqual(t, m.Rating, catalog.TopRatedThreshold)
		if i > 0 {
			assert.GreaterOrEqual(t, top.Movies[i-1].Rating, m.Rating)
		}
	}

	rr = do(t, r, http.MethodGet, "/api/movies/featured")
	featured := decode[collectionResponse](t, rr)
	assert.Len(t, featured.Movies, catalog.FeaturedLimit)
}

func TestGetMovie(t *testing.T) {
	r := loadedRouter(t, 3)

	rr := do(t, r, http.MethodGet, "/api/movies/2")
	require.Equal(t, http.StatusOK, rr.Code)
	m := decode[movieResponse](t, rr)
	assert.Equal(t, "Movie 2", m.Title)

	rr = do(t, r, http.MethodGet, "/api/movies/99")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", decode[errorResponse](t, rr).Error)
}

func TestGetFilters(t *testing.T) {
	r := loadedRouter(t, 4)

	rr := do(t, r, http.MethodGet, "/api/filters")
	require.Equal(t, http.StatusOK, rr.Code)
	f := decode[filtersResponse](t, rr)
	assert.Equal(t, []string{catalog.All, "Action", "Comedy"}, f.Genres)
	assert.Equal(t, []string{catalog.All, "2001", "2002", "2000"}, f.Years)
	assert.Equal(t, catalog.QuickGenres, f.QuickGenres)
}

func TestSession_Welcome(t *testing.T) {
	r := loadedRouter(t, 2)

	rr := do(t, r, http.MethodGet, "/api/session")
	require.Equal(t, http.StatusOK, rr.Code)
	s := decode[sessionResponse](t, rr)
	assert.True(t, s.Loaded)
	assert.Equal(t, 2, s.Count)
	assert.True(t, s.ShowWelcome)
	require.NotNil(t, s.Welcome)
	assert.Equal(t, notify.Success, s.Welcome.Kind)
	assert.Empty(t, s.Notices)

	rr = do(t, r, http.MethodPost, "/api/session/welcome")
	require.Equal(t, http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, welcomeCookieName, cookies[0].Name)
	assert.Zero(t, cookies[0].MaxAge)

	rr = do(t, r, http.MethodGet, "/api/session", cookies[0])
	s = decode[sessionResponse](t, rr)
	assert.False(t, s.ShowWelcome)
	assert.Nil(t, s.Welcome)
}

func TestSession_FailedLoad(t *testing.T) {
	r, rec := newRouter(t, failingSource{}, true)

	rr := do(t, r, http.MethodGet, "/api/session")
	s := decode[sessionResponse](t, rr)
	assert.False(t, s.Loading)
	assert.False(t, s.Loaded)
	assert.NotEmpty(t, s.Error)
	assert.False(t, s.ShowWelcome)
	require.Len(t, s.Notices, 1)
	assert.Equal(t, notify.Failure, s.Notices[0].Kind)
	assert.Equal(t, 1, rec.Count(notify.Failure))

	rr = do(t, r, http.MethodGet, "/api/movies")
	page := decode[listResponse](t, rr)
	assert.Empty(t, page.Movies)
	assert.NotNil(t, page.Movies)
	assert.Zero(t, page.Total)

	rr = do(t, r, http.MethodGet, "/api/movies/featured")
	featured := decode[collectionResponse](t, rr)
	require.Len(t, featured.Movies, 1)
	assert.Equal(t, catalog.Spotlight.Title, featured.Movies[0].Title)
}

func TestWhileLoading(t *testing.T) {
	r, _ := newRouter(t, failingSource{}, false)

	page := decode[listResponse](t, do(t, r, http.MethodGet, "/api/movies"))
	assert.True(t, page.Loading)
	assert.Empty(t, page.Movies)

	s := decode[sessionResponse](t, do(t, r, http.MethodGet, "/api/session"))
	assert.True(t, s.Loading)
	assert.False(t, s.ShowWelcome)

	rr := do(t, r, http.MethodGet, "/api/movies/1")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSPA(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":  {Data: []byte("<html>cinestream</html>")},
		"movies.json": {Data: []byte("[]")},
		"app.css":     {Data: []byte("body{}")},
	}
	spa, err := SPA(fsys)
	require.NoError(t, err)

	rr := do(t, spa, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cinestream")

	rr = do(t, spa, http.MethodGet, "/some/deep/link")
	assert.Contains(t, rr.Body.String(), "cinestream")

	rr = do(t, spa, http.MethodGet, "/movies.json")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	rr = do(t, spa, http.MethodGet, "/missing.js")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	_, err = SPA(fstest.MapFS{})
	require.Error(t, err)
}

func TestCatalogDocument(t *testing.T) {
	rr := do(t, CatalogDocument("https://cdn.example.com/movies.json"), http.MethodGet, "/movies.json")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://cdn.example.com/movies.json", rr.Header().Get("Location"))
}

func TestRateLimit(t *testing.T) {
	fsys := fstest.MapFS{"movies.json": {Data: []byte(catalogDoc(1))}}
	loader, err := catalog.NewLoader(catalog.LoaderConfig{Source: catalog.NewFileSource(fsys, "movies.json"), Logger: logger.Discard()})
	require.NoError(t, err)
	require.NoError(t, loader.Load(context.Background()))

	h, err := New(&Config{Loader: loader, RateLimitRequests: 2, RateLimitWindow: time.Minute})
	require.NoError(t, err)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, r, http.MethodGet, "/api/filters").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
