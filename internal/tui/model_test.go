package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handsomefox/cinestream/internal/browse"
	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/logger"
	"github.com/handsomefox/cinestream/internal/notify"
)

type sourceFunc func(context.Context) ([]byte, error)

func (f sourceFunc) Fetch(ctx context.Context) ([]byte, error) { return f(ctx) }

func moviesDoc(n int) []byte {
	var parts []string
	for i := 1; i <= n; i++ {
		genre := "Drama"
		if i%3 == 0 {
			genre = "Action"
		}
		parts = append(parts, fmt.Sprintf(
			`{"id": "m%d", "title": "Film %d", "genre": %q, "rating": %.1f, "released_date": "20%02d-01-01", "language": "English"}`,
			i, i, genre, 7.0+float64(i%4)*0.5, 10+i%2))
	}
	return []byte("[" + strings.Join(parts, ",") + "]")
}

func newModel(t *testing.T, src catalog.Source) (*Model, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	loader, err := catalog.NewLoader(catalog.LoaderConfig{Source: src, Notifier: rec, Logger: logger.Discard()})
	require.NoError(t, err)
	m, err := New(context.Background(), Config{Loader: loader, Notices: rec})
	require.NoError(t, err)
	return m, rec
}

func loaded(t *testing.T, n int) *Model {
	t.Helper()
	fsys := fstest.MapFS{"movies.json": {Data: moviesDoc(n)}}
	m, _ := newModel(t, catalog.NewFileSource(fsys, "movies.json"))
	msg := m.load()()
	m.Update(msg)
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestNew_RequiresLoader(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}

func TestModel_LoadingThenLoaded(t *testing.T) {
	fsys := fstest.MapFS{"movies.json": {Data: moviesDoc(25)}}
	m, _ := newModel(t, catalog.NewFileSource(fsys, "movies.json"))

	assert.True(t, m.Session().Loading())
	assert.Contains(t, m.View(), "Loading movies")

	_, cmd := m.Update(m.load()())
	assert.NotNil(t, cmd, "welcome should be scheduled")
	assert.True(t, m.Session().Loaded())
	assert.Len(t, m.Session().Visible(), browse.PageSize)

	_, hasToast := m.Toast()
	assert.False(t, hasToast, "a successful load is silent until the welcome fires")

	view := m.View()
	assert.Contains(t, view, "Film 1")
	assert.Contains(t, view, "Showing 10 of 25")
}

func TestModel_Welcome(t *testing.T) {
	m := loaded(t, 3)

	m.Update(welcomeMsg{})
	toast, ok := m.Toast()
	require.True(t, ok)
	assert.Equal(t, notify.Success, toast.Kind)
	assert.True(t, m.marker.Seen())

	m.Update(toastDoneMsg{id: toast.ID})
	_, ok = m.Toast()
	assert.False(t, ok)

	// Already seen: a second welcome is a no-op.
	m.Update(welcomeMsg{})
	_, ok = m.Toast()
	assert.False(t, ok)
}

func TestModel_FailedLoad(t *testing.T) {
	m, rec := newModel(t, sourceFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("offline")
	}))

	m.Update(m.load()())
	assert.False(t, m.Session().Loading())
	assert.Error(t, m.Session().Err())
	assert.Equal(t, 1, rec.Count(notify.Failure))

	toast, ok := m.Toast()
	require.True(t, ok)
	assert.Equal(t, notify.Failure, toast.Kind)

	m.Update(welcomeMsg{})
	toast, _ = m.Toast()
	assert.Equal(t, notify.Failure, toast.Kind, "no welcome after a failed load")

	assert.Contains(t, m.View(), "Cinematic Spotlight")
}

func TestModel_LoadMore(t *testing.T) {
	m := loaded(t, 25)

	var counts []int
	for i := 0; i < 3; i++ {
		press(m, "m")
		counts = append(counts, len(m.Session().Visible()))
	}
	assert.Equal(t, []int{20, 25, 25}, counts)
	assert.False(t, m.Session().HasMore())
}

func TestModel_Filters(t *testing.T) {
	m := loaded(t, 9)

	press(m, "tab")
	assert.Equal(t, "Action", m.Session().Criteria().Genre)
	assert.Len(t, m.Session().Filtered(), 3)

	press(m, "shift+tab")
	assert.Equal(t, catalog.All, m.Session().Criteria().Genre)

	press(m, "y")
	year := m.Session().Criteria().Year
	assert.NotEqual(t, catalog.All, year)
	for _, mv := range m.Session().Filtered() {
		assert.Equal(t, year, mv.Year())
	}

	press(m, "r")
	assert.Equal(t, catalog.AllCriteria(), m.Session().Criteria())
	assert.Len(t, m.Session().Filtered(), 9)
}

func TestModel_DetailSelection(t *testing.T) {
	m := loaded(t, 5)

	press(m, "right", "enter")
	active, ok := m.Session().Active()
	require.True(t, ok)
	assert.Equal(t, "m2", active.ID)
	assert.Contains(t, m.View(), "esc to close")

	// Grid keys are ignored while the detail is open.
	press(m, "m")
	press(m, "esc")
	_, ok = m.Session().Active()
	assert.False(t, ok)
}

func TestModel_CursorClamped(t *testing.T) {
	m := loaded(t, 3)

	press(m, "down", "down", "right", "right")
	assert.Equal(t, 2, m.Cursor())

	press(m, "tab")
	assert.Equal(t, 0, m.Cursor(), "one Action movie left")
}

func TestModel_Carousels(t *testing.T) {
	m := loaded(t, 8)
	require.Equal(t, catalog.FeaturedLimit, m.Session().Hero.Len())

	m.Update(heroTickMsg{})
	assert.Equal(t, 1, m.Session().Hero.Index())
	press(m, "[", "[")
	assert.Equal(t, catalog.FeaturedLimit-1, m.Session().Hero.Index())

	top := m.Session().TopRated.Len()
	require.Positive(t, top)
	for i := 0; i < top; i++ {
		m.Update(topTickMsg{})
	}
	assert.Equal(t, 0, m.Session().TopRated.Index())
}

func TestModel_IgnoresMessagesAfterQuit(t *testing.T) {
	fsys := fstest.MapFS{"movies.json": {Data: moviesDoc(3)}}
	m, _ := newModel(t, catalog.NewFileSource(fsys, "movies.json"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	m.Update(m.load()())
	assert.True(t, m.Session().Loading())
	assert.Empty(t, m.View())
}

func TestCycle(t *testing.T) {
	opts := []string{catalog.All, "a", "b"}
	assert.Equal(t, "a", cycle(opts, catalog.All, 1))
	assert.Equal(t, catalog.All, cycle(opts, "b", 1))
	assert.Equal(t, "b", cycle(opts, catalog.All, -1))
	assert.Equal(t, catalog.All, cycle(opts, "zzz", 1))
	assert.Equal(t, catalog.All, cycle(nil, "a", 1))
}
