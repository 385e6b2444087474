// Package tui is the terminal movie browser.
package tui

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handsomefox/cinestream/internal/browse"
	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/notify"
)

const (
	HeroInterval     = 2 * time.Second
	TopRatedInterval = 3 * time.Second
	gridColumns      = 2
)

type (
	loadedMsg    struct{ state catalog.State }
	heroTickMsg  struct{}
	topTickMsg   struct{}
	welcomeMsg   struct{}
	toastDoneMsg struct{ id string }
)

type Config struct {
	Loader *catalog.Loader
	// Notices receives the loader's notices; new entries become toasts.
	Notices *notify.Recorder
	// Marker defaults to a fresh MemoryMarker.
	Marker browse.Marker
	// Autoplay advances the carousels on a timer.
	Autoplay bool
}

type Model struct {
	ctx      context.Context
	loader   *catalog.Loader
	notices  *notify.Recorder
	consumed int
	marker   browse.Marker
	autoplay bool

	session *browse.Session
	cursor  int
	toast   *notify.Notice

	spinner spinner.Model
	keys    keyMap
	help    help.Model

	width    int
	height   int
	quitting bool
}

func New(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.Loader == nil {
		return nil, errors.New("catalog loader is required")
	}
	marker := cfg.Marker
	if marker == nil {
		marker = &browse.MemoryMarker{}
	}
	notices := cfg.Notices
	if notices == nil {
		notices = &notify.Recorder{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = brandStyle

	return &Model{
		ctx:      ctx,
		loader:   cfg.Loader,
		notices:  notices,
		marker:   marker,
		autoplay: cfg.Autoplay,
		session:  browse.NewSession(),
		spinner:  sp,
		keys:     defaultKeys(),
		help:     help.New(),
	}, nil
}

// Session exposes the browse state.
func (m *Model) Session() *browse.Session { return m.session }

// Toast is the notice currently on screen, if any.
func (m *Model) Toast() (notify.Notice, bool) {
	if m.toast == nil {
		return notify.Notice{}, false
	}
	return *m.toast, true
}

func (m *Model) Cursor() int { return m.cursor }

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.load()}
	if m.autoplay {
		cmds = append(cmds, heroTick(), topTick())
	}
	return tea.Batch(cmds...)
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		_ = m.loader.Load(m.ctx)
		return loadedMsg{state: m.loader.Snapshot()}
	}
}

func heroTick() tea.Cmd {
	return tea.Tick(HeroInterval, func(time.Time) tea.Msg { return heroTickMsg{} })
}

func topTick() tea.Cmd {
	return tea.Tick(TopRatedInterval, func(time.Time) tea.Msg { return topTickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m, m.applyState(msg.state)

	case heroTickMsg:
		m.session.Hero.Next()
		return m, heroTick()

	case topTickMsg:
		m.session.TopRated.Next()
		return m, topTick()

	case welcomeMsg:
		if !browse.ShouldWelcome(m.marker, m.session.Loaded()) {
			return m, nil
		}
		m.marker.MarkSeen()
		return m, m.show(browse.WelcomeNotice())

	case toastDoneMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyState(st catalog.State) tea.Cmd {
	m.session.Apply(st)
	m.clampCursor()

	var cmds []tea.Cmd
	fresh := m.notices.Notices()
	if len(fresh) > m.consumed {
		last := fresh[len(fresh)-1]
		m.consumed = len(fresh)
		cmds = append(cmds, m.show(last))
	}
	if browse.ShouldWelcome(m.marker, m.session.Loaded()) {
		cmds = append(cmds, tea.Tick(browse.WelcomeDelay, func(time.Time) tea.Msg { return welcomeMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) show(n notify.Notice) tea.Cmd {
	m.toast = &n
	id := n.ID
	return tea.Tick(n.Lifetime(), func(time.Time) tea.Msg { return toastDoneMsg{id: id} })
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if _, open := m.session.Active(); open {
		if key.Matches(msg, m.keys.Close) {
			m.session.Close()
		}
		return m, nil
	}

	visible := len(m.session.Visible())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor -= gridColumns
	case key.Matches(msg, m.keys.Down):
		m.cursor += gridColumns
	case key.Matches(msg, m.keys.Left):
		m.cursor--
	case key.Matches(msg, m.keys.Right):
		m.cursor++
	case key.Matches(msg, m.keys.Open):
		if m.cursor < visible {
			m.session.Select(m.session.Visible()[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.More):
		m.session.LoadMore()
	case key.Matches(msg, m.keys.NextGenre):
		m.cycleGenre(1)
	case key.Matches(msg, m.keys.PrevGenre):
		m.cycleGenre(-1)
	case key.Matches(msg, m.keys.Year):
		c := m.session.Criteria()
		c.Year = cycle(m.session.Options().Years, c.Year, 1)
		m.session.SetCriteria(c)
	case key.Matches(msg, m.keys.Language):
		c := m.session.Criteria()
		c.Language = cycle(m.session.Options().Languages, c.Language, 1)
		m.session.SetCriteria(c)
	case key.Matches(msg, m.keys.Cat):
		c := m.session.Criteria()
		c.Category = cycle(m.session.Options().Categories, c.Category, 1)
		m.session.SetCriteria(c)
	case key.Matches(msg, m.keys.Reset):
		m.session.SetCriteria(catalog.AllCriteria())
	case key.Matches(msg, m.keys.HeroNext):
		m.session.Hero.Next()
	case key.Matches(msg, m.keys.HeroPrev):
		m.session.Hero.Prev()
	case key.Matches(msg, m.keys.TopNext):
		m.session.TopRated.Next()
	case key.Matches(msg, m.keys.TopPrev):
		m.session.TopRated.Prev()
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) cycleGenre(step int) {
	c := m.session.Criteria()
	c.Genre = cycle(catalog.QuickGenres, c.Genre, step)
	m.session.SetCriteria(c)
}

func (m *Model) clampCursor() {
	n := len(m.session.Visible())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

// cycle returns the option step positions after cur, wrapping. An unknown
// cur starts from the first option.
func cycle(options []string, cur string, step int) string {
	if len(options) == 0 {
		return catalog.All
	}
	i := slices.Index(options, cur)
	if i < 0 {
		return options[0]
	}
	n := len(options)
	return options[((i+step)%n+n)%n]
}
