package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/notify"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(brandStyle.Render("CineStream"))
	b.WriteString("\n")

	if m.session.Loading() {
		b.WriteString(m.spinner.View() + " Loading movies...\n")
		b.WriteString(m.toastView())
		return b.String()
	}

	if active, ok := m.session.Active(); ok {
		b.WriteString(renderDetail(&active))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("esc to close"))
		b.WriteString("\n")
		b.WriteString(m.toastView())
		return b.String()
	}

	b.WriteString(m.heroView())
	b.WriteString(m.topRatedView())
	b.WriteString(m.filtersView())
	b.WriteString(m.gridView())
	b.WriteString(m.toastView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) heroView() string {
	hero := m.session.HeroMovie()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(hero.Title),
		movieMeta(&hero),
	}
	if hero.Tagline != "" {
		lines = append(lines, mutedStyle.Render(hero.Tagline))
	}
	if img := hero.Image(catalog.ImageHero); img != "" {
		lines = append(lines, mutedStyle.Render(img))
	}
	if n := m.session.Hero.Len(); n > 1 {
		lines = append(lines, dots(m.session.Hero.Index(), n))
	}
	return heroStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m *Model) topRatedView() string {
	top := m.session.TopRatedMovies()
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Top Rated"))
	b.WriteString("\n")
	if len(top) == 0 {
		b.WriteString(mutedStyle.Render("No top rated movies yet"))
		b.WriteString("\n")
		return b.String()
	}
	cur := m.session.TopRated.Index()
	parts := make([]string, 0, len(top))
	for i := range top {
		label := fmt.Sprintf("%s %s", top[i].Title, ratingStyle.Render(fmt.Sprintf("★ %.1f", top[i].Rating)))
		if i == cur {
			label = cursorStyle.Render("▸ ") + label
		}
		parts = append(parts, label)
	}
	b.WriteString(strings.Join(parts, mutedStyle.Render("  ·  ")))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) filtersView() string {
	c := m.session.Criteria()
	var tabs []string
	for _, g := range catalog.QuickGenres {
		if g == c.Genre {
			tabs = append(tabs, activeTabStyle.Render(g))
		} else {
			tabs = append(tabs, tabStyle.Render(g))
		}
	}
	line := fmt.Sprintf("Year: %s   Language: %s   Category: %s", c.Year, c.Language, c.Category)
	return sectionStyle.Render("Browse") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" +
		mutedStyle.Render(line) + "\n"
}

func (m *Model) gridView() string {
	visible := m.session.Visible()
	total := len(m.session.Filtered())

	var b strings.Builder
	if total == 0 {
		if err := m.session.Err(); err != nil {
			b.WriteString(errorToastStyle.Render("Could not load the catalog"))
		} else {
			b.WriteString(mutedStyle.Render("No movies match these filters"))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i := range visible {
		cell := fmt.Sprintf("%-32s", truncate(visible[i].Title, 30))
		if i == m.cursor {
			cell = cursorStyle.Render("▸ " + cell)
		} else {
			cell = "  " + cell
		}
		b.WriteString(cell)
		if i%gridColumns == gridColumns-1 || i == len(visible)-1 {
			b.WriteString("\n")
		}
	}
	status := fmt.Sprintf("Showing %d of %d", len(visible), total)
	if m.session.HasMore() {
		status += ", press m for more"
	}
	b.WriteString(mutedStyle.Render(status))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) toastView() string {
	if m.toast == nil {
		return ""
	}
	style := successToastStyle
	if m.toast.Kind == notify.Failure {
		style = errorToastStyle
	}
	text := m.toast.Title
	if m.toast.Description != "" {
		text += ": " + m.toast.Description
	}
	return style.Render(text) + "\n"
}

func renderDetail(mv *catalog.Movie) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(mv.Title),
		movieMeta(mv),
	}
	if len(mv.Genres) > 0 {
		lines = append(lines, strings.Join(mv.Genres, ", "))
	}
	if mv.Description != "" {
		lines = append(lines, "", mv.Description)
	}
	if mv.TrailerURL != "" {
		lines = append(lines, "", "Trailer: "+mv.TrailerURL)
	}
	if img := mv.Image(catalog.ImagePoster); img != "" {
		lines = append(lines, mutedStyle.Render("Poster: "+img))
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}

func movieMeta(mv *catalog.Movie) string {
	parts := []string{}
	if y := mv.Year(); y != "" {
		parts = append(parts, y)
	}
	parts = append(parts, ratingStyle.Render(fmt.Sprintf("★ %.1f", mv.Rating)))
	if mv.Language != "" {
		parts = append(parts, mv.Language)
	}
	if mv.Category != "" {
		parts = append(parts, mv.Category)
	}
	return strings.Join(parts, " · ")
}

func dots(active, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i == active {
			b.WriteString(cursorStyle.Render("● "))
		} else {
			b.WriteString(mutedStyle.Render("○ "))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
