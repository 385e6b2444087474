// Package browse holds the per-session view state layered over the catalog:
// pagination window, active movie, carousels and the welcome marker.
package browse

import "github.com/handsomefox/cinestream/internal/catalog"

// PageSize is both the initial window and the LoadMore increment.
const PageSize = 10

// Window is the number of filtered movies currently shown.
type Window struct {
	visible int
}

func NewWindow() Window { return Window{visible: PageSize} }

// WindowAt restores a window from a client-held count. Counts below one page
// start at one page.
func WindowAt(visible int) Window {
	if visible < PageSize {
		visible = PageSize
	}
	return Window{visible: visible}
}

func (w Window) Count() int { return w.visible }

// LoadMore grows the window by PageSize, clamped to total. The window never
// shrinks, so calls at the ceiling are no-ops.
func (w *Window) LoadMore(total int) {
	next := min(w.visible+PageSize, total)
	if next > w.visible {
		w.visible = next
	}
}

// HasMore reports whether total has movies past the window.
func (w Window) HasMore(total int) bool {
	return w.visible < total
}

// Shown is the number of movies actually displayed out of total.
func (w Window) Shown(total int) int {
	return max(0, min(w.visible, total))
}

// Slice returns the visible prefix of movies.
func (w Window) Slice(movies []catalog.Movie) []catalog.Movie {
	return movies[:w.Shown(len(movies))]
}

func (w *Window) Reset() { w.visible = PageSize }
