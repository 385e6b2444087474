package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Open, Close           key.Binding
	More                  key.Binding
	NextGenre, PrevGenre  key.Binding
	Year, Language, Cat   key.Binding
	Reset                 key.Binding
	HeroNext, HeroPrev    key.Binding
	TopNext, TopPrev      key.Binding
	Help, Quit            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		More:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		NextGenre: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next genre")),
		PrevGenre: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev genre")),
		Year:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Language:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		Cat:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		HeroNext:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next featured")),
		HeroPrev:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev featured")),
		TopNext:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next top rated")),
		TopPrev:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "prev top rated")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.More, k.NextGenre, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Close, k.More},
		{k.NextGenre, k.PrevGenre, k.Year, k.Language, k.Cat, k.Reset},
		{k.HeroPrev, k.HeroNext, k.TopPrev, k.TopNext},
		{k.Help, k.Quit},
	}
}
