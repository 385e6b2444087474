package browse

import (
	"sync"
	"time"

	"github.com/handsomefox/cinestream/internal/notify"
)

const (
	WelcomeDelay    = time.Second
	WelcomeDuration = 2 * time.Second
)

// Marker is the once-per-session "welcome shown" flag.
type Marker interface {
	Seen() bool
	MarkSeen()
}

// MemoryMarker scopes the flag to the lifetime of the process.
type MemoryMarker struct {
	mu   sync.Mutex
	seen bool
}

func (m *MemoryMarker) Seen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen
}

func (m *MemoryMarker) MarkSeen() {
	m.mu.Lock()
	m.seen = true
	m.mu.Unlock()
}

// WelcomeNotice is the success toast shown after the first successful load.
func WelcomeNotice() notify.Notice {
	return notify.New(notify.Success, "Welcome to CineStream!", "Discover amazing movies and series", WelcomeDuration)
}

// ShouldWelcome reports whether a welcome is due: the catalog loaded and the
// marker has not been set.
func ShouldWelcome(m Marker, loaded bool) bool {
	return loaded && !m.Seen()
}
