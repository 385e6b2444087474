// Package notify carries the transient success/error notices shown to the user.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Success Kind = "success"
	Failure Kind = "error"
)

// Notice is a single toast. Only Kind is meaningful to callers; the copy is free-form.
type Notice struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
}

type Notifier interface {
	Notify(n Notice)
}

// New fills in an ID for a notice.
func New(kind Kind, title, description string, d time.Duration) Notice {
	return Notice{
		ID:          uuid.NewString(),
		Kind:        kind,
		Title:       title,
		Description: description,
		DurationMS:  d.Milliseconds(),
	}
}

// Lifetime is how long the notice stays on screen.
func (n Notice) Lifetime() time.Duration {
	return time.Duration(n.DurationMS) * time.Millisecond
}

type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

// Multi fans a notice out to every notifier.
type Multi []Notifier

func (m Multi) Notify(n Notice) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(n)
		}
	}
}

// Discard drops every notice.
var Discard Notifier = Func(func(Notice) {})

// LogNotifier writes notices to a slog logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	lg := l.Logger
	if lg == nil {
		lg = slog.Default()
	}
	level := slog.LevelInfo
	if n.Kind == Failure {
		level = slog.LevelError
	}
	lg.Log(context.Background(), level, "notice",
		slog.String("id", n.ID),
		slog.String("kind", string(n.Kind)),
		slog.String("title", n.Title),
	)
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.RWMutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Notices returns a copy of the recorded notices in arrival order.
func (r *Recorder) Notices() []Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Notice(nil), r.notices...)
}

// Count returns how many notices of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, nt := range r.notices {
		if nt.Kind == kind {
			n++
		}
	}
	return n
}
