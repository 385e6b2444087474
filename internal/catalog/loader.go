package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/handsomefox/cinestream/internal/logger"
	"github.com/handsomefox/cinestream/internal/notify"
)

const failureNoticeDuration = 4 * time.Second

// State is a point-in-time view of a Loader.
type State struct {
	Catalog Catalog
	Loading bool
	Err     error
}

type LoaderConfig struct {
	Source   Source
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Loader fetches the catalog exactly once. A failed load is terminal.
type Loader struct {
	src    Source
	notify notify.Notifier
	log    *slog.Logger

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	loading bool
	catalog Catalog
	err     error
}

func NewLoader(cfg LoaderConfig) (*Loader, error) {
	if cfg.Source == nil {
		return nil, errors.New("catalog source is required")
	}
	n := cfg.Notifier
	if n == nil {
		n = notify.Discard
	}
	lg := cfg.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Loader{
		src:     cfg.Source,
		notify:  n,
		log:     lg,
		done:    make(chan struct{}),
		loading: true,
		catalog: New(nil),
	}, nil
}

// Load performs the fetch on first call; later calls wait for and return the
// first outcome.
func (l *Loader) Load(ctx context.Context) error {
	l.once.Do(func() {
		defer close(l.done)
		movies, err := l.fetch(ctx)

		l.mu.Lock()
		l.loading = false
		if err != nil {
			l.err = err
		} else {
			l.catalog = New(movies)
		}
		l.mu.Unlock()

		if err != nil {
			l.log.Error("catalog load failed", slog.String("source", fmt.Sprint(l.src)), logger.Error(err))
			l.notify.Notify(notify.New(notify.Failure, "Failed to load movies", err.Error(), failureNoticeDuration))
			return
		}
		l.log.Info("catalog loaded", slog.String("source", fmt.Sprint(l.src)), slog.Int("count", len(movies)))
	})
	<-l.done
	return l.Err()
}

func (l *Loader) fetch(ctx context.Context) ([]Movie, error) {
	body, err := l.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	movies, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return movies, nil
}

// Done is closed once the load has settled.
func (l *Loader) Done() <-chan struct{} { return l.done }

func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

func (l *Loader) Catalog() Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

func (l *Loader) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State{Catalog: l.catalog, Loading: l.loading, Err: l.err}
}
