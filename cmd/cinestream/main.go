package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/config"
	"github.com/handsomefox/cinestream/internal/logger"
	"github.com/handsomefox/cinestream/internal/notify"
	"github.com/handsomefox/cinestream/internal/tui"
	"github.com/handsomefox/cinestream/internal/web"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	source := flag.String("source", "", "catalog URL or file; the embedded catalog when empty")
	noAutoplay := flag.Bool("no-autoplay", false, "do not advance the carousels on a timer")
	flag.Parse()

	if err := run(*configPath, *source, !*noAutoplay); err != nil {
		fmt.Println("Error:", err.Error())
		os.Exit(1)
	}
}

func run(configPath, source string, autoplay bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// stdout belongs to the terminal UI.
	lg := logger.Discard()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "failed to close log file:", err)
			}
		}()
		lg = logger.NewWithWriter(f, logger.ParseLevel(cfg.Log.Level))
	}
	slog.SetDefault(lg)

	if source == "" {
		source = cfg.Catalog.Source
	}
	src, err := newSource(source, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notices := &notify.Recorder{}
	loader, err := catalog.NewLoader(catalog.LoaderConfig{
		Source:   src,
		Notifier: notify.Multi{notices, notify.LogNotifier{Logger: lg}},
		Logger:   lg,
	})
	if err != nil {
		return fmt.Errorf("failed to init catalog loader: %w", err)
	}

	model, err := tui.New(ctx, tui.Config{
		Loader:   loader,
		Notices:  notices,
		Autoplay: autoplay,
	})
	if err != nil {
		return fmt.Errorf("failed to init ui: %w", err)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func newSource(location string, cfg *config.Config) (catalog.Source, error) {
	if location == "" {
		dist, err := web.Dist()
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded catalog: %w", err)
		}
		return catalog.NewFileSource(dist, web.CatalogFile), nil
	}
	src, err := catalog.NewSource(location, cfg.Catalog.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog source: %w", err)
	}
	return src, nil
}
