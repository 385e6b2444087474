package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/handsomefox/cinestream/internal/catalog"
	"github.com/handsomefox/cinestream/internal/config"
	"github.com/handsomefox/cinestream/internal/handlers"
	"github.com/handsomefox/cinestream/internal/logger"
	"github.com/handsomefox/cinestream/internal/notify"
	"github.com/handsomefox/cinestream/internal/web"

	_ "github.com/joho/godotenv/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Println("Error:", err.Error())
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(logger.New(logger.ParseLevel(cfg.Log.Level)))

	dist, err := web.Dist()
	if err != nil {
		return fmt.Errorf("failed to open embedded assets: %w", err)
	}

	var src catalog.Source
	if cfg.Catalog.Source == "" {
		src = catalog.NewFileSource(dist, web.CatalogFile)
	} else {
		src, err = catalog.NewSource(cfg.Catalog.Source, cfg.Catalog.Timeout)
		if err != nil {
			return fmt.Errorf("invalid catalog source: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notices := &notify.Recorder{}
	loader, err := catalog.NewLoader(catalog.LoaderConfig{
		Source:   src,
		Notifier: notify.Multi{notices, notify.LogNotifier{}},
		Logger:   slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("failed to init catalog loader: %w", err)
	}
	go func() {
		// A failed load is reported through the notices; the server keeps serving.
		_ = loader.Load(ctx)
	}()

	app, err := handlers.New(&handlers.Config{
		Loader:            loader,
		Notices:           notices,
		AllowedOrigins:    cfg.CORS.Origins,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
	})
	if err != nil {
		return fmt.Errorf("failed to init handlers: %w", err)
	}

	spa, err := handlers.SPA(dist)
	if err != nil {
		return fmt.Errorf("failed to init frontend: %w", err)
	}

	r := chi.NewRouter()
	r.Use(handlers.RequestLogger(slog.Default()))
	app.RegisterRoutes(r)
	if cfg.Catalog.Source != "" {
		r.Method(http.MethodGet, "/"+web.CatalogFile, handlers.CatalogDocument(cfg.Catalog.Source))
	}
	r.Handle("/*", spa)

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", server.Addr), slog.String("catalog", fmt.Sprint(src)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
