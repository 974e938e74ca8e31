package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/cache"
	"github.com/xenonnoble69/assistdeck-frontend/internal/config"
	"github.com/xenonnoble69/assistdeck-frontend/internal/session"
	"github.com/xenonnoble69/assistdeck-frontend/internal/ui"
	"github.com/xenonnoble69/assistdeck-frontend/internal/ui/views"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "assistdeck",
	Short:   "AssistDeck - terminal client for the AssistDeck productivity backend",
	Version: Version,
	RunE:    run,
}

// app bundles the initialized services a command works with.
type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	cache   *cache.Cache
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Error("cache close error", "error", err)
		}
	}
}

// newApp loads configuration, restores any stored session, and wires
// the api client to it. The cache is optional: a cache that fails to
// open degrades to cold starts rather than blocking the command.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	initLogger(cfg)

	store := session.NewStore(cfg.Session.Path)
	if err := store.Load(); err != nil {
		return nil, err
	}

	client := api.New(cfg.API.BaseURL, store,
		api.WithTimeout(time.Duration(cfg.API.Timeout)),
		api.WithExpiredHook(func() {
			if err := store.Clear(); err != nil {
				slog.Error("session clear error", "error", err)
			}
		}),
	)

	snapshots, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		slog.Warn("snapshot cache unavailable", "path", cfg.Cache.Path, "error", err)
		snapshots = nil
	}

	return &app{
		cfg:     cfg,
		client:  client,
		session: store,
		cache:   snapshots,
	}, nil
}

func initLogger(cfg *config.Config) {
	// The TUI owns stdout; logs go to stderr so they do not tear the
	// rendered frames.
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// signalContext returns a context cancelled on SIGTERM/SIGINT.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return ui.Run(ctx, views.Deps{
		Client:  a.client,
		Session: a.session,
		Cache:   a.cache,
	})
}
