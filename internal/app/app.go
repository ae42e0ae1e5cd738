package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
	"github.com/deniswachira/bookstore-ui/internal/config"
	"github.com/deniswachira/bookstore-ui/internal/logging"
	"github.com/deniswachira/bookstore-ui/internal/prefs"
	"github.com/deniswachira/bookstore-ui/internal/reconcile"
	"github.com/deniswachira/bookstore-ui/internal/ui"
)

// Options configure the bookstore UI application.
type Options struct {
	ConfigPath     string
	PrefsPath      string // empty uses default ~/.config/bookstore-ui/prefs.toml
	RefreshSeconds int    // overrides the config value when > 0
}

// Run boots the bookstore TUI and blocks until the user quits or the context
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshSeconds > 0 {
		cfg.RefreshSeconds = opts.RefreshSeconds
	}

	log, ring, err := logging.New(logging.Config{
		Level: cfg.LogLevel,
		Path:  cfg.LogPath(),
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := bookapi.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warn("load preferences", zap.Error(err))
	}

	engine := reconcile.New(log, cfg.PageSize)

	log.Info("starting",
		zap.String("api", client.BaseURL()),
		zap.Int("page_size", cfg.PageSize),
		zap.Int("refresh_seconds", cfg.RefreshSeconds),
		zap.String("theme", userPrefs.Theme),
	)

	uiOpts := ui.Options{
		Context:      ctx,
		Client:       client,
		Engine:       engine,
		Log:          log,
		Ring:         ring,
		BaseURL:      client.BaseURL(),
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
		RefreshEvery: time.Duration(cfg.RefreshSeconds) * time.Second,
	}
	if err := ui.Run(uiOpts); err != nil {
		// A cancelled context is a normal shutdown, not a failure.
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
