package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/easy-qfnu/portal-client/internal/app"
	"github.com/easy-qfnu/portal-client/internal/config"
	"github.com/easy-qfnu/portal-client/internal/dashboard"
	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/easy-qfnu/portal-client/internal/prefs"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// stderr belongs to the TUI.
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "easy-qfnu-dashboard.log")
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("dashboard starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := app.New(ctx, cfg, log, app.WithSource("dashboard"), app.WithToastOutput(nil))
	if err != nil {
		logger.ErrorObj("failed to initialize runtime", "error", err)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := rt.Close(closeCtx); err != nil {
			logger.WarnObj("runtime close failed", "error", err)
		}
	}()

	store := &dashboard.Store{}
	poller := &dashboard.Poller{
		Store:     store,
		Fetcher:   rt.Stats,
		Interval:  cfg.DashboardRefresh,
		TrendDays: cfg.TrendDays,
		Log:       log,
	}
	poller.Start(ctx)

	p, err := prefs.Load(cfg.PrefsPath)
	if err != nil {
		logger.WarnObj("preferences unavailable, using defaults", "error", err)
	}

	model := dashboard.New(dashboard.Options{
		Context:   ctx,
		Store:     store,
		Refresh:   poller.Refresh,
		Toasts:    rt.Toasts,
		Surface:   rt.Surface,
		Theme:     p.Theme,
		PrefsPath: cfg.PrefsPath,
		Log:       log,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
