// Package app wires the event listener, hooks, config reloads and the command
// socket into the hyprevents daemon.
package app

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/dsrosen6/hyprevents/internal/config"
	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hooks"
	"github.com/dsrosen6/hyprevents/internal/hyprctl"
	"github.com/dsrosen6/hyprevents/internal/logging"
)

type App struct {
	Cfg  *config.Config
	Hctl *hyprctl.Client

	// SockPath is where the command socket listens; empty means CommandSocket().
	SockPath string

	actions  hooks.Actions
	hooks    *hooks.Runner
	logKinds atomic.Pointer[map[event.Kind]bool]
	snapshot atomic.Pointer[Snapshot]
	reloads  chan struct{}
}

// NewApp builds an app from a validated config. hc may be nil, in which case
// state is not seeded and dispatch hooks are skipped.
func NewApp(cfg *config.Config, hc *hyprctl.Client) *App {
	a := &App{
		Cfg:     cfg,
		Hctl:    hc,
		reloads: make(chan struct{}, 1),
	}

	if hc != nil {
		a.actions.Dispatcher = hc
	}
	a.hooks = hooks.NewRunner(a.compileHooks(), a.actions)
	a.setLogKinds(cfg.LoggedKinds())
	a.snapshot.Store(&Snapshot{})

	return a
}

// SetNotifier enables notify hooks. It must be called before Listen.
func (a *App) SetNotifier(n hooks.Notifier) {
	a.actions.Notifier = n
	a.hooks = hooks.NewRunner(a.compileHooks(), a.actions)
}

// compileHooks keeps the rules that compile; the rest are logged.
func (a *App) compileHooks() *hooks.Set {
	set, err := hooks.Compile(a.Cfg.Hooks)
	if err != nil {
		slog.Warn("some hooks were not loaded", "error", err)
	}
	return set
}

func (a *App) setLogKinds(kinds []event.Kind) {
	m := make(map[event.Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	a.logKinds.Store(&m)
}

// Snapshot returns the state as of the last delivered event.
func (a *App) Snapshot() Snapshot {
	return *a.snapshot.Load()
}

// RequestReload asks a running daemon loop to reread its config.
func (a *App) RequestReload() {
	select {
	case a.reloads <- struct{}{}:
	default:
	}
}

// applyConfig reloads the config file and swaps in everything derived from it.
func (a *App) applyConfig(_ context.Context) error {
	prevMode := a.Cfg.Mode
	if err := a.Cfg.Reload(5); err != nil {
		return err
	}

	if lvl, err := logging.ParseLevel(a.Cfg.Log.Level); err == nil {
		logging.SetLevel(lvl)
	}

	a.hooks.Swap(a.compileHooks())
	a.setLogKinds(a.Cfg.LoggedKinds())

	if a.Cfg.Mode != prevMode {
		slog.Warn("listener mode changes take effect after restart", "mode", a.Cfg.Mode)
	}

	slog.Info("config applied", "hooks", a.hooks.Len())
	return nil
}
