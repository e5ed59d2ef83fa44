package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hypr"
	"github.com/dsrosen6/hyprevents/internal/listener"
)

const seedTimeout = 2 * time.Second

// errStreamEnded stops the other daemon goroutines after Hyprland closes
// the event stream.
var errStreamEnded = errors.New("event stream ended")

type ListenOptions struct {
	// Mode overrides the configured listener mode when set.
	Mode *listener.Mode
	// OnEvent, if set, is called for every event after it is logged.
	OnEvent func(event.Event)
}

// Listen connects to the event socket and runs the listener, the config
// watcher and the command socket until the stream ends or ctx is done.
func (a *App) Listen(ctx context.Context, opts ListenOptions) error {
	conn, err := hypr.DialEvents(ctx)
	if err != nil {
		return err
	}
	slog.Info("connected to event socket", "path", conn.Path)

	return a.ListenOn(ctx, listener.NewLineTransport(conn), opts)
}

// ListenOn is Listen over an already open transport.
func (a *App) ListenOn(ctx context.Context, t listener.Transport, opts ListenOptions) error {
	mode := a.Cfg.ListenMode()
	if opts.Mode != nil {
		mode = *opts.Mode
	}

	l := listener.New[Data](t,
		listener.WithMode(mode),
		listener.WithParseErrorHandler(func(pe *event.ParseError) {
			slog.Warn("malformed event record", "record", pe.Record, "reason", pe.Reason)
		}),
	)

	if err := l.Seed(a.seed(ctx)); err != nil {
		return fmt.Errorf("seeding state: %w", err)
	}
	a.register(l, opts.OnEvent)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := l.Run(gctx)
		if err == nil {
			return errStreamEnded
		}
		if gctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("listener failed: %w", err)
	})

	// blocking runs ignore ctx; closing the transport ends them
	g.Go(func() error {
		<-gctx.Done()
		_ = t.Close()
		return nil
	})

	changes := make(chan string, 1)
	g.Go(func() error {
		return a.Cfg.Watch(gctx, changes)
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case p := <-changes:
				slog.Info("config file changed", "path", p)
			case <-a.reloads:
				slog.Info("config reload requested")
			}

			if err := a.applyConfig(gctx); err != nil {
				slog.Error("reloading config", "error", err)
			}
		}
	})

	g.Go(func() error {
		return a.serveCommands(gctx)
	})

	slog.Info("listening for hyprland events", "mode", mode.String())
	err := g.Wait()
	if errors.Is(err, errStreamEnded) {
		return nil
	}
	if err == nil {
		return ctx.Err()
	}
	return err
}

// seed fills the tracked state from the control socket. Failures are logged;
// the state then fills in as events arrive.
func (a *App) seed(ctx context.Context) func(*listener.State[Data]) {
	return func(st *listener.State[Data]) {
		st.Data = newData()
		if a.Hctl == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, seedTimeout)
		defer cancel()

		if ws, err := a.Hctl.ActiveWorkspace(ctx); err != nil {
			slog.Warn("seeding active workspace", "error", err)
		} else {
			st.ActiveWorkspace = event.Workspace{ID: int(ws.ID), Name: ws.Name}
			st.ActiveMonitor = ws.Monitor
		}

		if w, err := a.Hctl.ActiveWindow(ctx); err != nil {
			slog.Warn("seeding active window", "error", err)
		} else if w != nil {
			st.ActiveWindow = &event.ActiveWindowChanged{Class: w.Class, Title: w.Title}
			st.Fullscreen = w.Fullscreen
		}

		if mm, err := a.Hctl.ListMonitors(ctx); err != nil {
			slog.Warn("seeding monitors", "error", err)
		} else if m, ok := mm.Focused(); ok {
			st.ActiveMonitor = m.Name
		}

		a.snapshot.Store(snapshotOf(st))
		slog.Debug("state seeded", "workspace", st.ActiveWorkspace.Name, "monitor", st.ActiveMonitor)
	}
}
