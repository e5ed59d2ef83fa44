package app

import (
	"context"
	"log/slog"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hooks"
	"github.com/dsrosen6/hyprevents/internal/listener"
)

// Data is the daemon's part of the listener state.
type Data struct {
	Windows map[event.Address]Window
	Urgent  map[event.Address]struct{}
	Counts  map[event.Kind]int
}

type Window struct {
	Address   string `json:"address"`
	Class     string `json:"class"`
	Title     string `json:"title"`
	Workspace string `json:"workspace"`
	Floating  bool   `json:"floating"`
}

func newData() Data {
	return Data{
		Windows: make(map[event.Address]Window),
		Urgent:  make(map[event.Address]struct{}),
		Counts:  make(map[event.Kind]int),
	}
}

// register installs the daemon's handlers. Per kind the order is: event log
// and print (stateless), then counting, window tracking, hooks and finally
// the snapshot publisher.
func (a *App) register(l *listener.Listener[Data], onEvent func(event.Event)) {
	for _, k := range event.Kinds() {
		l.Handle(k, a.logEvent)
		if onEvent != nil {
			l.Handle(k, onEvent)
		}
		l.HandleState(k, count)
	}

	listener.OnState(l, windowOpened)
	listener.OnState(l, windowClosed)
	listener.OnState(l, windowMoved)
	listener.OnState(l, floatingChanged)
	listener.OnState(l, urgentChanged)

	for _, k := range event.Kinds() {
		l.HandleState(k, a.runHooks)
		l.HandleState(k, a.publish)
	}
}

func (a *App) logEvent(ev event.Event) {
	if !(*a.logKinds.Load())[ev.Kind()] {
		return
	}

	args := []any{"kind", ev.Kind().String()}
	for k, v := range event.Fields(ev) {
		args = append(args, k, v)
	}
	slog.Info("event", args...)
}

func (a *App) runHooks(ctx context.Context, ev event.Event, st *listener.State[Data]) error {
	a.hooks.Run(ctx, ev, hooks.StateOf(st))
	return nil
}

func count(_ context.Context, ev event.Event, st *listener.State[Data]) error {
	st.Data.Counts[ev.Kind()]++
	return nil
}

func windowOpened(_ context.Context, ev event.WindowOpened, st *listener.State[Data]) error {
	st.Data.Windows[ev.Address] = Window{
		Address:   ev.Address.String(),
		Class:     ev.Class,
		Title:     ev.Title,
		Workspace: ev.Workspace.Name,
	}
	return nil
}

func windowClosed(_ context.Context, ev event.WindowClosed, st *listener.State[Data]) error {
	delete(st.Data.Windows, ev.Address)
	delete(st.Data.Urgent, ev.Address)
	return nil
}

func windowMoved(_ context.Context, ev event.WindowMoved, st *listener.State[Data]) error {
	w, ok := st.Data.Windows[ev.Address]
	if !ok {
		return nil
	}
	w.Workspace = ev.Workspace.Name
	st.Data.Windows[ev.Address] = w
	return nil
}

func floatingChanged(_ context.Context, ev event.FloatingChanged, st *listener.State[Data]) error {
	w, ok := st.Data.Windows[ev.Address]
	if !ok {
		return nil
	}
	w.Floating = ev.Floating
	st.Data.Windows[ev.Address] = w
	return nil
}

func urgentChanged(_ context.Context, ev event.UrgentChanged, st *listener.State[Data]) error {
	st.Data.Urgent[ev.Address] = struct{}{}
	return nil
}
