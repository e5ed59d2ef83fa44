// Package listener runs the dispatch loop that reads Hyprland event records,
// parses them and hands them to registered handlers while threading a single
// State value through the stateful ones.
package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/dsrosen6/hyprevents/internal/event"
)

var ErrAlreadyRun = errors.New("listener already started")

// IOError is returned by Run when the connection fails mid-stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading event stream: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// HandlerError is returned by Run when a stateful handler returns an error.
type HandlerError struct {
	Kind event.Kind
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler: %v", e.Kind, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

type (
	Option func(*options)

	options struct {
		mode         Mode
		logger       *slog.Logger
		onParseError func(*event.ParseError)
	}
)

// WithMode selects the blocking or cooperative strategy. Blocking is the default.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithParseErrorHandler receives every malformed record. The loop continues
// after the callback returns.
func WithParseErrorHandler(fn func(*event.ParseError)) Option {
	return func(o *options) { o.onParseError = fn }
}

// Listener owns one event connection, its handlers, and the State they share.
// Handlers must be registered before Run; Run may only be called once.
type Listener[T any] struct {
	transport Transport
	registry  *Registry[T]
	state     State[T]
	opts      options
	started   atomic.Bool
}

func New[T any](t Transport, opts ...Option) *Listener[T] {
	o := options{
		mode:   Blocking,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Listener[T]{
		transport: t,
		registry:  NewRegistry[T](),
		opts:      o,
	}
}

// Register appends h to the handlers for kind.
func (l *Listener[T]) Register(kind event.Kind, h Handler[T]) {
	l.registry.Register(kind, h)
}

// Handle registers a stateless handler for kind.
func (l *Listener[T]) Handle(kind event.Kind, fn func(event.Event)) {
	l.Register(kind, Stateless[T](fn))
}

// HandleState registers a stateful handler for kind.
func (l *Listener[T]) HandleState(kind event.Kind, fn StateFunc[T]) {
	l.Register(kind, Stateful(fn))
}

// Handlers returns the number of handlers registered for kind.
func (l *Listener[T]) Handlers(kind event.Kind) int {
	return l.registry.Len(kind)
}

// Seed adjusts the initial state, e.g. from a data query. It fails once Run
// has started.
func (l *Listener[T]) Seed(fn func(*State[T])) error {
	if l.started.Load() {
		return ErrAlreadyRun
	}
	fn(&l.state)
	return nil
}

// On registers a stateless handler for the kind of payload E.
// E must be one of the concrete event payload types.
func On[E event.Event, T any](l *Listener[T], fn func(E)) {
	var zero E
	l.Handle(zero.Kind(), func(ev event.Event) {
		fn(ev.(E))
	})
}

// OnState registers a stateful handler for the kind of payload E.
func OnState[E event.Event, T any](l *Listener[T], fn func(context.Context, E, *State[T]) error) {
	var zero E
	l.HandleState(zero.Kind(), func(ctx context.Context, ev event.Event, st *State[T]) error {
		return fn(ctx, ev.(E), st)
	})
}

// Run reads and dispatches records until the stream ends. It returns nil when
// the peer closes the stream, *IOError when the connection fails,
// *HandlerError when a stateful handler fails, and ctx.Err() when a
// cooperative run is cancelled. The transport is closed on return.
func (l *Listener[T]) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	s := l.opts.mode.strategy(l.transport)
	defer func() {
		if err := l.transport.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			l.opts.logger.Error("closing event transport", "error", err)
		}
		s.close()
	}()

	l.opts.logger.Debug("dispatch loop started", "mode", l.opts.mode.String())
	for {
		rec, err := s.read(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.opts.logger.Info("event stream closed")
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return &IOError{Err: err}
		}

		ev, err := event.Parse(rec)
		if err != nil {
			l.handleParseError(rec, err)
			continue
		}

		if err := l.deliver(ctx, s, ev); err != nil {
			return err
		}
	}
}

func (l *Listener[T]) handleParseError(rec string, err error) {
	var pe *event.ParseError
	if !errors.As(err, &pe) {
		// unknown event names are expected as Hyprland grows
		return
	}

	l.opts.logger.Debug("skipping malformed event", "record", rec, "error", err)
	if l.opts.onParseError != nil {
		l.opts.onParseError(pe)
	}
}

// deliver runs one event through the tracked-state rule, then the stateless
// handlers, then the stateful handlers, each group in registration order.
func (l *Listener[T]) deliver(ctx context.Context, s strategy, ev event.Event) error {
	l.state.track(ev)

	handlers := l.registry.lookup(ev.Kind())
	for _, h := range handlers {
		if h.stateless == nil {
			continue
		}
		fn := h.stateless
		if err := s.invoke(ctx, func(context.Context) error {
			fn(ev)
			return nil
		}); err != nil {
			return err
		}
	}

	for _, h := range handlers {
		if h.stateful == nil {
			continue
		}
		fn := h.stateful
		if err := s.invoke(ctx, func(ctx context.Context) error {
			if err := fn(ctx, ev, &l.state); err != nil {
				return &HandlerError{Kind: ev.Kind(), Err: err}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}
