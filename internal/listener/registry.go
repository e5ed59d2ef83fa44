package listener

import (
	"context"
	"fmt"

	"github.com/dsrosen6/hyprevents/internal/event"
)

// StateFunc is a stateful handler. It receives exclusive access to the
// listener's State for the duration of the call.
type StateFunc[T any] func(ctx context.Context, ev event.Event, st *State[T]) error

// Handler is one registered callback: either stateless or stateful.
type Handler[T any] struct {
	stateless func(event.Event)
	stateful  StateFunc[T]
}

// Stateless wraps a side-effect-only callback.
func Stateless[T any](fn func(event.Event)) Handler[T] {
	return Handler[T]{stateless: fn}
}

// Stateful wraps a callback that reads and mutates State.
func Stateful[T any](fn StateFunc[T]) Handler[T] {
	return Handler[T]{stateful: fn}
}

// Registry maps each event kind to its handlers in registration order.
// Entries are never removed.
type Registry[T any] struct {
	handlers map[event.Kind][]Handler[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		handlers: make(map[event.Kind][]Handler[T]),
	}
}

// Register appends h to the list for kind. It panics on an unknown kind or an
// empty handler, both of which are programming errors.
func (r *Registry[T]) Register(kind event.Kind, h Handler[T]) {
	if !kind.Valid() {
		panic(fmt.Sprintf("listener: register on invalid event kind %d", int(kind)))
	}
	if h.stateless == nil && h.stateful == nil {
		panic("listener: register of empty handler for " + kind.String())
	}
	r.handlers[kind] = append(r.handlers[kind], h)
}

// Len returns how many handlers are registered for kind.
func (r *Registry[T]) Len(kind event.Kind) int {
	return len(r.handlers[kind])
}

func (r *Registry[T]) lookup(kind event.Kind) []Handler[T] {
	return r.handlers[kind]
}
