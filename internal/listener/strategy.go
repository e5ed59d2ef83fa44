package listener

import (
	"context"
	"fmt"
	"sync"
)

// Mode selects how the dispatch loop waits on the transport and between handlers.
type Mode int

const (
	// Blocking reads and runs handlers inline on the goroutine that called Run.
	// The context is not consulted; the run ends on EOF, a read error, or a
	// handler fault.
	Blocking Mode = iota
	// Cooperative suspends on reads and between handler invocations, returning
	// ctx.Err() as soon as the context is done at one of those points.
	Cooperative
)

func (m Mode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case Cooperative:
		return "cooperative"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "blocking", "sync":
		return Blocking, nil
	case "cooperative", "async":
		return Cooperative, nil
	default:
		return Blocking, fmt.Errorf("unknown listener mode %q", s)
	}
}

// strategy is the only part of the loop that differs between modes.
type strategy interface {
	read(ctx context.Context) (string, error)
	invoke(ctx context.Context, fn func(context.Context) error) error
	close()
}

func (m Mode) strategy(t Transport) strategy {
	if m == Cooperative {
		return newCooperative(t)
	}
	return blocking{t: t}
}

type blocking struct {
	t Transport
}

func (b blocking) read(context.Context) (string, error) {
	return b.t.ReadRecord()
}

func (b blocking) invoke(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (blocking) close() {}

type readResult struct {
	record string
	err    error
}

// cooperative reads through a single goroutine that touches the transport only
// when the loop asks for the next record, so nothing is read ahead.
type cooperative struct {
	t    Transport
	reqs chan struct{}
	res  chan readResult
	done chan struct{}
	once sync.Once
}

func newCooperative(t Transport) *cooperative {
	return &cooperative{
		t:    t,
		reqs: make(chan struct{}),
		res:  make(chan readResult),
		done: make(chan struct{}),
	}
}

func (c *cooperative) read(ctx context.Context) (string, error) {
	c.once.Do(func() { go c.pump() })

	select {
	case c.reqs <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-c.res:
		return r.record, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *cooperative) pump() {
	for {
		select {
		case <-c.reqs:
		case <-c.done:
			return
		}

		rec, err := c.t.ReadRecord()
		select {
		case c.res <- readResult{record: rec, err: err}:
		case <-c.done:
			return
		}
	}
}

func (c *cooperative) invoke(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (c *cooperative) close() {
	close(c.done)
}
