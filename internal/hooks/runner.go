package hooks

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dsrosen6/hyprevents/internal/event"
)

const actionTimeout = 2 * time.Second

type (
	Dispatcher interface {
		Dispatch(ctx context.Context, args string) error
	}

	Notifier interface {
		Notify(ctx context.Context, summary, body string) (uint32, error)
	}

	// Executor starts a shell command without waiting for it.
	Executor interface {
		Start(command string, env []string) error
	}

	Actions struct {
		Dispatcher Dispatcher
		Notifier   Notifier
		Executor   Executor
	}
)

// Runner fires the actions of matching rules. The rule set can be swapped
// while the runner is in use.
type Runner struct {
	set     atomic.Pointer[Set]
	actions Actions
}

func NewRunner(set *Set, actions Actions) *Runner {
	if actions.Executor == nil {
		actions.Executor = ShellExecutor{}
	}

	r := &Runner{actions: actions}
	r.Swap(set)
	return r
}

// Swap replaces the active rules.
func (r *Runner) Swap(set *Set) {
	if set == nil {
		set = &Set{}
	}
	r.set.Store(set)
}

func (r *Runner) Len() int {
	return r.set.Load().Len()
}

// Run fires every rule for ev's kind whose condition holds and returns how many
// fired. Action failures are logged and do not stop the remaining rules.
func (r *Runner) Run(ctx context.Context, ev event.Event, st StateEnv) int {
	rules := r.set.Load().byKind[ev.Kind()]
	if len(rules) == 0 {
		return 0
	}

	fields := event.Fields(ev)
	fields["kind"] = ev.Kind().String()

	fired := 0
	for _, c := range rules {
		ok, err := c.matches(ev, st)
		if err != nil {
			slog.Warn("hook condition failed", "hook", c.Name, "error", err)
			continue
		}
		if !ok {
			continue
		}

		slog.Debug("hook matched", "hook", c.Name, "kind", ev.Kind().String())
		r.fire(ctx, c, fields)
		fired++
	}

	return fired
}

func (r *Runner) fire(ctx context.Context, c *compiled, fields map[string]string) {
	if c.Exec != "" {
		cmd := expand(c.Exec, fields)
		if err := r.actions.Executor.Start(cmd, hookEnv(c.Name, fields)); err != nil {
			slog.Error("hook exec", "hook", c.Name, "command", cmd, "error", err)
		}
	}

	if c.Dispatch != "" {
		args := expand(c.Dispatch, fields)
		if r.actions.Dispatcher == nil {
			slog.Warn("hook dispatch skipped: no control socket", "hook", c.Name)
		} else {
			actx, cancel := context.WithTimeout(ctx, actionTimeout)
			err := r.actions.Dispatcher.Dispatch(actx, args)
			cancel()
			if err != nil {
				slog.Error("hook dispatch", "hook", c.Name, "args", args, "error", err)
			}
		}
	}

	if c.Notify != "" {
		if r.actions.Notifier == nil {
			slog.Warn("hook notify skipped: no notification bus", "hook", c.Name)
			return
		}
		actx, cancel := context.WithTimeout(ctx, actionTimeout)
		_, err := r.actions.Notifier.Notify(actx, expand(c.Notify, fields), expand(c.NotifyBody, fields))
		cancel()
		if err != nil {
			slog.Error("hook notify", "hook", c.Name, "error", err)
		}
	}
}

// expand replaces ${field} and $field with event fields. Unknown fields
// expand to nothing.
func expand(s string, fields map[string]string) string {
	return os.Expand(s, func(k string) string {
		return fields[k]
	})
}

func hookEnv(name string, fields map[string]string) []string {
	env := []string{
		"HYPREVENTS_HOOK=" + name,
		"HYPREVENTS_KIND=" + fields["kind"],
	}

	if b, err := json.Marshal(fields); err == nil {
		env = append(env, "HYPREVENTS_EVENT="+string(b))
	}

	for k, v := range fields {
		if k == "kind" {
			continue
		}
		env = append(env, "HYPREVENTS_"+strings.ToUpper(k)+"="+v)
	}

	return env
}

// ShellExecutor runs commands with sh -c in the daemon's environment plus env.
type ShellExecutor struct{}

func (ShellExecutor) Start(command string, env []string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = append(os.Environ(), env...)

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Warn("hook command exited", "command", command, "error", err)
		}
	}()

	return nil
}
