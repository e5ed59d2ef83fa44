// Package hooks runs user-configured actions when matching events arrive.
package hooks

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/hashicorp/go-multierror"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/listener"
)

var ErrNoAction = errors.New("no action set")

// Rule is one hook as written in the config file. At least one of Exec,
// Dispatch and Notify must be set.
type Rule struct {
	Name       string `yaml:"name"`
	On         string `yaml:"on"`
	When       string `yaml:"when,omitempty"`
	Exec       string `yaml:"exec,omitempty"`
	Dispatch   string `yaml:"dispatch,omitempty"`
	Notify     string `yaml:"notify,omitempty"`
	NotifyBody string `yaml:"notify_body,omitempty"`
}

func (r Rule) label(i int) string {
	if r.Name != "" {
		return fmt.Sprintf("%q", r.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}

// StateEnv is the tracked state as seen by `when` conditions.
type StateEnv struct {
	Workspace   string
	WorkspaceID int
	Monitor     string
	Class       string
	Title       string
	Fullscreen  bool
	Submap      string
}

func StateOf[T any](st *listener.State[T]) StateEnv {
	env := StateEnv{
		Workspace:   st.ActiveWorkspace.Name,
		WorkspaceID: st.ActiveWorkspace.ID,
		Monitor:     st.ActiveMonitor,
		Fullscreen:  st.Fullscreen,
		Submap:      st.Submap,
	}
	if st.ActiveWindow != nil {
		env.Class = st.ActiveWindow.Class
		env.Title = st.ActiveWindow.Title
	}
	return env
}

type compiled struct {
	Rule
	kind event.Kind
	cond *vm.Program
}

// Set is an immutable, compiled group of rules indexed by kind.
type Set struct {
	byKind map[event.Kind][]*compiled
	n      int
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

// Compile checks every rule and compiles its condition against the payload
// type of its kind. All problems are reported together; the returned set
// holds only the rules that compiled.
func Compile(rules []Rule) (*Set, error) {
	var errs *multierror.Error
	set := &Set{byKind: make(map[event.Kind][]*compiled)}

	for i, r := range rules {
		c, err := compile(r)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("hook %s: %w", r.label(i), err))
			continue
		}
		set.byKind[c.kind] = append(set.byKind[c.kind], c)
		set.n++
	}

	return set, errs.ErrorOrNil()
}

func compile(r Rule) (*compiled, error) {
	kind, ok := event.ParseKind(r.On)
	if !ok {
		return nil, fmt.Errorf("unknown event %q", r.On)
	}

	if r.Exec == "" && r.Dispatch == "" && r.Notify == "" {
		return nil, ErrNoAction
	}

	c := &compiled{Rule: r, kind: kind}
	if r.When == "" {
		return c, nil
	}

	prog, err := expr.Compile(r.When, expr.Env(envFor(event.Zero(kind), StateEnv{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling condition: %w", err)
	}
	c.cond = prog

	return c, nil
}

func envFor(ev event.Event, st StateEnv) map[string]any {
	return map[string]any{
		"event": ev,
		"state": st,
	}
}

func (c *compiled) matches(ev event.Event, st StateEnv) (bool, error) {
	if c.cond == nil {
		return true, nil
	}

	out, err := expr.Run(c.cond, envFor(ev, st))
	if err != nil {
		return false, err
	}

	ok, _ := out.(bool)
	return ok, nil
}
