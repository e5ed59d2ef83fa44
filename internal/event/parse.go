package event

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits the event name from its comma-separated arguments.
const Separator = ">>"

// ErrUnknownEvent is returned by Parse for records whose name is not in the
// catalog. Callers should skip these; Hyprland adds events over time.
var ErrUnknownEvent = errors.New("unknown event")

// ParseError describes a record that used a known name but did not match that
// kind's argument shape. Kind is zero when the record had no separator.
type ParseError struct {
	Record string
	Kind   Kind
	Reason string
}

func (e *ParseError) Error() string {
	if e.Kind == 0 {
		return fmt.Sprintf("invalid event %q: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("invalid %s event %q: %s", e.Kind, e.Record, e.Reason)
}

// shape declares how a kind's arguments are split and decoded. When rest is
// set the final argument keeps any further commas (titles, layout names).
type shape struct {
	min, max int
	rest     bool
	decode   func(args []string) (Event, error)
}

var shapes = map[Kind]shape{
	KindWorkspaceChanged: {min: 1, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return WorkspaceChanged{Workspace: newWorkspace(a[0])}, nil
	}},
	KindWorkspaceAdded: {min: 1, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return WorkspaceAdded{Workspace: newWorkspace(a[0])}, nil
	}},
	KindWorkspaceDestroyed: {min: 1, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return WorkspaceDestroyed{Workspace: newWorkspace(a[0])}, nil
	}},
	KindWorkspaceMoved: {min: 2, max: 2, decode: func(a []string) (Event, error) {
		return WorkspaceMoved{Workspace: newWorkspace(a[0]), Monitor: a[1]}, nil
	}},
	KindActiveMonitorChanged: {min: 2, max: 2, decode: func(a []string) (Event, error) {
		return ActiveMonitorChanged{Monitor: a[0], Workspace: newWorkspace(a[1])}, nil
	}},
	KindActiveWindowChanged: {min: 1, max: 2, rest: true, decode: func(a []string) (Event, error) {
		return ActiveWindowChanged{Class: a[0], Title: optional(a, 1)}, nil
	}},
	KindFullscreenChanged: {min: 1, max: 1, decode: func(a []string) (Event, error) {
		b, err := parseBool(a[0])
		if err != nil {
			return nil, err
		}
		return FullscreenChanged{Fullscreen: b}, nil
	}},
	KindMonitorRemoved: {min: 1, max: 1, decode: func(a []string) (Event, error) {
		return MonitorRemoved{Monitor: a[0]}, nil
	}},
	KindMonitorAdded: {min: 1, max: 1, decode: func(a []string) (Event, error) {
		return MonitorAdded{Monitor: a[0]}, nil
	}},
	KindWindowOpened: {min: 4, max: 4, rest: true, decode: func(a []string) (Event, error) {
		addr, err := ParseAddress(a[0])
		if err != nil {
			return nil, err
		}
		return WindowOpened{Address: addr, Workspace: newWorkspace(a[1]), Class: a[2], Title: a[3]}, nil
	}},
	KindWindowClosed: {min: 1, max: 1, decode: func(a []string) (Event, error) {
		addr, err := ParseAddress(a[0])
		if err != nil {
			return nil, err
		}
		return WindowClosed{Address: addr}, nil
	}},
	KindWindowMoved: {min: 2, max: 2, rest: true, decode: func(a []string) (Event, error) {
		addr, err := ParseAddress(a[0])
		if err != nil {
			return nil, err
		}
		return WindowMoved{Address: addr, Workspace: newWorkspace(a[1])}, nil
	}},
	KindLayoutChanged: {min: 2, max: 2, rest: true, decode: func(a []string) (Event, error) {
		return LayoutChanged{Keyboard: a[0], Layout: a[1]}, nil
	}},
	KindSubmapChanged: {min: 0, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return SubmapChanged{Submap: optional(a, 0)}, nil
	}},
	KindLayerOpened: {min: 1, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return LayerOpened{Namespace: a[0]}, nil
	}},
	KindLayerClosed: {min: 1, max: 1, rest: true, decode: func(a []string) (Event, error) {
		return LayerClosed{Namespace: a[0]}, nil
	}},
	KindFloatingChanged: {min: 2, max: 2, decode: func(a []string) (Event, error) {
		addr, err := ParseAddress(a[0])
		if err != nil {
			return nil, err
		}
		b, err := parseBool(a[1])
		if err != nil {
			return nil, err
		}
		return FloatingChanged{Address: addr, Floating: b}, nil
	}},
	KindUrgentChanged: {min: 1, max: 1, decode: func(a []string) (Event, error) {
		addr, err := ParseAddress(a[0])
		if err != nil {
			return nil, err
		}
		return UrgentChanged{Address: addr}, nil
	}},
}

// Parse converts one record into its typed event. It returns ErrUnknownEvent
// for empty records and names outside the catalog, and *ParseError for known
// names whose arguments do not fit.
func Parse(record string) (Event, error) {
	record = strings.TrimRight(record, "\r\n")
	if record == "" {
		return nil, ErrUnknownEvent
	}

	name, payload, found := strings.Cut(record, Separator)
	if !found {
		return nil, &ParseError{Record: record, Reason: "missing " + Separator + " separator"}
	}

	kind, ok := ParseKind(name)
	if !ok {
		return nil, ErrUnknownEvent
	}

	sh := shapes[kind]
	args := splitArgs(payload, sh)
	if len(args) < sh.min || len(args) > sh.max {
		return nil, &ParseError{
			Record: record,
			Kind:   kind,
			Reason: fmt.Sprintf("expected %s, got %d", arity(sh), len(args)),
		}
	}

	ev, err := sh.decode(args)
	if err != nil {
		return nil, &ParseError{Record: record, Kind: kind, Reason: err.Error()}
	}

	return ev, nil
}

func splitArgs(payload string, sh shape) []string {
	if payload == "" {
		return nil
	}
	if sh.rest {
		return strings.SplitN(payload, ",", sh.max)
	}
	return strings.Split(payload, ",")
}

func arity(sh shape) string {
	if sh.min == sh.max {
		return fmt.Sprintf("%d argument(s)", sh.min)
	}
	return fmt.Sprintf("%d to %d arguments", sh.min, sh.max)
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
