package event

import (
	"fmt"
	"strconv"
	"strings"
)

// Event is a parsed record from the event socket. The concrete type is one of
// the payload structs below and is fully determined by Kind.
type Event interface {
	Kind() Kind
}

type (
	// Workspace identifies a workspace by name. ID holds the number for
	// numbered workspaces and is 0 for named ones.
	Workspace struct {
		ID   int
		Name string
	}

	// Address is a window address as sent by Hyprland.
	Address uint64
)

func newWorkspace(name string) Workspace {
	id, err := strconv.Atoi(name)
	if err != nil {
		id = 0
	}
	return Workspace{ID: id, Name: name}
}

// Special reports whether the workspace is a special (scratchpad) workspace.
func (w Workspace) Special() bool {
	return w.Name == "special" || strings.HasPrefix(w.Name, "special:")
}

func (w Workspace) String() string {
	return w.Name
}

func (a Address) String() string {
	return fmt.Sprintf("0x%x", uint64(a))
}

// ParseAddress parses a hex window address, with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty address")
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return Address(v), nil
}

type (
	WorkspaceChanged struct {
		Workspace Workspace
	}

	WorkspaceAdded struct {
		Workspace Workspace
	}

	WorkspaceDestroyed struct {
		Workspace Workspace
	}

	WorkspaceMoved struct {
		Workspace Workspace
		Monitor   string
	}

	ActiveMonitorChanged struct {
		Monitor   string
		Workspace Workspace
	}

	// ActiveWindowChanged is sent with empty fields when focus leaves all windows.
	ActiveWindowChanged struct {
		Class string
		Title string
	}

	FullscreenChanged struct {
		Fullscreen bool
	}

	MonitorRemoved struct {
		Monitor string
	}

	MonitorAdded struct {
		Monitor string
	}

	WindowOpened struct {
		Address   Address
		Workspace Workspace
		Class     string
		Title     string
	}

	WindowClosed struct {
		Address Address
	}

	WindowMoved struct {
		Address   Address
		Workspace Workspace
	}

	LayoutChanged struct {
		Keyboard string
		Layout   string
	}

	// SubmapChanged carries an empty Submap when the default submap is restored.
	SubmapChanged struct {
		Submap string
	}

	LayerOpened struct {
		Namespace string
	}

	LayerClosed struct {
		Namespace string
	}

	FloatingChanged struct {
		Address  Address
		Floating bool
	}

	UrgentChanged struct {
		Address Address
	}
)

func (WorkspaceChanged) Kind() Kind     { return KindWorkspaceChanged }
func (WorkspaceAdded) Kind() Kind       { return KindWorkspaceAdded }
func (WorkspaceDestroyed) Kind() Kind   { return KindWorkspaceDestroyed }
func (WorkspaceMoved) Kind() Kind       { return KindWorkspaceMoved }
func (ActiveMonitorChanged) Kind() Kind { return KindActiveMonitorChanged }
func (ActiveWindowChanged) Kind() Kind  { return KindActiveWindowChanged }
func (FullscreenChanged) Kind() Kind    { return KindFullscreenChanged }
func (MonitorRemoved) Kind() Kind       { return KindMonitorRemoved }
func (MonitorAdded) Kind() Kind         { return KindMonitorAdded }
func (WindowOpened) Kind() Kind         { return KindWindowOpened }
func (WindowClosed) Kind() Kind         { return KindWindowClosed }
func (WindowMoved) Kind() Kind          { return KindWindowMoved }
func (LayoutChanged) Kind() Kind        { return KindLayoutChanged }
func (SubmapChanged) Kind() Kind        { return KindSubmapChanged }
func (LayerOpened) Kind() Kind          { return KindLayerOpened }
func (LayerClosed) Kind() Kind          { return KindLayerClosed }
func (FloatingChanged) Kind() Kind      { return KindFloatingChanged }
func (UrgentChanged) Kind() Kind        { return KindUrgentChanged }

// Empty reports whether no window is focused.
func (a ActiveWindowChanged) Empty() bool {
	return a.Class == "" && a.Title == ""
}

// Zero returns the zero payload for kind, or nil if the kind is unknown.
func Zero(kind Kind) Event {
	switch kind {
	case KindWorkspaceChanged:
		return WorkspaceChanged{}
	case KindWorkspaceAdded:
		return WorkspaceAdded{}
	case KindWorkspaceDestroyed:
		return WorkspaceDestroyed{}
	case KindWorkspaceMoved:
		return WorkspaceMoved{}
	case KindActiveMonitorChanged:
		return ActiveMonitorChanged{}
	case KindActiveWindowChanged:
		return ActiveWindowChanged{}
	case KindFullscreenChanged:
		return FullscreenChanged{}
	case KindMonitorRemoved:
		return MonitorRemoved{}
	case KindMonitorAdded:
		return MonitorAdded{}
	case KindWindowOpened:
		return WindowOpened{}
	case KindWindowClosed:
		return WindowClosed{}
	case KindWindowMoved:
		return WindowMoved{}
	case KindLayoutChanged:
		return LayoutChanged{}
	case KindSubmapChanged:
		return SubmapChanged{}
	case KindLayerOpened:
		return LayerOpened{}
	case KindLayerClosed:
		return LayerClosed{}
	case KindFloatingChanged:
		return FloatingChanged{}
	case KindUrgentChanged:
		return UrgentChanged{}
	default:
		return nil
	}
}

// Fields flattens an event into lowercase field names and string values. It is
// used for hook templates and environment variables.
func Fields(ev Event) map[string]string {
	switch e := ev.(type) {
	case WorkspaceChanged:
		return wsFields(e.Workspace)
	case WorkspaceAdded:
		return wsFields(e.Workspace)
	case WorkspaceDestroyed:
		return wsFields(e.Workspace)
	case WorkspaceMoved:
		f := wsFields(e.Workspace)
		f["monitor"] = e.Monitor
		return f
	case ActiveMonitorChanged:
		f := wsFields(e.Workspace)
		f["monitor"] = e.Monitor
		return f
	case ActiveWindowChanged:
		return map[string]string{"class": e.Class, "title": e.Title}
	case FullscreenChanged:
		return map[string]string{"fullscreen": strconv.FormatBool(e.Fullscreen)}
	case MonitorRemoved:
		return map[string]string{"monitor": e.Monitor}
	case MonitorAdded:
		return map[string]string{"monitor": e.Monitor}
	case WindowOpened:
		f := wsFields(e.Workspace)
		f["address"] = e.Address.String()
		f["class"] = e.Class
		f["title"] = e.Title
		return f
	case WindowClosed:
		return map[string]string{"address": e.Address.String()}
	case WindowMoved:
		f := wsFields(e.Workspace)
		f["address"] = e.Address.String()
		return f
	case LayoutChanged:
		return map[string]string{"keyboard": e.Keyboard, "layout": e.Layout}
	case SubmapChanged:
		return map[string]string{"submap": e.Submap}
	case LayerOpened:
		return map[string]string{"namespace": e.Namespace}
	case LayerClosed:
		return map[string]string{"namespace": e.Namespace}
	case FloatingChanged:
		return map[string]string{"address": e.Address.String(), "floating": strconv.FormatBool(e.Floating)}
	case UrgentChanged:
		return map[string]string{"address": e.Address.String()}
	default:
		return map[string]string{}
	}
}

func wsFields(w Workspace) map[string]string {
	return map[string]string{
		"workspace":    w.Name,
		"workspace_id": strconv.Itoa(w.ID),
	}
}
