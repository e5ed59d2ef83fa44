// Package event defines the typed events emitted on Hyprland's event socket and
// the parser that turns raw socket records into them.
package event

// Kind identifies one event variant. The zero value is not a valid kind.
type Kind int

const (
	KindWorkspaceChanged Kind = iota + 1
	KindWorkspaceAdded
	KindWorkspaceDestroyed
	KindWorkspaceMoved
	KindActiveMonitorChanged
	KindActiveWindowChanged
	KindFullscreenChanged
	KindMonitorRemoved
	KindMonitorAdded
	KindWindowOpened
	KindWindowClosed
	KindWindowMoved
	KindLayoutChanged
	KindSubmapChanged
	KindLayerOpened
	KindLayerClosed
	KindFloatingChanged
	KindUrgentChanged
)

// wireNames maps each kind to the NAME used on the socket.
var wireNames = map[Kind]string{
	KindWorkspaceChanged:     "workspace",
	KindWorkspaceAdded:       "createworkspace",
	KindWorkspaceDestroyed:   "destroyworkspace",
	KindWorkspaceMoved:       "moveworkspace",
	KindActiveMonitorChanged: "focusedmon",
	KindActiveWindowChanged:  "activewindow",
	KindFullscreenChanged:    "fullscreen",
	KindMonitorRemoved:       "monitorremoved",
	KindMonitorAdded:         "monitoradded",
	KindWindowOpened:         "openwindow",
	KindWindowClosed:         "closewindow",
	KindWindowMoved:          "movewindow",
	KindLayoutChanged:        "activelayout",
	KindSubmapChanged:        "submap",
	KindLayerOpened:          "openlayer",
	KindLayerClosed:          "closelayer",
	KindFloatingChanged:      "changefloatingmode",
	KindUrgentChanged:        "urgent",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(wireNames))
	for k, n := range wireNames {
		m[n] = k
	}
	return m
}()

// String returns the wire name of the kind.
func (k Kind) String() string {
	if n, ok := wireNames[k]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := wireNames[k]
	return ok
}

// ParseKind returns the kind for a wire name.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(wireNames))
	for k := KindWorkspaceChanged; k <= KindUrgentChanged; k++ {
		out = append(out, k)
	}
	return out
}
