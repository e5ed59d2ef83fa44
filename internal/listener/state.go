package listener

import "github.com/dsrosen6/hyprevents/internal/event"

// State is owned by a Listener and only touched from its dispatch loop. The
// tracked fields are kept current by the engine; Data belongs to the application.
type State[T any] struct {
	ActiveWorkspace event.Workspace
	ActiveMonitor   string
	ActiveWindow    *event.ActiveWindowChanged
	Fullscreen      bool
	Submap          string

	Data T
}

// track applies the fixed per-kind update for ev. It runs before any handler
// for the delivery observes the state.
func (s *State[T]) track(ev event.Event) {
	switch e := ev.(type) {
	case event.WorkspaceChanged:
		s.ActiveWorkspace = e.Workspace
	case event.ActiveMonitorChanged:
		s.ActiveMonitor = e.Monitor
		s.ActiveWorkspace = e.Workspace
	case event.ActiveWindowChanged:
		if e.Empty() {
			s.ActiveWindow = nil
			return
		}
		w := e
		s.ActiveWindow = &w
	case event.FullscreenChanged:
		s.Fullscreen = e.Fullscreen
	case event.SubmapChanged:
		s.Submap = e.Submap
	}
}
