package app

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/listener"
)

// Snapshot is an immutable copy of the daemon's state, served by "status".
type Snapshot struct {
	ActiveWorkspace string         `json:"active_workspace"`
	ActiveMonitor   string         `json:"active_monitor"`
	ActiveWindow    *WindowInfo    `json:"active_window,omitempty"`
	Fullscreen      bool           `json:"fullscreen"`
	Submap          string         `json:"submap"`
	Windows         []Window       `json:"windows"`
	Urgent          []string       `json:"urgent"`
	Counts          map[string]int `json:"counts"`
	Events          int            `json:"events"`
	Updated         time.Time      `json:"updated"`
}

type WindowInfo struct {
	Class string `json:"class"`
	Title string `json:"title"`
}

// publish copies the state into a new snapshot. It is registered last for
// every kind so the snapshot reflects every other handler's changes.
func (a *App) publish(_ context.Context, _ event.Event, st *listener.State[Data]) error {
	a.snapshot.Store(snapshotOf(st))
	return nil
}

func snapshotOf(st *listener.State[Data]) *Snapshot {
	s := &Snapshot{
		ActiveWorkspace: st.ActiveWorkspace.Name,
		ActiveMonitor:   st.ActiveMonitor,
		Fullscreen:      st.Fullscreen,
		Submap:          st.Submap,
		Windows:         make([]Window, 0, len(st.Data.Windows)),
		Urgent:          make([]string, 0, len(st.Data.Urgent)),
		Counts:          make(map[string]int, len(st.Data.Counts)),
		Updated:         time.Now(),
	}

	if w := st.ActiveWindow; w != nil {
		s.ActiveWindow = &WindowInfo{Class: w.Class, Title: w.Title}
	}

	for _, addr := range slices.Sorted(maps.Keys(st.Data.Windows)) {
		s.Windows = append(s.Windows, st.Data.Windows[addr])
	}

	for _, addr := range slices.Sorted(maps.Keys(st.Data.Urgent)) {
		s.Urgent = append(s.Urgent, addr.String())
	}

	for k, n := range st.Data.Counts {
		s.Counts[k.String()] = n
		s.Events += n
	}

	return s
}
