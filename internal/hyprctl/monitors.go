package hyprctl

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

type (
	Monitor struct {
		ID              int64
		Name            string
		Description     string
		Width           int64
		Height          int64
		RefreshRate     float64
		X               int64
		Y               int64
		Scale           float64
		Focused         bool
		ActiveWorkspace Workspace
	}

	MonitorMap map[string]Monitor
)

// ListMonitors returns the current monitors keyed by name.
func (c *Client) ListMonitors(ctx context.Context) (MonitorMap, error) {
	out, err := c.RequestJSON(ctx, "monitors")
	if err != nil {
		return nil, fmt.Errorf("listing monitors: %w", err)
	}

	mm := make(MonitorMap)
	gjson.ParseBytes(out).ForEach(func(_, m gjson.Result) bool {
		mon := monitorFromJSON(m)
		mm[mon.Name] = mon
		return true
	})

	return mm, nil
}

// Focused returns the focused monitor, if any.
func (mm MonitorMap) Focused() (Monitor, bool) {
	for _, m := range mm {
		if m.Focused {
			return m, true
		}
	}
	return Monitor{}, false
}

func monitorFromJSON(r gjson.Result) Monitor {
	return Monitor{
		ID:              r.Get("id").Int(),
		Name:            r.Get("name").String(),
		Description:     r.Get("description").String(),
		Width:           r.Get("width").Int(),
		Height:          r.Get("height").Int(),
		RefreshRate:     r.Get("refreshRate").Float(),
		X:               r.Get("x").Int(),
		Y:               r.Get("y").Int(),
		Scale:           r.Get("scale").Float(),
		Focused:         r.Get("focused").Bool(),
		ActiveWorkspace: workspaceFromJSON(r.Get("activeWorkspace")),
	}
}

func (m Monitor) String() string {
	return fmt.Sprintf("%s %dx%d@%.2f at %dx%d scale %.2f", m.Name, m.Width, m.Height, m.RefreshRate, m.X, m.Y, m.Scale)
}
