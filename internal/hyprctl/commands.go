package hyprctl

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dsrosen6/hyprevents/internal/event"
)

type (
	Workspace struct {
		ID      int64
		Name    string
		Monitor string
		Windows int64
	}

	Window struct {
		Address    event.Address
		Class      string
		Title      string
		Workspace  Workspace
		Floating   bool
		Fullscreen bool
	}
)

func (c *Client) ActiveWorkspace(ctx context.Context) (Workspace, error) {
	out, err := c.RequestJSON(ctx, "activeworkspace")
	if err != nil {
		return Workspace{}, fmt.Errorf("getting active workspace: %w", err)
	}

	return workspaceFromJSON(gjson.ParseBytes(out)), nil
}

// ActiveWindow returns nil when no window is focused.
func (c *Client) ActiveWindow(ctx context.Context) (*Window, error) {
	out, err := c.RequestJSON(ctx, "activewindow")
	if err != nil {
		return nil, fmt.Errorf("getting active window: %w", err)
	}

	r := gjson.ParseBytes(out)
	if !r.Get("address").Exists() {
		return nil, nil
	}

	addr, err := event.ParseAddress(r.Get("address").String())
	if err != nil {
		return nil, fmt.Errorf("decoding active window: %w", err)
	}

	return &Window{
		Address:    addr,
		Class:      r.Get("class").String(),
		Title:      r.Get("title").String(),
		Workspace:  workspaceFromJSON(r.Get("workspace")),
		Floating:   r.Get("floating").Bool(),
		Fullscreen: r.Get("fullscreen").Bool(),
	}, nil
}

func workspaceFromJSON(r gjson.Result) Workspace {
	return Workspace{
		ID:      r.Get("id").Int(),
		Name:    r.Get("name").String(),
		Monitor: r.Get("monitor").String(),
		Windows: r.Get("windows").Int(),
	}
}
