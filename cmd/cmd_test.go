package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrosen6/hyprevents/internal/app"
	"github.com/dsrosen6/hyprevents/internal/hyprctl"
)

func init() {
	color.NoColor = true
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestDispatch_NeedsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"dispatch"})
	assert.Error(t, root.Execute())
}

func TestPrintState(t *testing.T) {
	var out bytes.Buffer
	printState(&out,
		hyprctl.Workspace{ID: 2, Name: "2", Monitor: "DP-1"},
		nil,
		hyprctl.MonitorMap{
			"DP-1":  {Name: "DP-1", Width: 2560, Height: 1440, RefreshRate: 60, Scale: 1, Focused: true},
			"eDP-1": {Name: "eDP-1", Width: 1920, Height: 1080, RefreshRate: 60, Scale: 1},
		},
	)

	assert.Equal(t, `Workspace: 2 (id 2) on DP-1
Window: none
Monitors:
  * DP-1 2560x1440@60.00 at 0x0 scale 1.00
    eDP-1 1920x1080@60.00 at 0x0 scale 1.00
`, out.String())
}

func TestPrintStatus(t *testing.T) {
	var out bytes.Buffer
	printStatus(&out, app.Snapshot{
		ActiveWorkspace: "3",
		ActiveMonitor:   "DP-1",
		Windows:         []app.Window{{Address: "0xabc", Class: "mpv", Workspace: "3", Floating: true}},
		Counts:          map[string]int{"workspace": 2, "openwindow": 1},
		Events:          3,
	})

	assert.Equal(t, `Workspace: 3 on DP-1
Fullscreen: false
Windows: 1
  0xabc mpv on 3 (floating)
Events: 3
  openwindow           1
  workspace            2
`, out.String())
}
