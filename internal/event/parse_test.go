package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   Event
	}{
		{"workspace", "workspace>>2", WorkspaceChanged{Workspace: Workspace{ID: 2, Name: "2"}}},
		{"workspace named", "workspace>>web", WorkspaceChanged{Workspace: Workspace{Name: "web"}}},
		{"createworkspace", "createworkspace>>3", WorkspaceAdded{Workspace: Workspace{ID: 3, Name: "3"}}},
		{"destroyworkspace", "destroyworkspace>>special:term", WorkspaceDestroyed{Workspace: Workspace{Name: "special:term"}}},
		{"moveworkspace", "moveworkspace>>4,DP-1", WorkspaceMoved{Workspace: Workspace{ID: 4, Name: "4"}, Monitor: "DP-1"}},
		{"focusedmon", "focusedmon>>eDP-1,1", ActiveMonitorChanged{Monitor: "eDP-1", Workspace: Workspace{ID: 1, Name: "1"}}},
		{"activewindow", "activewindow>>kitty,~/src, nvim", ActiveWindowChanged{Class: "kitty", Title: "~/src, nvim"}},
		{"activewindow empty", "activewindow>>,", ActiveWindowChanged{}},
		{"activewindow no title", "activewindow>>kitty", ActiveWindowChanged{Class: "kitty"}},
		{"fullscreen on", "fullscreen>>1", FullscreenChanged{Fullscreen: true}},
		{"fullscreen off", "fullscreen>>0", FullscreenChanged{Fullscreen: false}},
		{"monitorremoved", "monitorremoved>>HDMI-A-1", MonitorRemoved{Monitor: "HDMI-A-1"}},
		{"monitoradded", "monitoradded>>HDMI-A-1", MonitorAdded{Monitor: "HDMI-A-1"}},
		{"openwindow", "openwindow>>abcd,2,kitty,term", WindowOpened{Address: 0xabcd, Workspace: Workspace{ID: 2, Name: "2"}, Class: "kitty", Title: "term"}},
		{"openwindow title commas", "openwindow>>0x55d1,web,firefox,a, b, c", WindowOpened{Address: 0x55d1, Workspace: Workspace{Name: "web"}, Class: "firefox", Title: "a, b, c"}},
		{"closewindow", "closewindow>>abcd", WindowClosed{Address: 0xabcd}},
		{"movewindow", "movewindow>>abcd,5", WindowMoved{Address: 0xabcd, Workspace: Workspace{ID: 5, Name: "5"}}},
		{"activelayout", "activelayout>>at-translated-set-2-keyboard,English (US)", LayoutChanged{Keyboard: "at-translated-set-2-keyboard", Layout: "English (US)"}},
		{"submap", "submap>>resize", SubmapChanged{Submap: "resize"}},
		{"submap reset", "submap>>", SubmapChanged{}},
		{"openlayer", "openlayer>>waybar", LayerOpened{Namespace: "waybar"}},
		{"closelayer", "closelayer>>rofi", LayerClosed{Namespace: "rofi"}},
		{"changefloatingmode", "changefloatingmode>>abcd,1", FloatingChanged{Address: 0xabcd, Floating: true}},
		{"urgent", "urgent>>abcd", UrgentChanged{Address: 0xabcd}},
		{"trailing newline", "workspace>>7\r\n", WorkspaceChanged{Workspace: Workspace{ID: 7, Name: "7"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind(), got.Kind())
		})
	}
}

func TestParse_EveryKindCovered(t *testing.T) {
	for _, k := range Kinds() {
		_, ok := shapes[k]
		assert.True(t, ok, "no shape for %s", k)
		assert.NotNil(t, Zero(k), "no zero payload for %s", k)
		assert.Equal(t, k, Zero(k).Kind())

		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, rec := range []string{"", "windowtitlev2>>abcd,foo", "configreloaded>>"} {
		_, err := Parse(rec)
		assert.ErrorIs(t, err, ErrUnknownEvent, "record %q", rec)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		record string
		kind   Kind
	}{
		{"workspace>>", KindWorkspaceChanged},
		{"moveworkspace>>1", KindWorkspaceMoved},
		{"moveworkspace>>1,DP-1,extra", KindWorkspaceMoved},
		{"openwindow>>abcd,2,kitty", KindWindowOpened},
		{"openwindow>>zzzz,2,kitty,term", KindWindowOpened},
		{"fullscreen>>yes", KindFullscreenChanged},
		{"fullscreen>>1,0", KindFullscreenChanged},
		{"closewindow>>", KindWindowClosed},
		{"changefloatingmode>>abcd,2", KindFloatingChanged},
		{"activewindow>>", KindActiveWindowChanged},
		{"noseparator", 0},
	}

	for _, tt := range tests {
		t.Run(tt.record, func(t *testing.T) {
			ev, err := Parse(tt.record)
			require.Error(t, err)
			assert.Nil(t, ev)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tt.record, pe.Record)
			assert.Equal(t, tt.kind, pe.Kind)
		})
	}
}

func TestWorkspace_Special(t *testing.T) {
	assert.True(t, Workspace{Name: "special"}.Special())
	assert.True(t, Workspace{Name: "special:scratch"}.Special())
	assert.False(t, Workspace{Name: "specialist"}.Special())
	assert.False(t, Workspace{ID: 1, Name: "1"}.Special())
}

func TestFields(t *testing.T) {
	f := Fields(WindowOpened{Address: 0xabcd, Workspace: Workspace{ID: 2, Name: "2"}, Class: "kitty", Title: "term"})
	assert.Equal(t, map[string]string{
		"address":      "0xabcd",
		"workspace":    "2",
		"workspace_id": "2",
		"class":        "kitty",
		"title":        "term",
	}, f)
}
