package hyprctl

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hypr"
)

// fakeHypr answers control socket requests from a fixed table.
type fakeHypr struct {
	mu      sync.Mutex
	replies map[string]string
	got     []string
}

func (f *fakeHypr) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.got...)
}

func newTestClient(t *testing.T, replies map[string]string) (*Client, *fakeHypr) {
	t.Helper()
	dir, err := os.MkdirTemp("", "hyprctl")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	in := hypr.Instance{RuntimeDir: dir, Signature: "test"}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hypr", "test"), 0o755))

	ln, err := net.Listen("unix", in.ControlSocket())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	f := &fakeHypr{replies: replies}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			buf := make([]byte, 1024)
			n, _ := conn.Read(buf)
			req := string(buf[:n])

			f.mu.Lock()
			f.got = append(f.got, req)
			reply, ok := f.replies[req]
			f.mu.Unlock()
			if !ok {
				reply = unknownReqOutput
			}
			_, _ = conn.Write([]byte(reply))
			_ = conn.Close()
		}
	}()

	return NewClientForInstance(in), f
}

func TestRequest_Unknown(t *testing.T) {
	c, _ := newTestClient(t, nil)

	_, err := c.Request(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnknownRequest)
}

func TestRequestJSON_Invalid(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"j/version": "not json {"})

	_, err := c.RequestJSON(context.Background(), "version")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestDispatch(t *testing.T) {
	c, f := newTestClient(t, map[string]string{
		"dispatch workspace 2": "ok",
		"dispatch nope":        "Invalid dispatcher",
	})

	require.NoError(t, c.Dispatch(context.Background(), "workspace 2"))

	err := c.Dispatch(context.Background(), "nope")
	var de *DispatchError
	require.True(t, errors.As(err, &de), "want *DispatchError, got %v", err)
	assert.Equal(t, "nope", de.Args)
	assert.Equal(t, "Invalid dispatcher", de.Reply)

	assert.Equal(t, []string{"dispatch workspace 2", "dispatch nope"}, f.requests())
}

func TestListMonitors(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"j/monitors": `[
			{"id":0,"name":"eDP-1","description":"Internal","width":2880,"height":1800,"refreshRate":120.0,
			 "x":0,"y":0,"scale":2.0,"focused":false,"activeWorkspace":{"id":1,"name":"1"}},
			{"id":1,"name":"DP-2","description":"Dell","width":2560,"height":1440,"refreshRate":59.95,
			 "x":1440,"y":0,"scale":1.0,"focused":true,"activeWorkspace":{"id":3,"name":"3"}}
		]`,
	})

	mm, err := c.ListMonitors(context.Background())
	require.NoError(t, err)
	require.Len(t, mm, 2)
	assert.Equal(t, int64(2880), mm["eDP-1"].Width)
	assert.InDelta(t, 59.95, mm["DP-2"].RefreshRate, 0.001)

	f, ok := mm.Focused()
	require.True(t, ok)
	assert.Equal(t, "DP-2", f.Name)
	assert.Equal(t, int64(3), f.ActiveWorkspace.ID)
}

func TestActiveWorkspace(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"j/activeworkspace": `{"id":-98,"name":"special:scratch","monitor":"DP-2","windows":2}`,
	})

	ws, err := c.ActiveWorkspace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Workspace{ID: -98, Name: "special:scratch", Monitor: "DP-2", Windows: 2}, ws)
}

func TestActiveWindow(t *testing.T) {
	t.Run("focused", func(t *testing.T) {
		c, _ := newTestClient(t, map[string]string{
			"j/activewindow": `{"address":"0x55d1c2a0","class":"kitty","title":"~",
				"workspace":{"id":2,"name":"2"},"floating":true,"fullscreen":false}`,
		})

		w, err := c.ActiveWindow(context.Background())
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.Equal(t, event.Address(0x55d1c2a0), w.Address)
		assert.Equal(t, "kitty", w.Class)
		assert.True(t, w.Floating)
		assert.Equal(t, "2", w.Workspace.Name)
	})

	t.Run("none", func(t *testing.T) {
		c, _ := newTestClient(t, map[string]string{"j/activewindow": `{}`})

		w, err := c.ActiveWindow(context.Background())
		require.NoError(t, err)
		assert.Nil(t, w)
	})
}

func TestRequest_NoSocket(t *testing.T) {
	c := NewClientForInstance(hypr.Instance{RuntimeDir: t.TempDir(), Signature: "missing"})

	_, err := c.Request(context.Background(), "monitors")
	var ce *hypr.ConnectionError
	assert.True(t, errors.As(err, &ce))
}
