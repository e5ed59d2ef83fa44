package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	method string
	args   []any
	reply  uint32
	err    error
}

func (f *fakeObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Err: f.err, Body: []any{f.reply}}
}

func TestNotify(t *testing.T) {
	obj := &fakeObject{reply: 42}
	n := &Notifier{obj: obj, opts: withDefaults(Options{})}

	id, err := n.Notify(context.Background(), "Workspace", "moved to 3")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)

	assert.Equal(t, notifyMethod, obj.method)
	require.Len(t, obj.args, 8)
	assert.Equal(t, "hyprevents", obj.args[0])
	assert.Equal(t, "Workspace", obj.args[3])
	assert.Equal(t, "moved to 3", obj.args[4])
	assert.Equal(t, int32(-1), obj.args[7])
}

func TestNotify_Error(t *testing.T) {
	obj := &fakeObject{err: errors.New("no notification daemon")}
	n := &Notifier{obj: obj, opts: withDefaults(Options{AppName: "x", TimeoutMS: 500})}

	_, err := n.Notify(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "no notification daemon")
	assert.Equal(t, int32(500), obj.args[7])
}
