// Package notify sends desktop notifications over the D-Bus session bus.
package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"

	defaultAppName = "hyprevents"
)

type Options struct {
	AppName   string `yaml:"app_name,omitempty"`
	TimeoutMS int32  `yaml:"timeout_ms,omitempty"`
}

// caller is the part of a dbus object the notifier needs.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

type Notifier struct {
	conn *dbus.Conn
	obj  caller
	opts Options
}

// Connect opens a private connection to the session bus.
func Connect(ctx context.Context, opts Options) (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}

	return &Notifier{
		conn: conn,
		obj:  conn.Object(notifyDest, notifyPath),
		opts: withDefaults(opts),
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.AppName == "" {
		opts.AppName = defaultAppName
	}
	if opts.TimeoutMS == 0 {
		opts.TimeoutMS = -1
	}
	return opts
}

// Notify shows a notification and returns its server-assigned id.
func (n *Notifier) Notify(ctx context.Context, summary, body string) (uint32, error) {
	var id uint32
	call := n.obj.CallWithContext(ctx, notifyMethod, 0,
		n.opts.AppName,
		uint32(0),
		"",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		n.opts.TimeoutMS,
	)
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("sending notification: %w", err)
	}

	return id, nil
}

func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
