// Package hypr locates the running Hyprland instance and dials its sockets.
package hypr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"

	"github.com/caarlos0/env/v6"
)

const (
	eventSockName   = ".socket2.sock"
	controlSockName = ".socket.sock"
)

var ErrMissingEnvs = errors.New("missing hyprland envs")

// ConnectionError means a socket could not be reached. It is returned before
// any events are read.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Instance identifies one Hyprland session.
type Instance struct {
	RuntimeDir string `env:"XDG_RUNTIME_DIR"`
	Signature  string `env:"HYPRLAND_INSTANCE_SIGNATURE"`
}

// InstanceFromEnv reads the instance from the session environment.
func InstanceFromEnv() (Instance, error) {
	var in Instance
	if err := env.Parse(&in); err != nil {
		return Instance{}, fmt.Errorf("parsing hyprland env: %w", err)
	}

	if in.RuntimeDir == "" || in.Signature == "" {
		return Instance{}, ErrMissingEnvs
	}

	return in, nil
}

func (i Instance) dir() string {
	return filepath.Join(i.RuntimeDir, "hypr", i.Signature)
}

// EventSocket is the path of the event stream socket.
func (i Instance) EventSocket() string {
	return filepath.Join(i.dir(), eventSockName)
}

// ControlSocket is the path of the request/reply socket used by hyprctl.
func (i Instance) ControlSocket() string {
	return filepath.Join(i.dir(), controlSockName)
}

type SocketConn struct {
	*net.UnixConn
	Path string
}

// DialEvents opens the event stream of the instance.
func (i Instance) DialEvents(ctx context.Context) (*SocketConn, error) {
	return dial(ctx, i.EventSocket())
}

// DialControl opens one request/reply connection to the control socket.
func (i Instance) DialControl(ctx context.Context) (*SocketConn, error) {
	return dial(ctx, i.ControlSocket())
}

// DialEvents opens the event stream of the instance found in the environment.
func DialEvents(ctx context.Context) (*SocketConn, error) {
	in, err := InstanceFromEnv()
	if err != nil {
		return nil, err
	}
	return in.DialEvents(ctx)
}

func dial(ctx context.Context, path string) (*SocketConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}

	uc, ok := conn.(*net.UnixConn)
	if !ok {
		_ = conn.Close()
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("unexpected connection type %T", conn)}
	}

	return &SocketConn{UnixConn: uc, Path: path}, nil
}
