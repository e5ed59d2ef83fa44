package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
)

var CommandSockName = "hyprevents.sock"

const (
	ReloadCommand = "reload"
	StatusCommand = "status"

	okReply = "ok"
)

var ErrNotRunning = errors.New("hyprevents daemon not running")

// CommandSocket is the default command socket path.
func CommandSocket() string {
	return filepath.Join(os.TempDir(), CommandSockName)
}

func (a *App) sockPath() string {
	if a.SockPath != "" {
		return a.SockPath
	}
	return CommandSocket()
}

// serveCommands answers CLI commands sent to a running daemon.
func (a *App) serveCommands(ctx context.Context) error {
	sock := a.sockPath()

	// remove existing file if it already exists
	_ = os.Remove(sock)

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "unix", sock)
	if err != nil {
		return fmt.Errorf("command listener: listen unix socket: %w", err)
	}

	go func() {
		<-ctx.Done()
		if err := ln.Close(); err != nil {
			slog.Error("command listener: closing hyprevents socket", "error", err)
		}
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("command listener: accept", "error", err)
			continue
		}

		go a.handleCommand(conn)
	}
}

func (a *App) handleCommand(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("command listener: closing socket conn", "error", err)
		} else {
			slog.Debug("command listener: socket conn closed")
		}
	}()

	buf, _ := io.ReadAll(conn)
	msg := strings.TrimSpace(string(buf))

	var reply []byte
	switch msg {
	case ReloadCommand:
		a.RequestReload()
		reply = []byte(okReply)
	case StatusCommand:
		b, err := json.Marshal(a.Snapshot())
		if err != nil {
			slog.Error("command listener: encoding status", "error", err)
			return
		}
		reply = b
	default:
		slog.Warn("command listener: got unknown message", "msg", msg)
		reply = []byte("unknown command")
	}

	if _, err := conn.Write(reply); err != nil {
		slog.Error("command listener: writing reply", "error", err)
	}
}

// SendCommand sends msg to the daemon at sock and returns its reply.
func SendCommand(sock, msg string) (string, error) {
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return "", ErrNotRunning
	}

	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("closing command socket connection", "error", err)
		}
	}()

	if _, err = conn.Write([]byte(msg)); err != nil {
		return "", fmt.Errorf("writing message '%s' to socket: %w", msg, err)
	}

	if uc, ok := conn.(*net.UnixConn); ok {
		if err := uc.CloseWrite(); err != nil {
			return "", fmt.Errorf("closing write side: %w", err)
		}
	}

	out, err := io.ReadAll(conn)
	if err != nil {
		return "", fmt.Errorf("reading reply: %w", err)
	}

	return string(out), nil
}

// Status fetches the snapshot of a running daemon.
func Status(sock string) (Snapshot, error) {
	out, err := SendCommand(sock, StatusCommand)
	if err != nil {
		return Snapshot{}, err
	}

	var s Snapshot
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding status: %w", err)
	}
	return s, nil
}
