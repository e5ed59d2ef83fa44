// Package hyprctl sends requests over Hyprland's control socket, the same
// channel the hyprctl binary uses.
package hyprctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dsrosen6/hyprevents/internal/hypr"
)

const (
	unknownReqOutput = "unknown request"
	okOutput         = "ok"
)

var (
	ErrUnknownRequest = errors.New(unknownReqOutput)
	ErrInvalidJSON    = errors.New("invalid json reply")
)

// DispatchError is returned when Hyprland answers a dispatch with anything but "ok".
type DispatchError struct {
	Args  string
	Reply string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %q: %s", e.Args, e.Reply)
}

type Client struct {
	inst hypr.Instance
}

// NewClient returns a client for the instance found in the environment.
func NewClient() (*Client, error) {
	in, err := hypr.InstanceFromEnv()
	if err != nil {
		return nil, fmt.Errorf("finding hyprland instance: %w", err)
	}

	return NewClientForInstance(in), nil
}

func NewClientForInstance(in hypr.Instance) *Client {
	return &Client{inst: in}
}

// Request sends one raw request and returns the whole reply. Each request uses
// its own connection; Hyprland closes it after replying.
func (c *Client) Request(ctx context.Context, req string) ([]byte, error) {
	conn, err := c.inst.DialControl(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(dl); err != nil {
			return nil, fmt.Errorf("setting deadline: %w", err)
		}
	}

	if _, err := conn.Write([]byte(req)); err != nil {
		return nil, fmt.Errorf("writing request %q: %w", req, err)
	}

	out, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading reply to %q: %w", req, err)
	}

	return out, checkForErr(string(out))
}

// RequestJSON sends req with the JSON flag and validates the reply.
func (c *Client) RequestJSON(ctx context.Context, req string) ([]byte, error) {
	out, err := c.Request(ctx, "j/"+req)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(out) {
		return nil, fmt.Errorf("%s: %w", req, ErrInvalidJSON)
	}

	return out, nil
}

// Dispatch runs a dispatcher, e.g. "workspace 2" or "togglefloating".
func (c *Client) Dispatch(ctx context.Context, args string) error {
	out, err := c.Request(ctx, "dispatch "+args)
	if err != nil {
		return err
	}

	if reply := strings.TrimSpace(string(out)); reply != okOutput {
		return &DispatchError{Args: args, Reply: reply}
	}

	return nil
}

func checkForErr(out string) error {
	out = strings.TrimSpace(out)
	switch out {
	case unknownReqOutput:
		return ErrUnknownRequest
	default:
		return nil
	}
}
