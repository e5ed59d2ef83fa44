package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dsrosen6/hyprevents/internal/app"
	"github.com/dsrosen6/hyprevents/internal/event"
	"github.com/dsrosen6/hyprevents/internal/hyprctl"
	"github.com/dsrosen6/hyprevents/internal/listener"
	"github.com/dsrosen6/hyprevents/internal/notify"
)

var (
	kindColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	fieldColor = color.New(color.FgHiBlack).SprintFunc()
)

// newListenCmd is the entry point to the daemon; meant to be run as a systemd
// user unit or as an exec-once in hyprland.
func newListenCmd() *cobra.Command {
	var (
		cooperative bool
		printEvents bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Run the event listener daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handleListen(cmd.Context(), cooperative, printEvents)
		},
	}

	cmd.Flags().BoolVar(&cooperative, "cooperative", false, "use the cooperative listener mode")
	cmd.Flags().BoolVar(&printEvents, "print", false, "print every event to stdout")
	return cmd
}

func handleListen(ctx context.Context, cooperative, printEvents bool) error {
	cfg, done, err := loadConfig()
	if err != nil {
		return err
	}
	defer done()

	hc, err := hyprctl.NewClient()
	if err != nil {
		return fmt.Errorf("creating hyprctl client: %w", err)
	}

	a := app.NewApp(cfg, hc)

	n, err := notify.Connect(ctx, cfg.Notify)
	if err != nil {
		slog.Warn("notifications disabled", "error", err)
	} else {
		defer n.Close()
		a.SetNotifier(n)
	}

	var opts app.ListenOptions
	if cooperative {
		m := listener.Cooperative
		opts.Mode = &m
	}
	if printEvents {
		opts.OnEvent = printEvent
	}

	slog.Info("initializing socket connection")
	if err := a.Listen(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("listener stopped")
	return nil
}

func printEvent(ev event.Event) {
	fields := event.Fields(ev)

	var b strings.Builder
	b.WriteString(kindColor(ev.Kind().String()))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(&b, " %s=%s", fieldColor(k), fields[k])
	}
	fmt.Println(b.String())
}
