package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dsrosen6/hyprevents/internal/hyprctl"
)

var (
	labelColor = color.New(color.Bold).SprintFunc()
	okColor    = color.New(color.FgGreen).SprintFunc()
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the active workspace, window and monitors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hc, err := hyprctl.NewClient()
			if err != nil {
				return fmt.Errorf("creating hyprctl client: %w", err)
			}

			ctx := cmd.Context()
			ws, err := hc.ActiveWorkspace(ctx)
			if err != nil {
				return err
			}

			win, err := hc.ActiveWindow(ctx)
			if err != nil {
				return err
			}

			mm, err := hc.ListMonitors(ctx)
			if err != nil {
				return err
			}

			printState(cmd.OutOrStdout(), ws, win, mm)
			return nil
		},
	}
}

func printState(w io.Writer, ws hyprctl.Workspace, win *hyprctl.Window, mm hyprctl.MonitorMap) {
	fmt.Fprintf(w, "%s %s (id %d) on %s\n", labelColor("Workspace:"), ws.Name, ws.ID, ws.Monitor)

	if win == nil {
		fmt.Fprintf(w, "%s none\n", labelColor("Window:"))
	} else {
		fmt.Fprintf(w, "%s %s %q [%s]\n", labelColor("Window:"), win.Class, win.Title, win.Address)
	}

	fmt.Fprintln(w, labelColor("Monitors:"))
	for _, name := range slices.Sorted(maps.Keys(mm)) {
		m := mm[name]
		mark := " "
		if m.Focused {
			mark = okColor("*")
		}
		fmt.Fprintf(w, "  %s %s\n", mark, strings.TrimSpace(m.String()))
	}
}

func newDispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <dispatcher> [args...]",
		Short: "Send a dispatcher to Hyprland",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, err := hyprctl.NewClient()
			if err != nil {
				return fmt.Errorf("creating hyprctl client: %w", err)
			}

			if err := hc.Dispatch(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), okColor("ok"))
			return nil
		},
	}
}
