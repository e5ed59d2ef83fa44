package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dsrosen6/hyprevents/internal/app"
)

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Make the running daemon reread its config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := app.SendCommand(app.CommandSocket(), app.ReloadCommand)
			if err != nil {
				return fmt.Errorf("sending reload command: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okColor(out))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state tracked by the running daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.Status(app.CommandSocket())
			if err != nil {
				return fmt.Errorf("getting daemon status: %w", err)
			}
			printStatus(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func printStatus(w io.Writer, s app.Snapshot) {
	fmt.Fprintf(w, "%s %s on %s\n", labelColor("Workspace:"), s.ActiveWorkspace, s.ActiveMonitor)
	if s.ActiveWindow != nil {
		fmt.Fprintf(w, "%s %s %q\n", labelColor("Window:"), s.ActiveWindow.Class, s.ActiveWindow.Title)
	}
	if s.Submap != "" {
		fmt.Fprintf(w, "%s %s\n", labelColor("Submap:"), s.Submap)
	}
	fmt.Fprintf(w, "%s %v\n", labelColor("Fullscreen:"), s.Fullscreen)

	fmt.Fprintf(w, "%s %d\n", labelColor("Windows:"), len(s.Windows))
	for _, win := range s.Windows {
		float := ""
		if win.Floating {
			float = " (floating)"
		}
		fmt.Fprintf(w, "  %s %s on %s%s\n", win.Address, win.Class, win.Workspace, float)
	}

	if len(s.Urgent) > 0 {
		fmt.Fprintf(w, "%s %s\n", labelColor("Urgent:"), strings.Join(s.Urgent, ", "))
	}

	fmt.Fprintf(w, "%s %d\n", labelColor("Events:"), s.Events)
	for _, k := range slices.Sorted(maps.Keys(s.Counts)) {
		fmt.Fprintf(w, "  %-20s %d\n", k, s.Counts[k])
	}
}
