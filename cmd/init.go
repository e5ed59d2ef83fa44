package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dsrosen6/hyprevents/internal/config"
	"github.com/dsrosen6/hyprevents/internal/event"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cfgFile
			if path == "" {
				def, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = def
			}

			cfg := config.Default(path)
			if err := runInitForm(cfg); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("validating config: %w", err)
			}

			if err := cfg.Write(); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", okColor(cfg.Path()))
			return nil
		},
	}
}

func runInitForm(cfg *config.Config) error {
	var kindOpts []string
	for _, k := range event.Kinds() {
		kindOpts = append(kindOpts, k.String())
	}

	grp := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Listener mode").
			Options(huh.NewOptions("blocking", "cooperative")...).
			Value(&cfg.Mode),
		huh.NewSelect[string]().
			Title("Log level").
			Options(huh.NewOptions("debug", "info", "warn", "error")...).
			Value(&cfg.Log.Level),
		huh.NewMultiSelect[string]().
			Title("Events to log (none selected logs all)").
			Options(huh.NewOptions(kindOpts...)...).
			Value(&cfg.LogEvents),
		huh.NewInput().
			Title("Log file (empty logs to stderr)").
			Value(&cfg.Log.File),
	)

	if err := form(grp).Run(); err != nil {
		return fmt.Errorf("running config form: %w", err)
	}

	return nil
}

func form(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(huh.ThemeBase())
}
