// Package cmd implements the finboard CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/finboard/internal/cli"
	"github.com/theirongolddev/finboard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		v, err := config.Get(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save it",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	keys := "Keys:\n  " + strings.Join(config.Keys(), "\n  ")
	configGetCmd.Long = keys
	configSetCmd.Long = keys
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [API]")
	fmt.Fprintf(out, "    Environment:    %s\n", cfg.API.Environment)
	if base, err := config.ResolveBaseURL(cfg); err != nil {
		fmt.Fprintf(out, "    Gateway:        unresolved (%v)\n", err)
	} else {
		fmt.Fprintf(out, "    Gateway:        %s\n", base)
	}
	fmt.Fprintf(out, "    Timeout:        %s\n", cfg.API.Timeout())
	fmt.Fprintf(out, "    Upload timeout: %s\n", cfg.API.UploadTimeout())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Notifications]")
	fmt.Fprintf(out, "    Enabled:        %v\n", cfg.Notifications.Enabled)
	fmt.Fprintf(out, "    Not found:      %v\n", cfg.Notifications.NotFound)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Display]")
	cli.Apply(cli.ByName(cfg.Appearance.Theme))
	if name := cli.Active().Name; name != cfg.Appearance.Theme {
		fmt.Fprintf(out, "    Theme:          %s (unknown, using %s)\n", cfg.Appearance.Theme, name)
	} else {
		fmt.Fprintf(out, "    Theme:          %s\n", name)
	}
	fmt.Fprintf(out, "    Currency:       %s\n", cfg.Currency.Symbol)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Reminders]")
	fmt.Fprintf(out, "    Days ahead:     %d\n", cfg.Reminders.DaysAhead)
	fmt.Fprintf(out, "    Interval:       %s\n", cfg.Reminders.Interval())
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Session store: %s\n", config.SessionPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// Start from the file alone. Build, flag and env overrides are not
	// persisted, so api.environment is written only when set here.
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := config.Set(&cfg, args[0], args[1]); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n  Saved to %s\n", args[0], args[1], config.ConfigPath())
	return nil
}
