package subcommands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leefowlercu/weatherfile/internal/config"
)

// redacted replaces secret values in show output.
const redacted = "********"

var (
	showRaw bool
)

// ShowCmd displays the current configuration.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current configuration",
	Long: "Display the current configuration.\n\n" +
		"Shows the current weatherfile configuration values. By default, shows " +
		"the effective configuration with defaults and environment overrides applied. " +
		"Use --raw to show only the contents of the config file. The weather API key " +
		"is masked in the effective view.",
	Example: `  # Show effective configuration
  weatherfile config show

  # Show only explicitly set values
  weatherfile config show --raw`,
	PreRunE: validateShow,
	RunE:    runShow,
}

func init() {
	registerShowFlags(ShowCmd)
}

func registerShowFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Show only explicitly configured values (no defaults)")
}

func validateShow(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if showRaw {
		return showRawConfig(out)
	}
	return showEffectiveConfig(out)
}

func showRawConfig(out io.Writer) error {
	configPath := config.GetConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "# No configuration file found")
			fmt.Fprintf(out, "# Default location: %s\n", configPath)
			return nil
		}
		return fmt.Errorf("failed to read config file; %w", err)
	}

	fmt.Fprintf(out, "# Configuration file: %s\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

func showEffectiveConfig(out io.Writer) error {
	cfg, err := config.Get()
	if err != nil {
		return err
	}
	if cfg.Weather.APIKey != "" {
		cfg.Weather.APIKey = redacted
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration; %w", err)
	}

	fmt.Fprintln(out, "# Effective configuration (with defaults)")
	fmt.Fprintf(out, "# Config file: %s\n", config.GetConfigPath())
	fmt.Fprintln(out, string(data))
	return nil
}
