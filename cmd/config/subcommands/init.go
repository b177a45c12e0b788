package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/config"
)

var (
	initForce bool
)

// InitCmd writes a configuration file populated with defaults.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with default values",
	Long: "Create a configuration file with default values.\n\n" +
		"Writes every setting with its default value to the config file so it can " +
		"be edited by hand. An existing file is left alone unless --force is given.",
	Example: `  # Create the default configuration file
  weatherfile config init

  # Overwrite an existing configuration file
  weatherfile config init --force`,
	Args:    cobra.NoArgs,
	PreRunE: validateInit,
	RunE:    runInit,
}

func init() {
	registerInitFlags(InitCmd)
}

func registerInitFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := config.DefaultConfigPath()

	if config.ConfigExistsAt(configPath) && !initForce {
		fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
		fmt.Fprintln(out, "Use --force to overwrite it.")
		return nil
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration written: %s\n", configPath)
	return nil
}
