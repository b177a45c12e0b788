// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage weatherfile configuration",
	Long: "Manage weatherfile configuration.\n\n" +
		"The config command allows you to create, view, edit, validate and reset the " +
		"weatherfile configuration. Configuration is stored in a YAML file located at " +
		"~/.config/weatherfile/config.yaml by default. Every setting can also be " +
		"overridden with a WEATHERFILE_ environment variable, for example " +
		"WEATHERFILE_WEATHER_UNITS=imperial.",
}

func init() {
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.EditCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
}
