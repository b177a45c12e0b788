// Package result provides the show and clear commands for the stored result.
package result

import (
	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/presenter"
)

// ShowCmd prints the current result.
var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current result",
	Long: "Print the current result.\n\n" +
		"The current result is the text produced by the last lookup or opened " +
		"file. It is kept between runs until it is replaced or cleared.",
	Example: `  # Print the current result
  weatherfile show`,
	Args:    cobra.NoArgs,
	PreRunE: validateShow,
	RunE:    runShow,
}

// ClearCmd clears the current result.
var ClearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"close"},
	Short:   "Clear the current result",
	Long: "Clear the current result.\n\n" +
		"Removes the stored result so the next save has nothing to write until a " +
		"new lookup or open replaces it.",
	Example: `  # Clear the current result
  weatherfile clear`,
	Args:    cobra.NoArgs,
	PreRunE: validateClear,
	RunE:    runClear,
}

func validateShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := cmdutil.OpenApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	text, err := app.Session.Restore(cmd.Context())
	if err != nil {
		return err
	}
	if text == "" {
		app.Session.Notify("No result yet", presenter.KindInfo)
	}
	return nil
}

func validateClear(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	app, err := cmdutil.OpenApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Session.Clear(cmd.Context()); err != nil {
		return err
	}
	app.Session.Notify("Connection closed successfully", presenter.KindInfo)
	return nil
}
