// Package tui provides the interactive terminal client command.
package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/tui/app"
)

// TuiCmd starts the interactive client.
var TuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive weather client",
	Long: "Start the interactive weather client.\n\n" +
		"Type a city and use the key bindings to look up the current temperature " +
		"(ctrl+w), the forecast (ctrl+f) or the coordinates (ctrl+g). The result can " +
		"be saved with ctrl+s and a saved or plain text file opened with ctrl+o. " +
		"ctrl+x clears the city and the result; ctrl+c quits.\n\n" +
		"The result is shared with the other commands, so `weatherfile show` prints " +
		"whatever the client displayed last.",
	Example: `  # Start the interactive client
  weatherfile tui`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{cmdutil.AnnotationConsoleLogging: "off"},
	PreRunE:     validateTui,
	RunE:        runTui,
}

func validateTui(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runTui(cmd *cobra.Command, args []string) error {
	bridge := app.NewBridge()

	application, err := cmdutil.OpenAppWith(cmd, bridge)
	if err != nil {
		return err
	}
	defer application.Close()

	if _, err := application.Weather(); err != nil {
		slog.Warn("weather lookups unavailable", "error", err)
	}

	model := app.New(cmd.Context(), app.NewBackend(application), app.WithLogger(slog.Default().With("component", "tui")))

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	bridge.Attach(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive client failed; %w", err)
	}
	return nil
}
