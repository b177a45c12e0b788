package subcommands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/config"
)

// EditCmd opens the configuration file in an editor.
var EditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration file in your default editor",
	Long: "Edit the configuration file in your default editor.\n\n" +
		"Opens the weatherfile configuration file in the editor specified by " +
		"the EDITOR or VISUAL environment variable. If neither is set, attempts to " +
		"use common editors (vim, vi, nano) in order. A file with default values " +
		"is created first when none exists. The edited file is validated afterwards.",
	Example: `  # Edit configuration with default editor
  weatherfile config edit

  # Edit with a specific editor
  EDITOR=code weatherfile config edit`,
	PreRunE: validateEdit,
	RunE:    runEdit,
}

func validateEdit(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := config.GetConfigPath()

	if !config.ConfigExistsAt(configPath) {
		cfg := config.NewDefaultConfig()
		if err := config.Write(&cfg, configPath); err != nil {
			return fmt.Errorf("failed to create config file; %w", err)
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found; set EDITOR environment variable")
	}

	editorCmd := exec.CommandContext(cmd.Context(), editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error; %w", err)
	}

	if _, err := config.LoadFromPath(configPath); err != nil {
		fmt.Fprintf(out, "Configuration saved but is invalid:\n  %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	fmt.Fprintf(out, "Configuration saved: %s\n", configPath)
	return nil
}

func findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	editors := []string{"vim", "vi", "nano", "emacs"}
	for _, editor := range editors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}

	return ""
}
