// Package files provides the save and open commands.
package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/bootstrap"
	"github.com/leefowlercu/weatherfile/internal/cmdutil"
)

// Flag variables
var (
	saveDir     string
	saveContent string
)

// SaveCmd saves the current result to a dated JSON file.
var SaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current result to a JSON file",
	Long: "Save the current result to a JSON file.\n\n" +
		"Writes the result, a UTC timestamp and a format tag to weather_YYYY-MM-DD.json " +
		"in the output directory (files.output_dir, default the working directory). " +
		"An existing file is never overwritten; a numeric suffix is added instead.\n\n" +
		"The path of the written file is printed on success.",
	Example: `  # Save the current result
  weatherfile save

  # Save into a specific directory
  weatherfile save --dir ~/weather

  # Save arbitrary text without touching the current result
  weatherfile save --content "Sunny all week"`,
	Args:    cobra.NoArgs,
	PreRunE: validateSave,
	RunE:    runSave,
}

func init() {
	registerSaveFlags(SaveCmd)
}

func registerSaveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&saveDir, "dir", "d", "", "Output directory (default: files.output_dir)")
	cmd.Flags().StringVarP(&saveContent, "content", "c", "", "Text to save instead of the current result")
}

func validateSave(cmd *cobra.Command, args []string) error {
	if saveDir != "" {
		resolved, err := cmdutil.ResolvePath(saveDir)
		if err != nil {
			return fmt.Errorf("invalid output directory %q; %w", saveDir, err)
		}
		saveDir = resolved
	}

	cmd.SilenceUsage = true
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	app, err := cmdutil.OpenApp(cmd, bootstrap.WithOutputDir(saveDir))
	if err != nil {
		return err
	}
	defer app.Close()

	content := saveContent
	if !cmd.Flags().Changed("content") {
		content, err = app.Session.Current(cmd.Context())
		if err != nil {
			return err
		}
	}

	artifact, err := app.Exporter.Save(cmd.Context(), content)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), artifact.Location)
	return nil
}
