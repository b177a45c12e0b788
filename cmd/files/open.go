package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/filetype"
	"github.com/leefowlercu/weatherfile/internal/ingest"
)

// stdinName is the path argument that reads from standard input.
const stdinName = "-"

// Flag variables
var (
	openType string
)

// OpenCmd loads a file into the current result.
var OpenCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Load a saved or plain text file as the current result",
	Long: "Load a saved or plain text file as the current result.\n\n" +
		"Files written by save restore their original text. Any other JSON or plain " +
		"text file becomes the current result verbatim. Files larger than " +
		"files.max_size_bytes (5 MiB by default) are rejected, as are files whose " +
		"type is not JSON or plain text.\n\n" +
		"The file type is taken from the extension unless --type is given. " +
		"Use - to read from standard input, which is treated as plain text by default.",
	Example: `  # Open a saved file
  weatherfile open weather_2024-03-07.json

  # Open a file without an extension as JSON
  weatherfile open ./export --type application/json

  # Read from standard input
  echo "Light rain" | weatherfile open -`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateOpen,
	RunE:    runOpen,
}

func init() {
	registerOpenFlags(OpenCmd)
}

func registerOpenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&openType, "type", "t", "", "Declared media type (default: derived from the extension)")
}

func validateOpen(cmd *cobra.Command, args []string) error {
	if args[0] == "" {
		return fmt.Errorf("path is required")
	}

	cmd.SilenceUsage = true
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	app, err := cmdutil.OpenApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	if args[0] != stdinName {
		resolved, err := cmdutil.ResolvePath(args[0])
		if err != nil {
			return fmt.Errorf("invalid path %q; %w", args[0], err)
		}
		_, err = app.Importer.ImportPath(cmd.Context(), resolved, openType)
		return err
	}

	declared := openType
	if declared == "" {
		declared = filetype.PlainText
	}
	file, err := ingest.ReadMemoryFile("stdin", declared, cmd.InOrStdin(), app.Importer.Constraints().MaxSize)
	if err != nil {
		return err
	}

	_, err = app.Importer.Import(cmd.Context(), file)
	return err
}
