// Package history provides the history command.
package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/storage"
)

// DefaultLimit is the number of entries shown when --limit is not given.
const DefaultLimit = 20

// Flag variables
var (
	historyLimit   int
	historyVerbose bool
)

// HistoryCmd lists recent saves and opens.
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently saved and opened files",
	Long: "List recently saved and opened files.\n\n" +
		"Every successful save and open is recorded in the session database. " +
		"Entries are listed newest first.",
	Example: `  # Show the last 20 entries
  weatherfile history

  # Show everything with full details
  weatherfile history --limit 0 --verbose`,
	Args:    cobra.NoArgs,
	PreRunE: validateHistory,
	RunE:    runHistory,
}

func init() {
	registerHistoryFlags(HistoryCmd)
}

func registerHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", DefaultLimit, "Maximum number of entries (0 = all)")
	cmd.Flags().BoolVarP(&historyVerbose, "verbose", "v", false, "Show paths, checksums and exact times")
}

func validateHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("invalid limit %d; must be 0 or greater", historyLimit)
	}

	cmd.SilenceUsage = true
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := cmdutil.OpenApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	entries, err := app.Store.ListHistory(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history; %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No files saved or opened yet.")
		return nil
	}

	fmt.Fprintf(out, "Recent activity (%d):\n\n", len(entries))

	if historyVerbose {
		for _, e := range entries {
			printVerboseEntry(out, e)
		}
		return nil
	}

	fmt.Fprintf(out, "%-8s %-32s %-10s %s\n", "ACTIVITY", "NAME", "SIZE", "WHEN")
	fmt.Fprintf(out, "%-8s %-32s %-10s %s\n", strings.Repeat("-", 8), strings.Repeat("-", 32), strings.Repeat("-", 10), strings.Repeat("-", 16))
	for _, e := range entries {
		printTableRow(out, e)
	}
	return nil
}

func printTableRow(out io.Writer, e storage.HistoryEntry) {
	name := e.Name
	if len(name) > 32 {
		name = "..." + name[len(name)-29:]
	}
	fmt.Fprintf(out, "%-8s %-32s %-10s %s\n", e.Activity, name, humanize.IBytes(uint64(e.SizeBytes)), humanize.Time(e.At))
}

func printVerboseEntry(out io.Writer, e storage.HistoryEntry) {
	fmt.Fprintf(out, "  %s %s\n", strings.ToUpper(e.Activity[:1])+e.Activity[1:], e.Name)
	fmt.Fprintf(out, "    ID: %s\n", e.ID)
	switch e.Activity {
	case storage.ActivityExport:
		fmt.Fprintf(out, "    Path: %s\n", e.Detail)
	case storage.ActivityImport:
		fmt.Fprintf(out, "    Kind: %s\n", e.Detail)
	}
	fmt.Fprintf(out, "    Size: %s (%s bytes)\n", humanize.IBytes(uint64(e.SizeBytes)), humanize.Comma(e.SizeBytes))
	fmt.Fprintf(out, "    When: %s (%s)\n", e.At.Local().Format("2006-01-02 15:04:05"), humanize.Time(e.At))
	fmt.Fprintln(out)
}
