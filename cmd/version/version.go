package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/version"
)

var (
	versionShort bool
)

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, and build date " +
		"of the current weatherfile binary. The same version is sent to the " +
		"weather API in the User-Agent header.",
	Example: `  # Display version information
  weatherfile version

  # Print only the version number
  weatherfile version --short`,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func init() {
	VersionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}

func validateVersion(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), info.Version)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return nil
}
