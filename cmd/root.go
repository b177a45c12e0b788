package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	configcmd "github.com/leefowlercu/weatherfile/cmd/config"
	"github.com/leefowlercu/weatherfile/cmd/files"
	"github.com/leefowlercu/weatherfile/cmd/history"
	"github.com/leefowlercu/weatherfile/cmd/lookup"
	"github.com/leefowlercu/weatherfile/cmd/result"
	"github.com/leefowlercu/weatherfile/cmd/tui"
	"github.com/leefowlercu/weatherfile/cmd/version"
	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/config"
	"github.com/leefowlercu/weatherfile/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var weatherfileCmd = &cobra.Command{
	Use:   "weatherfile",
	Short: "Look up the weather and save or open results as files",
	Long: "weatherfile looks up current conditions, forecasts and coordinates for a city " +
		"and keeps the latest result between runs.\n\n" +
		"The current result can be saved to a dated JSON file and loaded back later. " +
		"Plain text and arbitrary JSON files can be opened as well; they replace the " +
		"current result verbatim.",
	PersistentPreRunE: runInitialize,
}

func init() {
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	weatherfileCmd.AddCommand(lookup.CurrentCmd)
	weatherfileCmd.AddCommand(lookup.ForecastCmd)
	weatherfileCmd.AddCommand(lookup.CoordsCmd)
	weatherfileCmd.AddCommand(result.ShowCmd)
	weatherfileCmd.AddCommand(result.ClearCmd)
	weatherfileCmd.AddCommand(files.SaveCmd)
	weatherfileCmd.AddCommand(files.OpenCmd)
	weatherfileCmd.AddCommand(history.HistoryCmd)
	weatherfileCmd.AddCommand(tui.TuiCmd)
	weatherfileCmd.AddCommand(configcmd.ConfigCmd)
	weatherfileCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	if err := config.Init(); err != nil {
		return err
	}

	levelStr := config.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		level = logging.DefaultLevel
		if levelStr != "" {
			logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
		}
	}

	fc := logging.FileConfig{
		Path:       config.GetPath("log_file"),
		MaxSizeMB:  config.GetInt("log_max_size_mb"),
		MaxBackups: config.GetInt("log_max_backups"),
	}
	if err := logManager.Upgrade(fc, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	if cmd.Annotations[cmdutil.AnnotationConsoleLogging] == "off" {
		logManager.SetConsole(false)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	weatherfileCmd.SilenceErrors = true
	weatherfileCmd.SilenceUsage = true

	defer func() { _ = logManager.Close() }()

	err := weatherfileCmd.Execute()

	if err != nil {
		cmd, _, _ := weatherfileCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = weatherfileCmd
		}

		fmt.Printf("Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Printf("\n")
			cmd.SetOut(os.Stdout)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
