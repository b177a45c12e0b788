package cmdutil

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/bootstrap"
	"github.com/leefowlercu/weatherfile/internal/config"
	"github.com/leefowlercu/weatherfile/internal/presenter"
)

// OpenApp loads the configuration and wires the application around a console
// presenter bound to the command's output streams. Callers must Close the app.
func OpenApp(cmd *cobra.Command, opts ...bootstrap.Option) (*bootstrap.App, error) {
	console := presenter.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return OpenAppWith(cmd, console, opts...)
}

// OpenAppWith is OpenApp with a caller-supplied presenter.
func OpenAppWith(cmd *cobra.Command, p presenter.Presenter, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration; %w", err)
	}

	base := []bootstrap.Option{bootstrap.WithLogger(slog.Default())}
	app, err := bootstrap.New(cmd.Context(), cfg, p, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// AnnotationConsoleLogging is a command annotation; the value "off" disables
// stderr log output while the command runs.
const AnnotationConsoleLogging = "weatherfile/console-logging"
