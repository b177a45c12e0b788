// Package lookup provides the current, forecast and coords commands.
package lookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/weather"
)

// CurrentCmd shows the current temperature for a city.
var CurrentCmd = &cobra.Command{
	Use:   "current <city>",
	Short: "Show the current temperature for a city",
	Long: "Show the current temperature for a city.\n\n" +
		"Queries the weather API and stores the answer as the current result, " +
		"replacing whatever was there. A failed lookup stores an error message instead.",
	Example: `  # Current temperature in Oslo
  weatherfile current Oslo

  # City names with spaces
  weatherfile current New York`,
	PreRunE: validateLookup,
	RunE:    runLookup(weather.ActionCurrent),
}

// ForecastCmd shows the upcoming forecast for a city.
var ForecastCmd = &cobra.Command{
	Use:   "forecast <city>",
	Short: "Show the upcoming forecast for a city",
	Long: "Show the upcoming forecast for a city.\n\n" +
		"Lists the next forecast points (every three hours) and stores them as the " +
		"current result. The number of points is set by weather.forecast_entries.",
	Example: `  # Forecast for Lisbon
  weatherfile forecast Lisbon`,
	PreRunE: validateLookup,
	RunE:    runLookup(weather.ActionForecast),
}

// CoordsCmd shows the coordinates of a city.
var CoordsCmd = &cobra.Command{
	Use:   "coords <city>",
	Short: "Show the latitude and longitude of a city",
	Long: "Show the latitude and longitude of a city.\n\n" +
		"Resolves the city through the weather API and stores its coordinates as " +
		"the current result.",
	Example: `  # Coordinates of Nairobi
  weatherfile coords Nairobi`,
	PreRunE: validateLookup,
	RunE:    runLookup(weather.ActionCoordinates),
}

func validateLookup(cmd *cobra.Command, args []string) error {
	// An empty city is reported by the lookup itself.
	cmd.SilenceUsage = true
	return nil
}

func runLookup(action weather.Action) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := cmdutil.OpenApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		svc, err := app.Weather()
		if err != nil {
			if errors.Is(err, weather.ErrMissingAPIKey) {
				return fmt.Errorf("%w; set weather.api_key in the config file or export %s",
					err, app.Config.Weather.APIKeyEnv)
			}
			return err
		}

		return svc.Run(cmd.Context(), action, strings.Join(args, " "))
	}
}
