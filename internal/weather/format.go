package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultForecastEntries is how many forecast points are rendered.
const DefaultForecastEntries = 5

// FormatCurrent renders the current temperature line.
func FormatCurrent(c *Current) string {
	return fmt.Sprintf("Current temperature in %s is %s°C", c.Name, formatNumber(c.Main.Temp))
}

// FormatForecast renders the first n forecast entries under a header naming
// the city as the user typed it.
func FormatForecast(city string, f *Forecast, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s:\n", city)

	entries := f.List
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s°C\n", e.DtTxt, formatNumber(e.Main.Temp))
	}

	return b.String()
}

// FormatCoordinates renders the latitude and longitude of a location.
func FormatCoordinates(c *Current) string {
	return fmt.Sprintf("Coordinates of %s:\nLatitude: %s, Longitude: %s",
		c.Name, formatNumber(c.Coord.Lat), formatNumber(c.Coord.Lon))
}

// formatNumber prints the shortest representation, so 15 stays "15" and 4.25 stays "4.25".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
