package weather

import "context"

// Provider fetches weather data for a city.
type Provider interface {
	Current(ctx context.Context, city string) (*Current, error)
	Forecast(ctx context.Context, city string) (*Forecast, error)
}

// Coord is a geographic position.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Main holds the measurements shared by current and forecast responses.
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

// Current is the response of the current weather endpoint.
type Current struct {
	Name  string `json:"name"`
	Coord Coord  `json:"coord"`
	Main  Main   `json:"main"`
}

// ForecastEntry is one point of a forecast.
type ForecastEntry struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  Main   `json:"main"`
}

// ForecastCity identifies the forecast location.
type ForecastCity struct {
	Name  string `json:"name"`
	Coord Coord  `json:"coord"`
}

// Forecast is the response of the forecast endpoint.
type Forecast struct {
	City ForecastCity    `json:"city"`
	List []ForecastEntry `json:"list"`
}
