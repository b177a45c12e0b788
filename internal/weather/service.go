package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leefowlercu/weatherfile/internal/presenter"
)

// ErrEmptyCity is returned when a lookup is requested without a city.
var ErrEmptyCity = errors.New("city name is empty")

// Action is a weather lookup the user can request.
type Action string

const (
	ActionCurrent     Action = "current"
	ActionForecast    Action = "forecast"
	ActionCoordinates Action = "coordinates"
)

// failureText is the result text shown when an action fails.
var failureText = map[Action]string{
	ActionCurrent:     "Error fetching weather data.",
	ActionForecast:    "Error fetching forecast data.",
	ActionCoordinates: "Error fetching coordinates.",
}

// FailureText returns the result text used when action fails.
func FailureText(action Action) string {
	return failureText[action]
}

// Service runs lookups against a Provider and reports the outcome as result text.
type Service struct {
	provider        Provider
	presenter       presenter.Presenter
	logger          *slog.Logger
	forecastEntries int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithForecastEntries sets how many forecast points are rendered.
func WithForecastEntries(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.forecastEntries = n
		}
	}
}

// NewService creates a Service.
func NewService(provider Provider, p presenter.Presenter, opts ...ServiceOption) *Service {
	s := &Service{
		provider:        provider,
		presenter:       p,
		logger:          slog.Default(),
		forecastEntries: DefaultForecastEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs action for city. An empty city produces an error notification
// and leaves the result untouched. A failed lookup replaces the result with
// the action's failure text.
func (s *Service) Run(ctx context.Context, action Action, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		s.presenter.Notify("Please enter a city name.", presenter.KindError)
		return ErrEmptyCity
	}

	if _, ok := failureText[action]; !ok {
		return fmt.Errorf("unknown weather action %q", action)
	}

	text, err := s.lookup(ctx, action, city)
	if err != nil {
		s.logger.Error("weather lookup failed", "action", action, "city", city, "error", err)
		s.presenter.UpdateResult(failureText[action])
		return fmt.Errorf("%s lookup for %q failed; %w", action, city, err)
	}

	s.logger.Debug("weather lookup complete", "action", action, "city", city)
	s.presenter.UpdateResult(text)
	return nil
}

func (s *Service) lookup(ctx context.Context, action Action, city string) (string, error) {
	switch action {
	case ActionForecast:
		f, err := s.provider.Forecast(ctx, city)
		if err != nil {
			return "", err
		}
		return FormatForecast(city, f, s.forecastEntries), nil
	case ActionCoordinates:
		c, err := s.provider.Current(ctx, city)
		if err != nil {
			return "", err
		}
		return FormatCoordinates(c), nil
	default:
		c, err := s.provider.Current(ctx, city)
		if err != nil {
			return "", err
		}
		return FormatCurrent(c), nil
	}
}
