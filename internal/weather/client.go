// Package weather fetches current conditions and forecasts from an
// OpenWeatherMap-compatible API and renders them as result text.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/leefowlercu/weatherfile/internal/version"
)

const (
	DefaultBaseURL           = "https://api.openweathermap.org/data/2.5"
	DefaultUnits             = "metric"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerMinute = 60
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("weather API key is not configured")

// APIError is a non-2xx response from the weather API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather API request failed; status %d", e.StatusCode)
	}
	return fmt.Sprintf("weather API request failed; status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the weather API.
type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUnits sets the measurement units (metric, imperial, standard).
func WithUnits(units string) Option {
	return func(c *Client) {
		if units != "" {
			c.units = units
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRequestsPerMinute throttles outgoing requests. Zero or less disables throttling.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		units:      DefaultUnits,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	WithRequestsPerMinute(DefaultRequestsPerMinute)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Current implements Provider.
func (c *Client) Current(ctx context.Context, city string) (*Current, error) {
	var out Current
	if err := c.getJSON(ctx, "/weather", city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast implements Provider.
func (c *Client) Forecast(ctx context.Context, city string) (*Forecast, error) {
	var out Forecast
	if err := c.getJSON(ctx, "/forecast", city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, city string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed; %w", err)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request; %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach weather API; %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		_ = json.Unmarshal(body, &errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response; %w", err)
	}

	return nil
}

type errorResponse struct {
	Message string `json:"message"`
}
