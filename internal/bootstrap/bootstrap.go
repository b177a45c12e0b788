// Package bootstrap assembles the session store, exporter, importer and
// weather service from a loaded configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leefowlercu/weatherfile/internal/config"
	"github.com/leefowlercu/weatherfile/internal/export"
	"github.com/leefowlercu/weatherfile/internal/ingest"
	"github.com/leefowlercu/weatherfile/internal/presenter"
	"github.com/leefowlercu/weatherfile/internal/session"
	"github.com/leefowlercu/weatherfile/internal/storage"
	"github.com/leefowlercu/weatherfile/internal/weather"
)

// App holds the wired components for one process.
type App struct {
	Config   *config.Config
	Store    *storage.Storage
	Session  *session.Session
	Exporter *export.Exporter
	Importer *ingest.Importer

	weather    *weather.Service
	weatherErr error
	logger     *slog.Logger
}

type options struct {
	logger    *slog.Logger
	outputDir string
	provider  weather.Provider
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutputDir overrides files.output_dir for saves.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithProvider replaces the HTTP weather client.
func WithProvider(p weather.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// New opens the session store and builds every component around inner.
// A missing weather API key does not fail New; it is reported by Weather.
func New(ctx context.Context, cfg *config.Config, inner presenter.Presenter, opts ...Option) (*App, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	store, err := storage.Open(ctx, config.ExpandPath(cfg.Storage.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store; %w", err)
	}

	sess := session.New(store, inner, session.WithLogger(o.logger))
	history := session.NewHistory(store)

	outputDir := cfg.Files.OutputDir
	if o.outputDir != "" {
		outputDir = o.outputDir
	}

	exporter := export.NewExporter(
		export.NewDirSink(config.ExpandPath(outputDir)),
		sess,
		export.WithHistory(history),
		export.WithLogger(o.logger.With("component", "export")),
		export.WithCommitDelay(cfg.Files.CommitDelay()),
	)

	importer := ingest.NewImporter(
		sess,
		ingest.WithConstraints(ingest.Constraints{
			MaxSize:       cfg.Files.MaxSizeBytes,
			AcceptedTypes: cfg.Files.AcceptedTypes,
		}),
		ingest.WithHistory(history),
		ingest.WithLogger(o.logger.With("component", "ingest")),
	)

	app := &App{
		Config:   cfg,
		Store:    store,
		Session:  sess,
		Exporter: exporter,
		Importer: importer,
		logger:   o.logger,
	}

	provider := o.provider
	if provider == nil {
		client, err := weather.NewClient(
			cfg.Weather.ResolveAPIKey(),
			weather.WithBaseURL(cfg.Weather.BaseURL),
			weather.WithUnits(cfg.Weather.Units),
			weather.WithTimeout(cfg.Weather.Timeout()),
			weather.WithRequestsPerMinute(cfg.Weather.RequestsPerMinute),
		)
		if err != nil {
			app.weatherErr = err
		} else {
			provider = client
		}
	}
	if provider != nil {
		app.weather = weather.NewService(
			provider,
			sess,
			weather.WithLogger(o.logger.With("component", "weather")),
			weather.WithForecastEntries(cfg.Weather.ForecastEntries),
		)
	}

	return app, nil
}

// Weather returns the weather service, or the error that prevented building it.
func (a *App) Weather() (*weather.Service, error) {
	if a.weather == nil {
		return nil, a.weatherErr
	}
	return a.weather, nil
}

// Close releases the session store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	if err := a.Store.Close(); err != nil {
		a.logger.Warn("failed to close session store", "error", err)
		return err
	}
	return nil
}
