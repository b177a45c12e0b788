package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/weatherfile/internal/config"
	"github.com/leefowlercu/weatherfile/internal/ingest"
	"github.com/leefowlercu/weatherfile/internal/presenter"
	"github.com/leefowlercu/weatherfile/internal/weather"
)

type stubProvider struct{}

func (stubProvider) Current(ctx context.Context, city string) (*weather.Current, error) {
	return &weather.Current{Name: city, Main: weather.Main{Temp: 12}}, nil
}

func (stubProvider) Forecast(ctx context.Context, city string) (*weather.Forecast, error) {
	return &weather.Forecast{}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "state", "weatherfile.db")
	cfg.Files.OutputDir = filepath.Join(dir, "out")
	cfg.Files.CommitDelayMs = 0
	cfg.Weather.APIKeyEnv = "WEATHERFILE_TEST_UNSET_KEY"
	return &cfg
}

func TestNew_MissingAPIKey(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), presenter.NewRecorder())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	svc, err := app.Weather()
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, weather.ErrMissingAPIKey)
}

func TestNew_WithProvider(t *testing.T) {
	rec := presenter.NewRecorder()
	app, err := New(context.Background(), testConfig(t), rec, WithProvider(stubProvider{}))
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	svc, err := app.Weather()
	require.NoError(t, err)
	require.NoError(t, svc.Run(context.Background(), weather.ActionCurrent, "Oslo"))

	got, _ := rec.Result()
	assert.Equal(t, "Current temperature in Oslo is 12°C", got)

	stored, err := app.Session.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestNew_SaveAndOpen(t *testing.T) {
	cfg := testConfig(t)
	rec := presenter.NewRecorder()
	app, err := New(context.Background(), cfg, rec)
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	ctx := context.Background()

	artifact, err := app.Exporter.Save(ctx, "saved text")
	require.NoError(t, err)
	assert.Equal(t, cfg.Files.OutputDir, filepath.Dir(artifact.Location))

	file, err := ingest.OpenLocal(artifact.Location, "")
	require.NoError(t, err)
	res, err := app.Importer.Import(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, ingest.KindEnvelope, res.Kind)

	entries, err := app.Store.ListHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNew_OutputDirOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "elsewhere")
	app, err := New(context.Background(), testConfig(t), presenter.NewRecorder(), WithOutputDir(override))
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	artifact, err := app.Exporter.Save(context.Background(), "x")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(override, artifact.Name))
	assert.NoError(t, err)
}

func TestNew_ConstraintsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Files.MaxSizeBytes = 10
	cfg.Files.AcceptedTypes = []string{"text/plain"}

	app, err := New(context.Background(), cfg, presenter.NewRecorder())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	c := app.Importer.Constraints()
	assert.Equal(t, int64(10), c.MaxSize)
	assert.Equal(t, []string{"text/plain"}, c.AcceptedTypes)
}
