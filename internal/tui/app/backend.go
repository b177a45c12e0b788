package app

import (
	"context"

	"github.com/leefowlercu/weatherfile/internal/bootstrap"
	"github.com/leefowlercu/weatherfile/internal/cmdutil"
	"github.com/leefowlercu/weatherfile/internal/export"
	"github.com/leefowlercu/weatherfile/internal/ingest"
	"github.com/leefowlercu/weatherfile/internal/weather"
)

// Backend runs the operations behind each key binding. Outcomes are reported
// through the presenter the backend was built with; the returned error is
// only used to decide whether the model still needs to say something.
type Backend interface {
	Lookup(ctx context.Context, action weather.Action, city string) error
	Save(ctx context.Context, content string) error
	Open(ctx context.Context, path string) error
	Clear(ctx context.Context) error
	Current(ctx context.Context) (string, error)
}

// AppBackend adapts a wired application to Backend.
type AppBackend struct {
	app *bootstrap.App
}

// NewBackend creates a Backend over app.
func NewBackend(app *bootstrap.App) *AppBackend {
	return &AppBackend{app: app}
}

// Lookup implements Backend.
func (b *AppBackend) Lookup(ctx context.Context, action weather.Action, city string) error {
	svc, err := b.app.Weather()
	if err != nil {
		return err
	}
	return svc.Run(ctx, action, city)
}

// Save implements Backend.
func (b *AppBackend) Save(ctx context.Context, content string) error {
	_, err := b.app.Exporter.Save(ctx, content)
	return err
}

// Open implements Backend. A path that cannot be resolved is returned
// without a notification.
func (b *AppBackend) Open(ctx context.Context, path string) error {
	resolved, err := cmdutil.ResolvePath(path)
	if err != nil {
		return err
	}
	_, err = b.app.Importer.ImportPath(ctx, resolved, "")
	return err
}

// Clear implements Backend.
func (b *AppBackend) Clear(ctx context.Context) error {
	return b.app.Session.Clear(ctx)
}

// Current implements Backend.
func (b *AppBackend) Current(ctx context.Context) (string, error) {
	return b.app.Session.Current(ctx)
}

var _ Backend = (*AppBackend)(nil)

// reported lists errors the core has already announced to the user.
var reported = []error{
	weather.ErrEmptyCity,
	export.ErrEmptyContent,
	export.ErrSaveInProgress,
	export.ErrSerialization,
	ingest.ErrNoFileSelected,
	ingest.ErrFileTooLarge,
	ingest.ErrUnsupportedType,
	ingest.ErrRead,
}
