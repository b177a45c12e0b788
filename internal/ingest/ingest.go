// Package ingest validates, reads and classifies files supplied for import
// into the current result.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/leefowlercu/weatherfile/internal/filetype"
	"github.com/leefowlercu/weatherfile/internal/presenter"
)

var (
	// ErrNoFileSelected is returned when no file handle is supplied.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrFileTooLarge is returned when the file exceeds the maximum size.
	ErrFileTooLarge = errors.New("file is too large")

	// ErrUnsupportedType is returned when the declared media type is not accepted.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrRead is returned when the file content cannot be read.
	ErrRead = errors.New("failed to read file")
)

// MaxFileSize is the default maximum accepted file size (5 MiB).
const MaxFileSize int64 = 5 * 1024 * 1024

// Constraints limits which files are accepted for import.
type Constraints struct {
	MaxSize       int64
	AcceptedTypes []string
}

// DefaultConstraints accepts JSON and plain text up to MaxFileSize.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxSize:       MaxFileSize,
		AcceptedTypes: []string{filetype.JSON, filetype.PlainText},
	}
}

// Record describes a completed import for history tracking.
type Record struct {
	SourceName string
	Kind       Kind
	SizeBytes  int64
	ImportedAt time.Time
}

// History records completed imports.
type History interface {
	RecordImport(ctx context.Context, rec Record) error
}

// Result is the outcome of a successful import.
type Result struct {
	Classification
	SourceName string
	SizeBytes  int64
}

// Importer runs validation, read and classification for one file at a time.
type Importer struct {
	constraints Constraints
	presenter   presenter.Presenter
	history     History
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithConstraints overrides the default constraints.
func WithConstraints(c Constraints) Option {
	return func(i *Importer) {
		if c.MaxSize > 0 {
			i.constraints.MaxSize = c.MaxSize
		}
		if len(c.AcceptedTypes) > 0 {
			i.constraints.AcceptedTypes = append([]string(nil), c.AcceptedTypes...)
		}
	}
}

// WithHistory records every successful import.
func WithHistory(h History) Option {
	return func(i *Importer) {
		i.history = h
	}
}

// WithLogger sets the logger for the importer.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the time source for history records.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewImporter creates an importer reporting to p.
func NewImporter(p presenter.Presenter, opts ...Option) *Importer {
	i := &Importer{
		constraints: DefaultConstraints(),
		presenter:   p,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Constraints returns the active constraints.
func (i *Importer) Constraints() Constraints {
	return i.constraints
}

// Import validates, reads and classifies file, then updates the result.
// On failure the result is left unchanged and an error notification is shown.
func (i *Importer) Import(ctx context.Context, file File) (*Result, error) {
	if err := i.Validate(file); err != nil {
		i.presenter.Notify(i.describe(err), presenter.KindError)
		return nil, err
	}

	text, err := i.Read(ctx, file)
	if err != nil {
		i.logger.Error("failed to read import file", "file", file.Name(), "error", err)
		i.presenter.Notify(i.describe(err), presenter.KindError)
		return nil, err
	}

	c := Classify(text)
	if c.Envelope != nil && !c.Envelope.CurrentVersion() {
		i.logger.Warn("envelope written with a different schema version",
			"file", file.Name(), "version", c.Envelope.Version)
	}

	i.presenter.UpdateResult(c.Text)
	i.presenter.Notify(c.Message(), c.NotificationKind())

	i.logger.Info("file imported", "file", file.Name(), "kind", c.Kind, "bytes", len(text))

	result := &Result{Classification: c, SourceName: file.Name(), SizeBytes: int64(len(text))}
	i.record(ctx, result)
	return result, nil
}

// ImportPath imports the file at path. A path that cannot be stat'ed, or is a
// directory, fails as ErrRead with an error notification like any other read
// failure. An empty declaredType is derived from the extension.
func (i *Importer) ImportPath(ctx context.Context, path, declaredType string) (*Result, error) {
	file, err := OpenLocal(path, declaredType)
	if err != nil {
		err = fmt.Errorf("%w; %w", ErrRead, err)
		i.logger.Error("failed to open import file", "path", path, "error", err)
		i.presenter.Notify(i.describe(err), presenter.KindError)
		return nil, err
	}
	return i.Import(ctx, file)
}

// Validate checks presence, size and declared type, in that order.
func (i *Importer) Validate(file File) error {
	if file == nil {
		return ErrNoFileSelected
	}

	if file.Size() > i.constraints.MaxSize {
		return fmt.Errorf("%w; %d bytes exceeds limit of %d", ErrFileTooLarge, file.Size(), i.constraints.MaxSize)
	}

	if !filetype.Matches(file.Type(), i.constraints.AcceptedTypes) {
		return fmt.Errorf("%w; declared type %q", ErrUnsupportedType, file.Type())
	}

	return nil
}

// Read returns the whole file as text. It makes a single attempt; any failure
// is wrapped in ErrRead. Invalid UTF-8 is replaced and a leading BOM dropped.
func (i *Importer) Read(ctx context.Context, file File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w; %w", ErrRead, err)
	}

	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w; %w", ErrRead, err)
	}
	defer rc.Close()

	limit := i.constraints.MaxSize
	data, err := io.ReadAll(io.LimitReader(&ctxReader{ctx: ctx, r: rc}, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w; %w", ErrRead, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w; %w", ErrRead, ErrFileTooLarge)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// describe maps an import error to its user-facing message.
func (i *Importer) describe(err error) string {
	switch {
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected"
	case errors.Is(err, ErrRead):
		return "Error reading file"
	case errors.Is(err, ErrFileTooLarge):
		return fmt.Sprintf("File is too large (maximum %s)", humanize.IBytes(uint64(i.constraints.MaxSize)))
	case errors.Is(err, ErrUnsupportedType):
		return "Unsupported file format. Use .json or .txt"
	default:
		return "Error reading file"
	}
}

func (i *Importer) record(ctx context.Context, r *Result) {
	if i.history == nil {
		return
	}
	rec := Record{
		SourceName: r.SourceName,
		Kind:       r.Kind,
		SizeBytes:  r.SizeBytes,
		ImportedAt: i.now(),
	}
	if err := i.history.RecordImport(ctx, rec); err != nil {
		i.logger.Warn("failed to record import history", "file", r.SourceName, "error", err)
	}
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
