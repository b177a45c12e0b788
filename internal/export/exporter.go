// Package export saves result text as a weather-data envelope file.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/leefowlercu/weatherfile/internal/export/envelopes"
	"github.com/leefowlercu/weatherfile/internal/filetype"
	"github.com/leefowlercu/weatherfile/internal/presenter"
)

var (
	// ErrEmptyContent is returned when there is no result text to save.
	ErrEmptyContent = errors.New("no data to save")

	// ErrSerialization is returned when the artifact cannot be built or delivered.
	ErrSerialization = errors.New("failed to save file")

	// ErrSaveInProgress is returned when Save is called while another save is pending.
	ErrSaveInProgress = errors.New("save already in progress")
)

// BusyAction is the action name reported to presenters while a save is pending.
const BusyAction = "Saving"

// DefaultCommitDelay is the pause between building an artifact and delivering it.
const DefaultCommitDelay = 500 * time.Millisecond

// Artifact is a serialized envelope ready for delivery.
type Artifact struct {
	// Name is the suggested file name.
	Name string

	// ContentType is the media type of Data.
	ContentType string

	// Data holds the encoded envelope.
	Data []byte

	// CreatedAt is the save time stamped into the envelope.
	CreatedAt time.Time

	// Location is where the sink stored the artifact. Empty until delivered.
	Location string
}

// Record describes a completed save for history tracking.
type Record struct {
	FileName  string
	Location  string
	SizeBytes int64
	Checksum  string
	CreatedAt time.Time
}

// History records completed saves.
type History interface {
	RecordExport(ctx context.Context, rec Record) error
}

// Exporter builds envelope artifacts and hands them to a Sink.
type Exporter struct {
	sink        Sink
	presenter   presenter.Presenter
	history     History
	logger      *slog.Logger
	now         func() time.Time
	commitDelay time.Duration
	pending     atomic.Bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithHistory records every successful save.
func WithHistory(h History) Option {
	return func(e *Exporter) {
		e.history = h
	}
}

// WithLogger sets the logger for the exporter.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCommitDelay sets the pause before delivery. Zero delivers immediately.
func WithCommitDelay(d time.Duration) Option {
	return func(e *Exporter) {
		if d >= 0 {
			e.commitDelay = d
		}
	}
}

// NewExporter creates an exporter delivering to sink and reporting to p.
func NewExporter(sink Sink, p presenter.Presenter, opts ...Option) *Exporter {
	e := &Exporter{
		sink:        sink,
		presenter:   p,
		logger:      slog.Default(),
		now:         time.Now,
		commitDelay: DefaultCommitDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileName returns the suggested file name for a save at t.
func FileName(t time.Time) string {
	return t.Format("weather_2006-01-02") + envelopes.FileExtension
}

// Build serializes content into an artifact without delivering it.
func (e *Exporter) Build(content string) (*Artifact, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	now := e.now()
	data, err := envelopes.New(content, now).Encode()
	if err != nil {
		return nil, fmt.Errorf("%w; %w", ErrSerialization, err)
	}

	return &Artifact{
		Name:        FileName(now),
		ContentType: envelopes.ContentType,
		Data:        data,
		CreatedAt:   now,
	}, nil
}

// Pending reports whether a save is in progress.
func (e *Exporter) Pending() bool {
	return e.pending.Load()
}

// Save builds an artifact from content and delivers it to the sink.
// Every outcome is reported to the presenter; the error is also returned.
func (e *Exporter) Save(ctx context.Context, content string) (*Artifact, error) {
	if content == "" {
		e.presenter.Notify("No data to save.", presenter.KindError)
		return nil, ErrEmptyContent
	}

	if !e.pending.CompareAndSwap(false, true) {
		e.presenter.Notify("A save is already in progress.", presenter.KindError)
		return nil, ErrSaveInProgress
	}
	defer e.pending.Store(false)

	artifact, err := e.Build(content)
	if err != nil {
		return nil, e.fail(err)
	}

	if br, ok := e.presenter.(presenter.BusyReporter); ok {
		br.SetBusy(BusyAction, true)
		defer br.SetBusy(BusyAction, false)
	}

	if err := e.wait(ctx); err != nil {
		return nil, e.fail(fmt.Errorf("%w; %w", ErrSerialization, err))
	}

	location, err := e.sink.Deliver(ctx, artifact)
	if err != nil {
		return nil, e.fail(fmt.Errorf("%w; %w", ErrSerialization, err))
	}
	artifact.Location = location

	e.logger.Info("result saved",
		"file", artifact.Name,
		"location", location,
		"bytes", len(artifact.Data))

	e.record(ctx, artifact)

	e.presenter.Notify("File saved successfully: "+artifact.Name, presenter.KindSuccess)
	return artifact, nil
}

// wait pauses for the commit delay unless ctx ends first.
func (e *Exporter) wait(ctx context.Context) error {
	if e.commitDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(e.commitDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Exporter) fail(err error) error {
	e.logger.Error("failed to save result", "error", err)
	e.presenter.Notify("Error saving file", presenter.KindError)
	return err
}

func (e *Exporter) record(ctx context.Context, a *Artifact) {
	if e.history == nil {
		return
	}
	rec := Record{
		FileName:  a.Name,
		Location:  a.Location,
		SizeBytes: int64(len(a.Data)),
		Checksum:  filetype.HashBytes(a.Data),
		CreatedAt: a.CreatedAt,
	}
	if err := e.history.RecordExport(ctx, rec); err != nil {
		e.logger.Warn("failed to record export history", "file", a.Name, "error", err)
	}
}
