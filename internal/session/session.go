// Package session keeps the current result text across invocations by
// persisting it to the store while forwarding to a presenter.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leefowlercu/weatherfile/internal/presenter"
	"github.com/leefowlercu/weatherfile/internal/storage"
)

// persistTimeout bounds a single result write.
const persistTimeout = 5 * time.Second

// ResultStore persists the current result text.
type ResultStore interface {
	GetResult(ctx context.Context) (*storage.ResultState, error)
	SetResult(ctx context.Context, text string, updatedAt time.Time) error
	ClearResult(ctx context.Context) error
}

// Session is a Presenter that saves every result update.
type Session struct {
	store  ResultStore
	inner  presenter.Presenter
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for stored results.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Session forwarding to inner.
func New(store ResultStore, inner presenter.Presenter, opts ...Option) *Session {
	s := &Session{
		store:  store,
		inner:  inner,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the stored result text, or "" when none is stored.
func (s *Session) Current(ctx context.Context) (string, error) {
	r, err := s.store.GetResult(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoResult) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load result; %w", err)
	}
	return r.Text, nil
}

// Restore pushes the stored result to the inner presenter without rewriting it.
func (s *Session) Restore(ctx context.Context) (string, error) {
	text, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if text != "" {
		s.inner.UpdateResult(text)
	}
	return text, nil
}

// Clear removes the stored result and blanks the inner presenter.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.ClearResult(ctx); err != nil {
		return fmt.Errorf("failed to clear result; %w", err)
	}
	s.inner.UpdateResult("")
	return nil
}

// UpdateResult implements presenter.Presenter.
func (s *Session) UpdateResult(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.store.SetResult(ctx, text, s.now()); err != nil {
		s.logger.Error("failed to persist result", "error", err)
	}
	s.inner.UpdateResult(text)
}

// Notify implements presenter.Presenter.
func (s *Session) Notify(message string, kind presenter.Kind) {
	s.inner.Notify(message, kind)
}

// SetBusy implements presenter.BusyReporter when the inner presenter does.
func (s *Session) SetBusy(action string, busy bool) {
	if b, ok := s.inner.(presenter.BusyReporter); ok {
		b.SetBusy(action, busy)
	}
}
