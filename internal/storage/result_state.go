package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoResult is returned when no result text has been stored.
var ErrNoResult = errors.New("no result stored")

// ResultState is the persisted current result text.
type ResultState struct {
	Text      string
	UpdatedAt time.Time
}

// GetResult returns the stored result text.
func (s *Storage) GetResult(ctx context.Context) (*ResultState, error) {
	var r ResultState
	err := s.db.QueryRowContext(ctx,
		"SELECT text, updated_at FROM result_state WHERE id = 1",
	).Scan(&r.Text, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoResult
		}
		return nil, fmt.Errorf("failed to get result; %w", err)
	}
	return &r, nil
}

// SetResult replaces the stored result text.
func (s *Storage) SetResult(ctx context.Context, text string, updatedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO result_state (id, text, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at`,
		text, updatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set result; %w", err)
	}
	return nil
}

// ClearResult removes the stored result text. Clearing an empty store is not an error.
func (s *Storage) ClearResult(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM result_state WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear result; %w", err)
	}
	return nil
}
