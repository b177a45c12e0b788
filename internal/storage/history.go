package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ExportEntry is a saved envelope file.
type ExportEntry struct {
	ID        string
	FileName  string
	Path      string
	SizeBytes int64
	Checksum  string
	CreatedAt time.Time
}

// ImportEntry is a loaded file.
type ImportEntry struct {
	ID         string
	SourcePath string
	Kind       string
	SizeBytes  int64
	ImportedAt time.Time
}

// Activity types for HistoryEntry.
const (
	ActivityExport = "export"
	ActivityImport = "import"
)

// HistoryEntry is one row of the combined export and import history.
type HistoryEntry struct {
	ID        string
	Activity  string
	Name      string
	Detail    string
	SizeBytes int64
	At        time.Time
}

// AddExport stores an export entry and returns its ID. An ID is generated
// when the entry has none.
func (s *Storage) AddExport(ctx context.Context, e ExportEntry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (id, file_name, path, size_bytes, checksum, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.FileName, e.Path, e.SizeBytes, e.Checksum, e.CreatedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to add export; %w", err)
	}

	return e.ID, nil
}

// AddImport stores an import entry and returns its ID. An ID is generated
// when the entry has none.
func (s *Storage) AddImport(ctx context.Context, e ImportEntry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (id, source_path, kind, size_bytes, imported_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.SourcePath, e.Kind, e.SizeBytes, e.ImportedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to add import; %w", err)
	}

	return e.ID, nil
}

// ListExports returns the most recent exports first. A limit of zero or less
// returns all entries.
func (s *Storage) ListExports(ctx context.Context, limit int) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, path, size_bytes, checksum, created_at
		 FROM exports ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports; %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var e ExportEntry
		if err := rows.Scan(&e.ID, &e.FileName, &e.Path, &e.SizeBytes, &e.Checksum, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export; %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exports; %w", err)
	}

	return entries, nil
}

// ListImports returns the most recent imports first. A limit of zero or less
// returns all entries.
func (s *Storage) ListImports(ctx context.Context, limit int) ([]ImportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, kind, size_bytes, imported_at
		 FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT ?`,
		sqlLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports; %w", err)
	}
	defer rows.Close()

	var entries []ImportEntry
	for rows.Next() {
		var e ImportEntry
		if err := rows.Scan(&e.ID, &e.SourcePath, &e.Kind, &e.SizeBytes, &e.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import; %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating imports; %w", err)
	}

	return entries, nil
}

// ListHistory merges exports and imports, most recent first.
func (s *Storage) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	exports, err := s.ListExports(ctx, limit)
	if err != nil {
		return nil, err
	}
	imports, err := s.ListImports(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(exports)+len(imports))
	for _, e := range exports {
		entries = append(entries, HistoryEntry{
			ID:        e.ID,
			Activity:  ActivityExport,
			Name:      e.FileName,
			Detail:    e.Path,
			SizeBytes: e.SizeBytes,
			At:        e.CreatedAt,
		})
	}
	for _, e := range imports {
		entries = append(entries, HistoryEntry{
			ID:        e.ID,
			Activity:  ActivityImport,
			Name:      e.SourcePath,
			Detail:    e.Kind,
			SizeBytes: e.SizeBytes,
			At:        e.ImportedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// sqlLimit maps a non-positive limit to SQLite's "no limit".
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

