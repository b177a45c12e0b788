package session

import (
	"context"

	"github.com/leefowlercu/weatherfile/internal/export"
	"github.com/leefowlercu/weatherfile/internal/ingest"
	"github.com/leefowlercu/weatherfile/internal/storage"
)

// HistoryStore stores export and import entries.
type HistoryStore interface {
	AddExport(ctx context.Context, e storage.ExportEntry) (string, error)
	AddImport(ctx context.Context, e storage.ImportEntry) (string, error)
}

// History records exporter and importer activity in a HistoryStore.
type History struct {
	store HistoryStore
}

// NewHistory creates a History backed by store.
func NewHistory(store HistoryStore) *History {
	return &History{store: store}
}

// RecordExport implements export.History.
func (h *History) RecordExport(ctx context.Context, rec export.Record) error {
	_, err := h.store.AddExport(ctx, storage.ExportEntry{
		FileName:  rec.FileName,
		Path:      rec.Location,
		SizeBytes: rec.SizeBytes,
		Checksum:  rec.Checksum,
		CreatedAt: rec.CreatedAt,
	})
	return err
}

// RecordImport implements ingest.History.
func (h *History) RecordImport(ctx context.Context, rec ingest.Record) error {
	_, err := h.store.AddImport(ctx, storage.ImportEntry{
		SourcePath: rec.SourceName,
		Kind:       string(rec.Kind),
		SizeBytes:  rec.SizeBytes,
		ImportedAt: rec.ImportedAt,
	})
	return err
}

var (
	_ export.History = (*History)(nil)
	_ ingest.History = (*History)(nil)
)
