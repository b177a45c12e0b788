package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/leefowlercu/weatherfile/internal/filetype"
)

// File is a handle to a user-supplied file.
type File interface {
	// Name returns the base name of the file.
	Name() string

	// Size returns the size reported for the file in bytes.
	Size() int64

	// Type returns the declared media type, which may be empty.
	Type() string

	// Open opens the file for reading.
	Open() (io.ReadCloser, error)
}

// LocalFile is a File backed by the filesystem.
type LocalFile struct {
	path         string
	size         int64
	declaredType string
}

// OpenLocal stats path and returns a handle for it. When declaredType is
// empty the type is derived from the file extension.
func OpenLocal(path, declaredType string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q; %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	if declaredType == "" {
		declaredType = filetype.DetectMIME(path)
	}

	return &LocalFile{
		path:         path,
		size:         info.Size(),
		declaredType: declaredType,
	}, nil
}

// Path returns the filesystem path.
func (f *LocalFile) Path() string { return f.path }

// Name implements File.
func (f *LocalFile) Name() string { return filepath.Base(f.path) }

// Size implements File.
func (f *LocalFile) Size() int64 { return f.size }

// Type implements File.
func (f *LocalFile) Type() string { return f.declaredType }

// Open implements File.
func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// MemoryFile is a File held in memory, used for standard input.
type MemoryFile struct {
	name         string
	declaredType string
	data         []byte
}

// NewMemoryFile creates an in-memory file.
func NewMemoryFile(name, declaredType string, data []byte) *MemoryFile {
	return &MemoryFile{name: name, declaredType: declaredType, data: data}
}

// ReadMemoryFile buffers at most limit+1 bytes from r so that an oversize
// stream is still reported as oversize by validation.
func ReadMemoryFile(name, declaredType string, r io.Reader, limit int64) (*MemoryFile, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s; %w", name, err)
	}
	return NewMemoryFile(name, declaredType, data), nil
}

// Name implements File.
func (f *MemoryFile) Name() string { return f.name }

// Size implements File.
func (f *MemoryFile) Size() int64 { return int64(len(f.data)) }

// Type implements File.
func (f *MemoryFile) Type() string { return f.declaredType }

// Open implements File.
func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
