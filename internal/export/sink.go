package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxNameAttempts bounds the search for a free file name in the output directory.
const maxNameAttempts = 1000

// Sink delivers an artifact to its destination and returns where it landed.
type Sink interface {
	Deliver(ctx context.Context, a *Artifact) (string, error)
}

// DirSink writes artifacts into a directory. An existing file with the same
// name is never overwritten; a numeric suffix is added instead, the same way
// browsers handle repeated downloads.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink writing into dir.
func NewDirSink(dir string) *DirSink {
	if dir == "" {
		dir = "."
	}
	return &DirSink{dir: dir}
}

// Dir returns the output directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Deliver writes the artifact and returns the final path.
func (s *DirSink) Deliver(ctx context.Context, a *Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a == nil || a.Name == "" {
		return "", errors.New("artifact has no name")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q; %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".weatherfile-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file; %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write artifact; %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to set file permissions; %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file; %w", err)
	}

	for i := 0; i < maxNameAttempts; i++ {
		target := filepath.Join(s.dir, candidateName(a.Name, i))
		// os.Link fails if target exists, which makes the claim atomic.
		if err := os.Link(tmpPath, target); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return s.copyFallback(tmpPath, a.Name)
		}
		return target, nil
	}

	return "", fmt.Errorf("no free file name for %q in %s", a.Name, s.dir)
}

// copyFallback is used on filesystems without hard link support.
func (s *DirSink) copyFallback(tmpPath, name string) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		target := filepath.Join(s.dir, candidateName(name, i))
		dst, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to create %q; %w", target, err)
		}

		src, err := os.Open(tmpPath)
		if err != nil {
			dst.Close()
			os.Remove(target)
			return "", fmt.Errorf("failed to reopen temp file; %w", err)
		}
		_, copyErr := io.Copy(dst, src)
		src.Close()
		closeErr := dst.Close()
		if copyErr != nil || closeErr != nil {
			os.Remove(target)
			return "", fmt.Errorf("failed to write %q; %w", target, errors.Join(copyErr, closeErr))
		}
		return target, nil
	}
	return "", fmt.Errorf("no free file name for %q in %s", name, s.dir)
}

// candidateName returns name for attempt 0 and name_<n> for later attempts.
func candidateName(name string, attempt int) string {
	if attempt == 0 {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%d%s", base, attempt, ext)
}
