// Package logging manages the process logger: text to stderr while
// starting up, then stderr plus a rotated JSON log file once config is known.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultConsoleLevel is the lowest level echoed to stderr after Upgrade.
// Lower levels still reach the log file.
const DefaultConsoleLevel = slog.LevelWarn

// FileConfig describes the rotated log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Manager handles logger lifecycle including bootstrap-to-full mode transitions.
// Components should obtain a logger via Logger() and use it for all logging.
type Manager struct {
	handler      *SwappableHandler
	logger       *slog.Logger
	logFile      *lumberjack.Logger
	level        *slog.LevelVar
	consoleLevel slog.Level
	stderr       io.Writer
	console      bool
	mu           sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithStderr redirects console output, mainly for tests.
func WithStderr(w io.Writer) Option {
	return func(m *Manager) {
		if w != nil {
			m.stderr = w
		}
	}
}

// WithConsoleLevel sets the lowest level echoed to stderr after Upgrade.
func WithConsoleLevel(level slog.Level) Option {
	return func(m *Manager) {
		m.consoleLevel = level
	}
}

// NewManager creates a logging manager in bootstrap mode.
// Bootstrap mode writes only to stderr using text format.
// Call Upgrade() after config is available to enable file logging.
func NewManager(opts ...Option) *Manager {
	level := new(slog.LevelVar)
	level.Set(DefaultLevel)

	m := &Manager{
		level:        level,
		consoleLevel: DefaultConsoleLevel,
		stderr:       os.Stderr,
		console:      true,
	}
	for _, opt := range opts {
		opt(m)
	}

	bootstrap := slog.NewTextHandler(m.stderr, &slog.HandlerOptions{Level: level})
	m.handler = NewSwappableHandler(bootstrap)
	m.logger = slog.New(m.handler)

	return m
}

// Logger returns the current logger instance.
// The returned logger is stable across Upgrade calls.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Upgrade transitions from bootstrap mode (stderr-only) to full mode
// (stderr text + rotated file JSON). Call after config is initialized.
// Returns error if the log file cannot be opened or created.
func (m *Manager) Upgrade(fc FileConfig, level slog.Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(fc.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q; %w", dir, err)
	}

	// lumberjack opens lazily; probe now so a bad path fails here.
	probe, err := os.OpenFile(fc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q; %w", fc.Path, err)
	}
	_ = probe.Close()

	if m.logFile != nil {
		_ = m.logFile.Close()
	}
	m.logFile = &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
	}

	m.level.Set(level)
	m.swapLocked()

	return nil
}

// SetConsole enables or disables the stderr copy of log output. Interactive
// mode disables it so log lines do not corrupt the screen.
func (m *Manager) SetConsole(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.console = enabled
	m.swapLocked()
}

// swapLocked rebuilds the handler from the current mode. Caller holds m.mu.
func (m *Manager) swapLocked() {
	var handlers []slog.Handler

	if m.console {
		console := &floorLeveler{base: m.level, floor: m.consoleLevel}
		if m.logFile == nil {
			console.floor = slog.LevelDebug - 4
		}
		handlers = append(handlers, slog.NewTextHandler(m.stderr, &slog.HandlerOptions{Level: console}))
	}

	if m.logFile != nil {
		handlers = append(handlers, slog.NewJSONHandler(m.logFile, &slog.HandlerOptions{Level: m.level}))
	}

	if len(handlers) == 0 {
		m.handler.Swap(slog.DiscardHandler)
		return
	}

	m.handler.Swap(slogmulti.Fanout(handlers...))
}

// SetLevel changes the log level at runtime.
// Applies immediately to all future log calls.
func (m *Manager) SetLevel(level slog.Level) {
	m.level.Set(level)
}

// Close cleanly shuts down the logger, closing any open file handles.
// Should be called during application shutdown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logFile != nil {
		err := m.logFile.Close()
		m.logFile = nil
		return err
	}
	return nil
}

// floorLeveler reports the higher of base and floor.
type floorLeveler struct {
	base  slog.Leveler
	floor slog.Level
}

func (l *floorLeveler) Level() slog.Level {
	if b := l.base.Level(); b > l.floor {
		return b
	}
	return l.floor
}
