package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwappableHandler wraps a slog.Handler that can be atomically replaced at runtime.
// Handlers derived through WithAttrs or WithGroup share the same root, so a
// logger created with With() before Upgrade still follows the swap.
type SwappableHandler struct {
	root  *atomic.Pointer[slog.Handler]
	ops   []func(slog.Handler) slog.Handler
	cache atomic.Pointer[derived]
}

// derived caches the handler built from a given root.
type derived struct {
	base    *slog.Handler
	handler slog.Handler
}

// NewSwappableHandler creates a handler with an initial handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	root := &atomic.Pointer[slog.Handler]{}
	root.Store(&initial)
	return &SwappableHandler{root: root}
}

// Swap atomically replaces the underlying handler for this handler and
// every handler derived from it.
func (sh *SwappableHandler) Swap(newHandler slog.Handler) {
	sh.root.Store(&newHandler)
}

// current returns the root handler with this handler's attrs and groups applied.
func (sh *SwappableHandler) current() slog.Handler {
	base := sh.root.Load()
	if len(sh.ops) == 0 {
		return *base
	}
	if c := sh.cache.Load(); c != nil && c.base == base {
		return c.handler
	}

	h := *base
	for _, op := range sh.ops {
		h = op(h)
	}
	sh.cache.Store(&derived{base: base, handler: h})
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (sh *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return sh.current().Enabled(ctx, level)
}

// Handle handles the Record.
func (sh *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return sh.current().Handle(ctx, r)
}

// WithAttrs returns a derived SwappableHandler carrying attrs.
func (sh *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup returns a derived SwappableHandler scoped to group name.
func (sh *SwappableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return sh
	}
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (sh *SwappableHandler) derive(op func(slog.Handler) slog.Handler) *SwappableHandler {
	ops := make([]func(slog.Handler) slog.Handler, 0, len(sh.ops)+1)
	ops = append(ops, sh.ops...)
	ops = append(ops, op)
	return &SwappableHandler{root: sh.root, ops: ops}
}
