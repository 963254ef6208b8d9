// Package diag provides the slog.Handler backing the tool's one mandatory
// diagnostic line: "error: <message>", with no timestamp, level, or
// attributes attached.
package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

var _ slog.Handler = &Handler{}

// Handler renders every record as a bare "error: <message>" line,
// regardless of level, the way spec.md §6 specifies the diagnostic stream.
// It carries no state that would let a caller distinguish severities, by
// design: this handler backs a logger used for exactly one purpose.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// Enabled always reports true: the diagnostic logger has no level filter of
// its own, since it exists to emit the one message it is given.
func (h *Handler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle writes "error: <message>\n" and ignores any attributes the
// record carries.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := fmt.Fprintf(h.w, "error: %s\n", r.Message); err != nil {
		return fmt.Errorf("writing diagnostic: %w", err)
	}
	return nil
}

// WithAttrs returns the receiver unchanged: attributes are dropped, not
// accumulated, since the rendered line never includes them.
func (h *Handler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

// WithGroup returns the receiver unchanged, for the same reason as
// WithAttrs.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}
