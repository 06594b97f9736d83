package log

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// DefaultClipLength is the number of bytes kept of a long string value.
const DefaultClipLength = 256

// ClipHandler wraps an slog.Handler and shortens long string attributes.
// It intercepts log records and clips attribute values before passing them
// to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type ClipHandler struct {
	// handler is the underlying slog handler that receives clipped records.
	handler slog.Handler

	// limit is the maximum number of bytes kept of a string value.
	limit int
}

// NewClipHandler creates a new ClipHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive limit
// selects DefaultClipLength.
func NewClipHandler(handler slog.Handler, limit int) *ClipHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if limit <= 0 {
		limit = DefaultClipLength
	}
	return &ClipHandler{handler: handler, limit: limit}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *ClipHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clips the record's attributes and passes it to the underlying handler.
func (h *ClipHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(h.clipAttr(a))
		return true
	})

	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are clipped before being added.
func (h *ClipHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clipped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clipped[i] = h.clipAttr(a)
	}
	return &ClipHandler{handler: h.handler.WithAttrs(clipped), limit: h.limit}
}

// WithGroup returns a new handler with the given group name.
func (h *ClipHandler) WithGroup(name string) slog.Handler {
	return &ClipHandler{handler: h.handler.WithGroup(name), limit: h.limit}
}

// clipAttr clips a single attribute, recursively handling groups.
func (h *ClipHandler) clipAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		attrs := v.Group()
		clipped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			clipped[i] = h.clipAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clipped...)}
	}

	if v.Kind() == slog.KindString {
		return slog.String(a.Key, Clip(v.String(), h.limit))
	}

	return slog.Attr{Key: a.Key, Value: v}
}

// Clip shortens s to at most limit bytes without splitting a UTF-8
// sequence, and appends how many bytes were dropped.
func Clip(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s…[+%d bytes]", s[:cut], len(s)-cut)
}
