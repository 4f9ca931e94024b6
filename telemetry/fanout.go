package telemetry

import (
	"context"
	"log/slog"

	"github.com/spigot-labs/spigot/errors"
)

// fanoutHandler hands every record to each inner handler that wants it.
type fanoutHandler struct {
	handlers []slog.Handler
}

func fanout(handlers ...slog.Handler) *fanoutHandler {
	return &fanoutHandler{handlers: handlers}
}

// Enabled reports true when any inner handler is enabled for the level.
func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, inner := range h.handlers {
		if inner.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle delivers the record to every enabled inner handler. Records are
// cloned per handler; slog records share backing state and must not be
// reused across handlers.
func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs errors.Collection

	for _, inner := range h.handlers {
		if inner.Enabled(ctx, record.Level) {
			errs.Add(inner.Handle(ctx, record.Clone()))
		}
	}

	return errs.Err()
}

// WithAttrs applies the attributes to every inner handler.
func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		next[i] = inner.WithAttrs(attrs)
	}

	return &fanoutHandler{handlers: next}
}

// WithGroup opens the group on every inner handler.
func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		next[i] = inner.WithGroup(name)
	}

	return &fanoutHandler{handlers: next}
}
