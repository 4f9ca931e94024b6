package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AnnotateError attaches slog key/value pairs to an error. The attributes
// survive wrapping and unwrapping, and the annotating handler hoists them
// onto the log record when the error is eventually logged.
//
//	if err != nil {
//	    return logger.AnnotateError(err, "argument", meta.Name, "pipe", p.Name())
//	}
//
// Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	var attrs []slog.Attr

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &slogError{
		err:   err,
		attrs: attrs,
	}
}

// slogError carries slog attributes alongside an error. It unwraps to the
// original error, so errors.Is and errors.As see straight through it.
type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

var _ error = (*slogError)(nil)

// annotatingHandler is a slog.Handler decorator. Every error-valued
// attribute is expanded into a group holding the error's message and
// concrete type, and attributes attached with AnnotateError are hoisted
// onto the record. All output goes through the wrapped handler.
type annotatingHandler struct {
	inner slog.Handler
}

var _ slog.Handler = (*annotatingHandler)(nil)

func (h *annotatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *annotatingHandler) Handle(ctx context.Context, record slog.Record) error {
	var (
		attrs    []slog.Attr
		hoisted  []slog.Attr
		expanded bool
	)

	record.Attrs(func(attr slog.Attr) bool {
		err, ok := attr.Value.Any().(error)
		if !ok {
			attrs = append(attrs, attr)

			return true
		}

		expanded = true

		// Annotations ride on the record, not inside the error group.
		var se *slogError
		if errors.As(err, &se) {
			hoisted = append(hoisted, se.attrs...)
			err = se.err
		}

		attrs = append(attrs, slog.Group(attr.Key,
			slog.String("message", err.Error()),
			slog.String("type", fmt.Sprintf("%T", err))))

		return true
	})

	if !expanded {
		return h.inner.Handle(ctx, record)
	}

	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(attrs...)
	r.AddAttrs(hoisted...)

	return h.inner.Handle(ctx, r)
}

func (h *annotatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &annotatingHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *annotatingHandler) WithGroup(name string) slog.Handler {
	return &annotatingHandler{inner: h.inner.WithGroup(name)}
}
