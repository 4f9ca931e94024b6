// Package should wraps cleanup operations that are expected to succeed but
// may fail in practice. Failures are logged instead of returned, which keeps
// defer statements tidy.
package should

import (
	"io"
	"log/slog"
)

// Close closes the closer and logs the error, if any.
//
//	defer should.Close(f, "closing catalog file")
func Close(closer io.Closer, msg string) {
	if err := closer.Close(); err != nil {
		slog.Error(msg, "error", err)
	}
}

// Do runs a cleanup function and logs the error, if any.
//
//	defer should.Do(func() error { return telemetry.Shutdown(ctx) }, "telemetry shutdown")
func Do(cleanup func() error, msg string) {
	if err := cleanup(); err != nil {
		slog.Error(msg, "error", err)
	}
}
