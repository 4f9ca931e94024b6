// Package logger configures log/slog for the process and hands out loggers
// enriched from the context: component name, request id, and any ambient
// key/values added with With. Error attributes are expanded into
// message/type pairs by the annotating handler installed at configure time.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spigot-labs/spigot/contexts"
	"github.com/spigot-labs/spigot/envcfg"
	"github.com/spigot-labs/spigot/lazy"
	"github.com/spigot-labs/spigot/shutdown"
)

// component names the part of the system producing logs. atomic.Value keeps
// reads safe against a concurrent reconfigure.
var component atomic.Value //nolint:gochecknoglobals

// configMutex serializes calls to ConfigureWithOptions, which mutate
// process-wide state (slog.SetDefault and log.Default).
var configMutex sync.Mutex //nolint:gochecknoglobals

// Context keys get an unexported type so other packages cannot collide with
// them by accident.
type contextKey string

// ErrInvalidLogOutput is returned when LOG_OUTPUT names an unknown
// destination.
var ErrInvalidLogOutput = errors.New("invalid log output")

// Options configures logging directly, bypassing the environment.
type Options struct {
	Component   string
	JSON        bool
	MinLevel    slog.Level
	LegacyLevel slog.Level
	Output      io.Writer
}

// ConfigureWithOptions installs the process-wide logger described by opts
// and returns it. Safe for concurrent use; calls are serialized.
func ConfigureWithOptions(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var handler slog.Handler

	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	} else {
		handler = slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	}

	// Expand error attributes into message/type pairs and surface
	// AnnotateError context.
	handler = &annotatingHandler{inner: handler}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	// Redirect the old log package into slog. It has no levels of its own,
	// so everything it prints lands at LegacyLevel.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, opts.LegacyLevel)

	component.Store(opts.Component)

	return logger
}

// Option tweaks the Options assembled from the environment before
// Configure applies them.
type Option func(*Options)

// Configure reads logging settings from the environment (LOG_JSON,
// LOG_LEVEL, LEGACY_LOG_LEVEL, LOG_OUTPUT) and installs the process-wide
// logger. The app name becomes the default component on every record.
func Configure(ctx context.Context, app string, opts ...Option) *slog.Logger {
	logJSON := envcfg.Bool(ctx, "LOG_JSON", envcfg.Default(false)).ValueOrFatal()

	minLevel := envcfg.LogLevel(ctx, "LOG_LEVEL", envcfg.Default(slog.LevelInfo)).ValueOrFatal()

	// Level for records arriving through the old log package.
	legacyLevel := envcfg.LogLevel(ctx, "LEGACY_LOG_LEVEL", envcfg.Default(slog.LevelInfo)).ValueOrFatal()

	output := envcfg.Map(envcfg.String(ctx, "LOG_OUTPUT"), func(name string) (*os.File, error) {
		switch name {
		case "stdout":
			return os.Stdout, nil
		case "stderr":
			return os.Stderr, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidLogOutput, name)
		}
	}).WithDefault(os.Stdout).ValueOrFatal()

	options := Options{
		Component:   app,
		JSON:        logJSON,
		MinLevel:    minLevel,
		LegacyLevel: legacyLevel,
		Output:      output,
	}

	for _, o := range opts {
		o(&options)
	}

	return ConfigureWithOptions(options)
}

// Fatal logs the message, runs shutdown hooks, and exits. The pause gives
// asynchronous log sinks a moment to flush.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)

	shutdown.Shutdown()

	time.Sleep(time.Second)

	os.Exit(1)
}

// WithMuted marks the context as muted or unmuted. Loggers obtained from a
// muted context discard everything; useful for health checks and other
// high-frequency paths.
func WithMuted(ctx context.Context, muted bool) context.Context {
	return contexts.WithValue(ctx, contextKey("mute"), muted)
}

// Mute marks the context as muted.
func Mute(ctx context.Context) context.Context {
	return WithMuted(ctx, true)
}

func isMuted(ctx context.Context) bool {
	muted, ok := contexts.GetValue[contextKey, bool](ctx, contextKey("mute"))

	return ok && muted
}

// WithComponent overrides the component name for loggers obtained from this
// context. The default component is set by Configure.
func WithComponent(ctx context.Context, name string) context.Context {
	return contexts.WithValue(ctx, contextKey("component"), name)
}

// GetComponent returns the component for the context, falling back to the
// process-wide default.
func GetComponent(ctx context.Context) string {
	if name, ok := contexts.GetValue[contextKey, string](ctx, contextKey("component")); ok {
		return name
	}

	if def, ok := component.Load().(string); ok {
		return def
	}

	return ""
}

// WithRequestId attaches a request id to the context; loggers obtained from
// it carry the id on every record.
func WithRequestId(ctx context.Context, requestId string) context.Context {
	return contexts.WithValue(ctx, contextKey("request_id"), requestId)
}

// GetRequestId returns the request id from the context, and whether one was
// set.
func GetRequestId(ctx context.Context) (string, bool) {
	return contexts.GetValue[contextKey, string](ctx, contextKey("request_id"))
}

// With returns a context whose loggers carry the given key/value pairs in
// addition to anything already attached.
func With(ctx context.Context, values ...any) context.Context {
	if len(values) == 0 && ctx != nil {
		return ctx
	}

	vals := append(getValues(ctx), values...)

	return contexts.WithValue(ctx, contextKey("loggerValues"), vals)
}

func getValues(ctx context.Context) []any {
	vals, ok := contexts.GetValue[contextKey, []any](ctx, contextKey("loggerValues"))
	if !ok {
		return nil
	}

	return vals
}

// hostname is the pod name under k8s, the machine name elsewhere.
//
//nolint:gochecknoglobals
var hostname = lazy.New(func() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}

	return h
})

// nullHandler discards everything; it backs loggers handed out for muted
// contexts.
type nullHandler struct{}

func (n *nullHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (n *nullHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n *nullHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n *nullHandler) WithGroup(_ string) slog.Handler {
	return n
}

var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns a logger enriched from the context: component, host, request
// id when present, and key/values added with With. Calling it without a
// context (or with nil) yields the process-wide defaults.
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := contexts.EnsureContext(ctx...)

	if isMuted(realCtx) {
		return nullLogger
	}

	logger := slog.Default().With(
		"component", GetComponent(realCtx),
		"host", hostname.Get())

	if requestId, ok := GetRequestId(realCtx); ok {
		logger = logger.With("request-id", requestId)
	}

	if vals := getValues(realCtx); vals != nil {
		logger = logger.With(vals...)
	}

	return logger
}
