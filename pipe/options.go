package pipe

import (
	"net/http"

	"github.com/spigot-labs/spigot/httperr"
)

// config is the options snapshot shared by every pipe kind. Each pipe keeps
// exactly one copy, taken at construction; the optional bypass and failure
// building both read that same copy, so the two can never disagree.
type config struct {
	status   int
	factory  httperr.Factory
	optional bool
}

// Option configures failure handling and optionality for a pipe.
type Option func(*config)

// WithStatus sets the HTTP status of the default failure error. It is
// ignored when WithFactory is also given. Defaults to 400 Bad Request.
func WithStatus(status int) Option {
	return func(c *config) {
		c.status = status
	}
}

// WithFactory replaces the failure error builder entirely. The factory's
// error is returned to callers verbatim; WithStatus has no effect once a
// factory is set.
func WithFactory(factory httperr.Factory) Option {
	return func(c *config) {
		c.factory = factory
	}
}

// Optional makes the pipe pass an absent value (untyped nil) through
// unchanged instead of failing. A present but malformed value still fails:
// optionality is about absence, never about leniency.
func Optional() Option {
	return func(c *config) {
		c.optional = true
	}
}

func newConfig(opts ...Option) config {
	cfg := config{status: http.StatusBadRequest}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// resolveFactory picks the exception factory for this configuration. It runs
// once per pipe, at construction; pipes cache the result and never resolve
// again on the transform path.
func (c config) resolveFactory() httperr.Factory {
	if c.factory != nil {
		return c.factory
	}

	return httperr.FactoryFor(c.status)
}
