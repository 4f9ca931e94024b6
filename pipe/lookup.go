package pipe

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/httperr"
	"github.com/spigot-labs/spigot/retry"
)

const msgLookupExpected = "Validation failed (resolvable key expected)"

// LookupFunc resolves a validated key to a domain value. Returning an error
// wrapping errors.ErrNotFound marks a definitive miss; wrap other permanent
// failures with retry.Abort to skip the retry loop. Everything else is
// treated as transient and retried.
type LookupFunc func(ctx context.Context, key any) (any, error)

// Lookup resolves an argument to a domain value ("the entity behind the id")
// through a caller-supplied function. Transient lookup failures are retried
// with capped exponential backoff and jitter; misses and aborted errors fail
// immediately. The default failure status is 404, since by the time a lookup
// runs the key itself has already been validated by earlier pipes.
type Lookup struct {
	cfg       config
	fail      httperr.Factory
	entity    string
	find      LookupFunc
	retryOpts []retry.Option
}

// NewLookup builds a lookup pipe for the named entity with default retry
// behavior (3 attempts, 50ms-500ms exponential backoff).
func NewLookup(entity string, find LookupFunc, opts ...Option) *Lookup {
	return NewLookupRetry(entity, find, defaultLookupRetry(), opts...)
}

// NewLookupRetry builds a lookup pipe with explicit retry options.
func NewLookupRetry(entity string, find LookupFunc, retryOpts []retry.Option, opts ...Option) *Lookup {
	// 404 unless the caller says otherwise; later options win.
	cfg := newConfig(append([]Option{WithStatus(http.StatusNotFound)}, opts...)...)

	return &Lookup{
		cfg:       cfg,
		fail:      cfg.resolveFactory(),
		entity:    entity,
		find:      find,
		retryOpts: retryOpts,
	}
}

func defaultLookupRetry() []retry.Option {
	return []retry.Option{
		retry.WithAttempts(3),
		retry.WithBackoff(retry.ExpBackoff{
			Base:   50 * time.Millisecond,
			Max:    500 * time.Millisecond,
			Factor: 2.0,
		}),
	}
}

// Name implements Pipe.
func (p *Lookup) Name() string {
	return "lookup(" + p.entity + ")"
}

// Transform implements Pipe.
func (p *Lookup) Transform(ctx context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	resolved, err := retry.DoValue(ctx, func(ctx context.Context) (any, error) {
		found, findErr := p.find(ctx, value)
		if findErr != nil && stderrors.Is(findErr, errors.ErrNotFound) {
			// A miss is definitive; retrying cannot make the entity appear.
			return nil, retry.Abort(findErr)
		}

		return found, findErr
	}, p.retryOpts...)
	if err != nil {
		// A dead context is the request's problem, not the key's.
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		return nil, p.failure(err)
	}

	return resolved, nil
}

// failure mirrors the array pipe: the underlying lookup error becomes the
// cause of the httperr.Error so callers can still reach it via errors.Is.
func (p *Lookup) failure(cause error) error {
	failed := p.fail(msgLookupExpected)

	if httpErr, ok := failed.(*httperr.Error); ok {
		return httpErr.WithCause(cause)
	}

	return failed
}
