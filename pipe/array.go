package pipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/alitto/pond/v2"

	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/httperr"
)

const msgArrayExpected = "Validation failed (parsable array expected)"

// defaultSeparator splits string input into elements.
const defaultSeparator = ","

// Array validates a multi-valued argument by running an item pipe over every
// element. String input is split on the separator; []string and []any input
// is taken as already split. Every failing element is reported, not just the
// first: the item errors are joined, labeled with their index, and attached
// as the cause of the array-level error, reachable through errors.Is/As.
type Array struct {
	cfg         config
	fail        httperr.Factory
	item        Pipe
	separator   string
	concurrency int
}

// NewArray builds an array pipe splitting string input on "," and validating
// elements sequentially.
func NewArray(item Pipe, opts ...Option) *Array {
	return NewArraySplit(item, defaultSeparator, opts...)
}

// NewArraySplit builds an array pipe with a custom separator. An empty
// separator falls back to ",".
func NewArraySplit(item Pipe, separator string, opts ...Option) *Array {
	return NewArrayConcurrent(item, separator, 1, opts...)
}

// NewArrayConcurrent builds an array pipe that validates up to concurrency
// elements at once on a worker pool. Concurrency below 2 means sequential.
// Output order matches input order either way. The item pipe must be safe
// for concurrent use; every pipe in this package is.
func NewArrayConcurrent(item Pipe, separator string, concurrency int, opts ...Option) *Array {
	cfg := newConfig(opts...)

	if separator == "" {
		separator = defaultSeparator
	}

	return &Array{
		cfg:         cfg,
		fail:        cfg.resolveFactory(),
		item:        item,
		separator:   separator,
		concurrency: concurrency,
	}
}

// Name implements Pipe.
func (p *Array) Name() string {
	return "array(" + p.item.Name() + ")"
}

// Transform implements Pipe. On success it returns []any holding the item
// pipe's outputs in input order.
func (p *Array) Transform(ctx context.Context, value any, meta Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	items, ok := p.elements(value)
	if !ok {
		return nil, p.failure(nil)
	}

	out := make([]any, len(items))
	itemErrs := make([]error, len(items))

	if p.concurrency > 1 && len(items) > 1 {
		pool := pond.NewPool(p.concurrency)

		for i, raw := range items {
			pool.Submit(func() {
				out[i], itemErrs[i] = p.item.Transform(ctx, raw, meta)
			})
		}

		pool.StopAndWait()
	} else {
		for i, raw := range items {
			out[i], itemErrs[i] = p.item.Transform(ctx, raw, meta)
		}
	}

	var failed errors.Collection

	for i, err := range itemErrs {
		if err != nil {
			failed.Add(fmt.Errorf("item %d: %w", i, err))
		}
	}

	if failed.HasError() {
		return nil, p.failure(failed.Err())
	}

	return out, nil
}

// elements normalizes the supported input shapes to a []any. Splitting ""
// yields one empty element, which then fails the item pipe; an argument that
// is present but empty is malformed, not absent.
func (p *Array) elements(value any) ([]any, bool) {
	switch v := value.(type) {
	case string:
		parts := strings.Split(v, p.separator)
		items := make([]any, len(parts))

		for i, part := range parts {
			items[i] = part
		}

		return items, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}

		return items, true
	case []any:
		return v, true
	default:
		return nil, false
	}
}

// failure builds the array-level error, attaching cause (the joined item
// errors) when the factory produced an httperr.Error. Errors from a custom
// factory of any other type are returned untouched; there is nowhere safe to
// hang a cause on a foreign error value.
func (p *Array) failure(cause error) error {
	failed := p.fail(msgArrayExpected)

	if cause == nil {
		return failed
	}

	if httpErr, ok := failed.(*httperr.Error); ok {
		return httpErr.WithCause(cause)
	}

	return failed
}
