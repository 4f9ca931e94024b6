// Package pipe validates and transforms individual request arguments before
// they reach application code. A pipe receives the raw argument value plus
// metadata describing where the argument came from, and either returns the
// transformed value or an HTTP-shaped error built by the pipe's exception
// factory (see the httperr package).
//
// Pipes are cheap to construct, hold no mutable state after construction,
// and are safe for concurrent use. An absent argument is represented by an
// untyped nil; a typed nil (say, a nil *string) is a present-but-malformed
// value and fails validation like any other wrong shape.
//
//	p := pipe.NewInt(pipe.WithStatus(http.StatusNotFound))
//	v, err := p.Transform(ctx, "42", pipe.Metadata{Source: pipe.SourceParam, Name: "id"})
package pipe

import "context"

// Pipe is the unit of argument validation and transformation.
type Pipe interface {
	// Name identifies the pipe in logs, metrics, and spans.
	Name() string

	// Transform validates value and returns its transformed form. On
	// validation failure it returns the error produced by the pipe's
	// exception factory, unchanged.
	Transform(ctx context.Context, value any, meta Metadata) (any, error)
}

// Func is a plain function usable as a transformation step.
type Func func(ctx context.Context, value any, meta Metadata) (any, error)

// FuncPipe lifts a Func into a named Pipe.
type FuncPipe struct {
	name string
	fn   Func
}

// NewFunc wraps fn as a Pipe with the given name.
func NewFunc(name string, fn Func) *FuncPipe {
	return &FuncPipe{name: name, fn: fn}
}

// Name implements Pipe.
func (p *FuncPipe) Name() string {
	return p.name
}

// Transform implements Pipe.
func (p *FuncPipe) Transform(ctx context.Context, value any, meta Metadata) (any, error) {
	return p.fn(ctx, value, meta)
}
