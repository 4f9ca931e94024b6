package pipe

import (
	"context"
	"strings"
)

// Trim strips surrounding Unicode whitespace from string arguments. Values of
// any other type pass through untouched, as does absent input; the pipe never
// fails. Put it in front of stricter pipes so " 42 " still parses.
type Trim struct{}

// NewTrim builds a trim pipe.
func NewTrim() *Trim {
	return &Trim{}
}

// Name implements Pipe.
func (p *Trim) Name() string {
	return "trim"
}

// Transform implements Pipe.
func (p *Trim) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s), nil
	}

	return value, nil
}
