package pipe

import "context"

// Default replaces an absent argument with a configured fallback value.
// Present values pass through untouched, malformed or not; validation is a
// later pipe's job. Default never fails, so it carries no failure options.
type Default struct {
	value any
}

// NewDefault builds a default-value pipe.
func NewDefault(value any) *Default {
	return &Default{value: value}
}

// Name implements Pipe.
func (p *Default) Name() string {
	return "default"
}

// Transform implements Pipe.
func (p *Default) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil {
		return p.value, nil
	}

	return value, nil
}
