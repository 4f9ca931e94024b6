package pipe

import (
	"context"

	"github.com/spigot-labs/spigot/httperr"
)

const msgBooleanExpected = "Validation failed (boolean string is expected)"

// Bool parses a request argument into a bool. It accepts actual booleans,
// the lowercase strings "true" and "false", and the numeric forms 1 and 0
// (as strings or numbers). Nothing else: "TRUE", "yes", and 2 all fail.
type Bool struct {
	cfg  config
	fail httperr.Factory
}

// NewBool builds a boolean pipe.
func NewBool(opts ...Option) *Bool {
	cfg := newConfig(opts...)

	return &Bool{cfg: cfg, fail: cfg.resolveFactory()}
}

// Name implements Pipe.
func (p *Bool) Name() string {
	return "bool"
}

// Transform implements Pipe.
func (p *Bool) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	if b, ok := value.(bool); ok {
		return b, nil
	}

	// Numbers reduce to their decimal form, so 1 and "1" take the same path.
	form, ok := decimalForm(value)
	if !ok {
		return nil, p.fail(msgBooleanExpected)
	}

	switch form {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return nil, p.fail(msgBooleanExpected)
	}
}
