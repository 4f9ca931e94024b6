package pipe

import (
	"context"
	"strconv"

	"github.com/spigot-labs/spigot/httperr"
)

const msgNumericExpected = "Validation failed (numeric string is expected)"

// Int parses a request argument into an int64. It accepts a string matching
// ^-?\d+$ or a numeric value whose canonical decimal form does (so 5.0
// passes, 3.14 does not). Anything else fails, including values that match
// the shape but overflow int64.
type Int struct {
	cfg  config
	fail httperr.Factory
}

// NewInt builds an integer pipe.
func NewInt(opts ...Option) *Int {
	cfg := newConfig(opts...)

	return &Int{cfg: cfg, fail: cfg.resolveFactory()}
}

// Name implements Pipe.
func (p *Int) Name() string {
	return "int"
}

// Transform implements Pipe.
func (p *Int) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	form, ok := decimalForm(value)
	if !ok || !numericString.MatchString(form) {
		return nil, p.fail(msgNumericExpected)
	}

	parsed, err := strconv.ParseInt(form, 10, 64)
	if err != nil {
		// Right shape, but out of int64 range.
		return nil, p.fail(msgNumericExpected)
	}

	return parsed, nil
}
