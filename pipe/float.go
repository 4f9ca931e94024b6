package pipe

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/spigot-labs/spigot/httperr"
)

// Float parses a request argument into a float64. String input must be a
// plain decimal number, optionally fractional or in scientific notation; a
// leading plus, surrounding whitespace, hex floats, and the textual Inf/NaN
// forms all fail. Numeric input passes through as long as it is finite.
type Float struct {
	cfg  config
	fail httperr.Factory
}

// NewFloat builds a float pipe.
func NewFloat(opts ...Option) *Float {
	cfg := newConfig(opts...)

	return &Float{cfg: cfg, fail: cfg.resolveFactory()}
}

// Name implements Pipe.
func (p *Float) Name() string {
	return "float"
}

// Transform implements Pipe.
func (p *Float) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	parsed, ok := floatValue(value)
	if !ok {
		return nil, p.fail(msgNumericExpected)
	}

	return parsed, nil
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, finite(v)
	case float32:
		return float64(v), finite(float64(v))
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return parseFloatString(v)
	case json.Number:
		return parseFloatString(v.String())
	default:
		return 0, false
	}
}

func parseFloatString(s string) (float64, bool) {
	if !floatString.MatchString(s) {
		return 0, false
	}

	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Matches the shape but overflows float64.
		return 0, false
	}

	return parsed, true
}
