package pipe

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// numericString is the only string shape the integer pipe accepts: optional
// single leading minus, then ASCII digits. No plus sign, no whitespace, no
// decimal point, no exponent, no empty string.
var numericString = regexp.MustCompile(`^-?\d+$`)

// floatString additionally allows a fractional part and a signed exponent.
// Hex floats and the textual Inf/NaN forms strconv would accept stay out.
var floatString = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?$`)

// decimalForm reduces a value of string or numeric runtime kind to its
// canonical decimal string. It returns false for every other kind and for
// non-finite floats. Strings pass through verbatim: validation of their
// shape is the caller's business.
func decimalForm(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		if !finite(float64(v)) {
			return "", false
		}

		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		if !finite(v) {
			return "", false
		}

		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
