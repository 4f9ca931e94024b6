// Package redact keeps raw request-argument values out of logs. Pipeline
// failure logs run every argument value through a redaction policy before the
// value is attached to a log record, so identifiers stay debuggable while
// tokens and free-form input never land in log storage verbatim.
package redact

import (
	"context"
	"net/url"
	"strings"
)

// Marker replaces or terminates redacted content.
const Marker = "[redacted]"

// Action says how a single argument value is handled.
type Action int

const (
	// ActionKeep leaves the value as-is.
	ActionKeep Action = iota
	// ActionRedactFully replaces the whole value with the marker.
	ActionRedactFully
	// ActionRedactPartialWithMask keeps the first N runes and masks the rest
	// with asterisks, preserving the value's length.
	ActionRedactPartialWithMask
	// ActionRedactPartialTruncate keeps the first N runes and appends the
	// marker.
	ActionRedactPartialTruncate
	// ActionDelete drops the value entirely.
	ActionDelete
)

// Func decides how to redact one named argument value. It returns the action
// and, for the partial actions, how many leading runes stay visible.
type Func func(ctx context.Context, name, value string) (action Action, visible int)

// Partial keeps the first visible runes of value and handles the remainder
// according to truncate: append the marker when true, mask with asterisks
// when false. Values short enough to be fully visible come back unchanged.
func Partial(value string, visible int, truncate bool) string {
	runes := []rune(value)
	if len(runes) <= visible {
		return value
	}

	shown := string(runes[:visible])

	if truncate {
		return shown + Marker
	}

	return shown + strings.Repeat("*", len(runes)-visible)
}

// String applies a redaction policy to a single named value. A nil policy
// keeps the value.
func String(ctx context.Context, name, value string, policy Func) string {
	if policy == nil {
		return value
	}

	action, visible := policy(ctx, name, value)

	switch action {
	case ActionKeep:
		return value
	case ActionRedactFully:
		return Marker
	case ActionRedactPartialWithMask:
		return Partial(value, visible, false)
	case ActionRedactPartialTruncate:
		return Partial(value, visible, true)
	case ActionDelete:
		return ""
	default:
		return value
	}
}

// Values applies a redaction policy to url.Values (typically query
// arguments) and returns a redacted copy. The input is never modified. A nil
// policy clones without redaction.
func Values(ctx context.Context, values url.Values, policy Func) url.Values {
	if values == nil {
		return nil
	}

	redacted := make(url.Values, len(values))

	for key, vals := range values {
		for _, val := range vals {
			if policy == nil {
				redacted.Add(key, val)

				continue
			}

			action, visible := policy(ctx, key, val)

			switch action {
			case ActionKeep:
				redacted.Add(key, val)
			case ActionRedactFully:
				redacted.Add(key, Marker)
			case ActionRedactPartialWithMask:
				redacted.Add(key, Partial(val, visible, false))
			case ActionRedactPartialTruncate:
				redacted.Add(key, Partial(val, visible, true))
			case ActionDelete:
				// Drop this value.
			default:
				redacted.Add(key, val)
			}
		}
	}

	return redacted
}

// DefaultPolicy is the policy pipeline logs use when none is configured:
// values up to 8 runes (typical numeric ids, flags, short codes) stay
// visible, longer values keep a 4-rune prefix and are truncated.
func DefaultPolicy(_ context.Context, _, value string) (Action, int) {
	const (
		keepBelow = 8
		visible   = 4
	)

	if len([]rune(value)) <= keepBelow {
		return ActionKeep, 0
	}

	return ActionRedactPartialTruncate, visible
}
