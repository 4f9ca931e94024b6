package pipe

import (
	"context"

	"facette.io/natsort"

	"github.com/spigot-labs/spigot/httperr"
)

const msgEnumExpected = "Validation failed (enum string is expected)"

// Enum checks a string argument against a closed set of allowed values and
// returns it as T. The zero-length value set makes every input fail.
type Enum[T ~string] struct {
	cfg     config
	fail    httperr.Factory
	members map[T]struct{}
	sorted  []string
}

// NewEnum builds an enum pipe from the allowed values.
func NewEnum[T ~string](values []T, opts ...Option) *Enum[T] {
	cfg := newConfig(opts...)

	members := make(map[T]struct{}, len(values))
	sorted := make([]string, 0, len(values))

	for _, v := range values {
		if _, seen := members[v]; seen {
			continue
		}

		members[v] = struct{}{}
		sorted = append(sorted, string(v))
	}

	natsort.Sort(sorted)

	return &Enum[T]{
		cfg:     cfg,
		fail:    cfg.resolveFactory(),
		members: members,
		sorted:  sorted,
	}
}

// Name implements Pipe.
func (p *Enum[T]) Name() string {
	return "enum"
}

// Transform implements Pipe.
func (p *Enum[T]) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	member, ok := p.memberOf(value)
	if !ok {
		return nil, p.fail(msgEnumExpected)
	}

	return member, nil
}

// Allowed returns the allowed values in natural order. The slice is a copy;
// callers may keep it.
func (p *Enum[T]) Allowed() []string {
	out := make([]string, len(p.sorted))
	copy(out, p.sorted)

	return out
}

func (p *Enum[T]) memberOf(value any) (T, bool) {
	var zero T

	candidate, ok := value.(T)
	if !ok {
		s, isString := value.(string)
		if !isString {
			return zero, false
		}

		candidate = T(s)
	}

	if _, found := p.members[candidate]; !found {
		return zero, false
	}

	return candidate, true
}
