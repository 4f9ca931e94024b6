package pipe

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spigot-labs/spigot/httperr"
)

const msgUUIDExpected = "Validation failed (uuid is expected)"

// UUID parses a request argument into a uuid.UUID. Input must be a string in
// any of the formats github.com/google/uuid accepts. A version constraint,
// when set, is checked after parsing.
type UUID struct {
	cfg     config
	fail    httperr.Factory
	version int
}

// NewUUID builds a UUID pipe accepting any UUID version.
func NewUUID(opts ...Option) *UUID {
	return NewUUIDVersion(0, opts...)
}

// NewUUIDVersion builds a UUID pipe that additionally requires the given
// version (1 through 7). Version 0 means no constraint.
func NewUUIDVersion(version int, opts ...Option) *UUID {
	cfg := newConfig(opts...)

	return &UUID{cfg: cfg, fail: cfg.resolveFactory(), version: version}
}

// Name implements Pipe.
func (p *UUID) Name() string {
	return "uuid"
}

// Transform implements Pipe.
func (p *UUID) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, p.fail(p.message())
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return nil, p.fail(p.message())
	}

	if p.version > 0 && int(parsed.Version()) != p.version {
		return nil, p.fail(p.message())
	}

	return parsed, nil
}

func (p *UUID) message() string {
	if p.version > 0 {
		return fmt.Sprintf("Validation failed (uuid v %d is expected)", p.version)
	}

	return msgUUIDExpected
}
