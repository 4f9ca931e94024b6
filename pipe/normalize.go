package pipe

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/spigot-labs/spigot/httperr"
)

const msgStringExpected = "Validation failed (string is expected)"

// Normalize rewrites string arguments into a canonical Unicode normalization
// form, NFC unless configured otherwise. Equivalent inputs ("é" composed or
// decomposed) become byte-identical, so downstream comparisons and lookups
// see one spelling. Non-string present values fail.
type Normalize struct {
	cfg  config
	fail httperr.Factory
	form norm.Form
}

// NewNormalize builds an NFC normalization pipe.
func NewNormalize(opts ...Option) *Normalize {
	return NewNormalizeForm(norm.NFC, opts...)
}

// NewNormalizeForm builds a normalization pipe for the given form.
func NewNormalizeForm(form norm.Form, opts ...Option) *Normalize {
	cfg := newConfig(opts...)

	return &Normalize{cfg: cfg, fail: cfg.resolveFactory(), form: form}
}

// Name implements Pipe.
func (p *Normalize) Name() string {
	return "normalize"
}

// Transform implements Pipe.
func (p *Normalize) Transform(_ context.Context, value any, _ Metadata) (any, error) {
	if value == nil && p.cfg.optional {
		return value, nil
	}

	s, ok := value.(string)
	if !ok {
		return nil, p.fail(msgStringExpected)
	}

	return p.form.String(s), nil
}
