package envcfg

import (
	"context"

	"github.com/spigot-labs/spigot/contexts"
)

type overrideKey string

// WithOverride returns a context in which key reads as value, shadowing the
// process environment. Overrides keep tests and request-scoped tweaks away
// from os.Setenv.
func WithOverride(ctx context.Context, key string, value string) context.Context {
	return contexts.WithValue[overrideKey, string](ctx, overrideKey(key), value)
}

func getOverride(ctx context.Context, key string) (string, bool) {
	return contexts.GetValue[overrideKey, string](ctx, overrideKey(key))
}
