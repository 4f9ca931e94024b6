// Package stage identifies the deployment environment (local, test, dev,
// staging, prod) from the RUNNING_ENV environment variable, with a
// context override for code that needs to pin the stage explicitly.
package stage

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/spigot-labs/spigot/contexts"
	"github.com/spigot-labs/spigot/envcfg"
	"github.com/spigot-labs/spigot/lazy"
	"github.com/spigot-labs/spigot/logger"
)

// Stage represents a deployment environment.
type Stage string

// ErrUnrecognizedStage is returned when RUNNING_ENV holds an unexpected value.
var ErrUnrecognizedStage = errors.New("unrecognized stage")

const (
	// Unknown means the stage could not be determined.
	Unknown Stage = "unknown"
	// Local is a developer machine.
	Local Stage = "local"
	// Test is a unit-test run.
	Test Stage = "test"
	// Dev is the development environment.
	Dev Stage = "dev"
	// Staging is the staging environment.
	Staging Stage = "staging"
	// Prod is production.
	Prod Stage = "prod"
)

type stageKey struct{}

// WithStage pins the stage for everything reading it from this context,
// shadowing the detected one.
func WithStage(ctx context.Context, s Stage) context.Context {
	return contexts.WithValue(ctx, stageKey{}, s)
}

// Current returns the stage pinned in the context, or the detected one.
// Detection happens once and is cached for the life of the process.
func Current(ctx context.Context) Stage {
	if s, ok := contexts.GetValue[stageKey, Stage](ctx, stageKey{}); ok {
		return s
	}

	return runningStage.Get()
}

// IsLocal returns true if the current stage is Local.
func IsLocal(ctx context.Context) bool {
	return Current(ctx) == Local
}

// IsTest returns true if the current stage is Test.
func IsTest(ctx context.Context) bool {
	return Current(ctx) == Test
}

// IsDev returns true if the current stage is Dev.
func IsDev(ctx context.Context) bool {
	return Current(ctx) == Dev
}

// IsStaging returns true if the current stage is Staging.
func IsStaging(ctx context.Context) bool {
	return Current(ctx) == Staging
}

// IsProd returns true if the current stage is Prod.
func IsProd(ctx context.Context) bool {
	return Current(ctx) == Prod
}

// IsUnknown returns true if the current stage is Unknown.
func IsUnknown(ctx context.Context) bool {
	return Current(ctx) == Unknown
}

//nolint:gochecknoglobals
var runningStage = lazy.New(func() Stage {
	value := detect()

	if value != Unknown {
		logger.Get().Info("Configured stage", "stage", value)
	}

	return value
})

// detect reads RUNNING_ENV. Unit-test runs without the variable report
// Test; anything else without it reports Unknown.
func detect() Stage {
	env := envcfg.Map(envcfg.String(context.Background(), "RUNNING_ENV"), parse)

	if flag.Lookup("test.v") != nil {
		return env.ValueOrElse(Test)
	}

	return env.ValueOrElse(Unknown)
}

func parse(s string) (Stage, error) {
	switch Stage(s) {
	case Local, Test, Dev, Staging, Prod:
		return Stage(s), nil
	case Unknown:
		fallthrough
	default:
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedStage, s)
	}
}
