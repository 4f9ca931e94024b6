package stage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot-labs/spigot/lazy"
)

func TestStageConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stage    Stage
		expected string
	}{
		{"Unknown", Unknown, "unknown"},
		{"Local", Local, "local"},
		{"Test", Test, "test"},
		{"Dev", Dev, "dev"},
		{"Staging", Staging, "staging"},
		{"Prod", Prod, "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, string(tt.stage))
		})
	}
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestDetectWithEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected Stage
	}{
		{"Local", "local", Local},
		{"Test", "test", Test},
		{"Dev", "dev", Dev},
		{"Staging", "staging", Staging},
		{"Prod", "prod", Prod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RUNNING_ENV", tt.envValue)

			// Fresh cache so this test's env value is the one detected.
			fresh := lazy.New(detect)

			assert.Equal(t, tt.expected, fresh.Get())
		})
	}
}

func TestDetectInvalidValue(t *testing.T) {
	t.Setenv("RUNNING_ENV", "invalid-stage")

	fresh := lazy.New(detect)

	// Inside a test binary the fallback is Test.
	assert.Equal(t, Test, fresh.Get())
}

func TestDetectNoEnv(t *testing.T) { //nolint:paralleltest
	_ = os.Unsetenv("RUNNING_ENV")

	fresh := lazy.New(detect)

	assert.Equal(t, Test, fresh.Get())
}

func TestParseRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := parse("unknown")
	require.ErrorIs(t, err, ErrUnrecognizedStage)

	_, err = parse("production")
	require.ErrorIs(t, err, ErrUnrecognizedStage)
}

func TestWithStage(t *testing.T) {
	t.Parallel()

	for _, s := range []Stage{Local, Test, Dev, Staging, Prod, Unknown} {
		ctx := WithStage(t.Context(), s)
		assert.Equal(t, s, Current(ctx))
	}
}

func TestWithStageOverridesEnvironment(t *testing.T) {
	t.Setenv("RUNNING_ENV", "prod")

	runningStage = lazy.New(detect)

	ctx := WithStage(t.Context(), Local)

	assert.Equal(t, Local, Current(ctx))
	assert.True(t, IsLocal(ctx))
	assert.False(t, IsProd(ctx))
}

func TestStageChecks(t *testing.T) {
	t.Parallel()

	ctx := WithStage(t.Context(), Staging)

	assert.False(t, IsLocal(ctx))
	assert.False(t, IsTest(ctx))
	assert.False(t, IsDev(ctx))
	assert.True(t, IsStaging(ctx))
	assert.False(t, IsProd(ctx))
	assert.False(t, IsUnknown(ctx))
}

func TestWithStageNested(t *testing.T) {
	t.Parallel()

	outer := WithStage(t.Context(), Prod)
	assert.Equal(t, Prod, Current(outer))

	inner := WithStage(outer, Dev)
	assert.Equal(t, Dev, Current(inner))

	// The outer context is untouched.
	assert.Equal(t, Prod, Current(outer))
}
