package envcfg_test

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot-labs/spigot/envcfg"
	"github.com/spigot-labs/spigot/httperr"
)

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestString(t *testing.T) {
	t.Run("present value", func(t *testing.T) {
		t.Setenv("TEST_STRING", "hello")

		reader := envcfg.String(t.Context(), "TEST_STRING")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "hello", value)
		assert.True(t, reader.HasValue())
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		reader := envcfg.String(t.Context(), "TEST_STRING_MISSING")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrMissing)
		assert.False(t, reader.HasValue())
	})

	t.Run("with default", func(t *testing.T) {
		t.Parallel()

		reader := envcfg.String(t.Context(), "TEST_STRING_MISSING", envcfg.Default("default"))
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "default", value)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true", "true", true},
		{"one", "1", true},
		{"false", "false", false},
		{"zero", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_" + tt.name
			t.Setenv(key, tt.value)

			reader := envcfg.Bool(t.Context(), key)
			value, err := reader.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	// Parsing goes through the bool pipe, so the loose spellings
	// strconv.ParseBool would take are rejected here.
	t.Run("rejects loose spellings", func(t *testing.T) {
		for _, raw := range []string{"TRUE", "t", "yes", "on"} {
			t.Setenv("TEST_BOOL_LOOSE", raw)

			reader := envcfg.Bool(t.Context(), "TEST_BOOL_LOOSE")
			_, err := reader.Value()
			require.ErrorIs(t, err, envcfg.ErrBadValue, raw)
			assert.Contains(t, err.Error(), "boolean string is expected")
		}
	})

	t.Run("pipe error carries its status", func(t *testing.T) {
		t.Setenv("TEST_BOOL_INVALID", "invalid")

		reader := envcfg.Bool(t.Context(), "TEST_BOOL_INVALID")
		assert.True(t, reader.HasError())
		assert.True(t, httperr.IsStatus(reader.Error(), http.StatusBadRequest))
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestInt(t *testing.T) {
	t.Run("valid int", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")

		reader := envcfg.Int(t.Context(), "TEST_INT")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, int64(42), value)
	})

	t.Run("negative int", func(t *testing.T) {
		t.Setenv("TEST_INT_NEG", "-100")

		reader := envcfg.Int(t.Context(), "TEST_INT_NEG")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, int64(-100), value)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Setenv("TEST_INT_INVALID", "not-a-number")

		reader := envcfg.Int(t.Context(), "TEST_INT_INVALID")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
		assert.Contains(t, err.Error(), "numeric string is expected")
	})

	t.Run("default does not mask malformed value", func(t *testing.T) {
		t.Setenv("TEST_INT_BAD_DEFAULT", "abc")

		reader := envcfg.Int(t.Context(), "TEST_INT_BAD_DEFAULT", envcfg.Default[int64](5))
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestFloat(t *testing.T) {
	t.Run("valid float", func(t *testing.T) {
		t.Setenv("TEST_FLOAT", "0.25")

		reader := envcfg.Float(t.Context(), "TEST_FLOAT")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.InDelta(t, 0.25, value, 1e-9)
	})

	t.Run("invalid float", func(t *testing.T) {
		t.Setenv("TEST_FLOAT_INVALID", "fast")

		reader := envcfg.Float(t.Context(), "TEST_FLOAT_INVALID")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestUUID(t *testing.T) {
	t.Run("valid uuid", func(t *testing.T) {
		t.Setenv("TEST_UUID", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

		reader := envcfg.UUID(t.Context(), "TEST_UUID")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), value)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		t.Setenv("TEST_UUID_INVALID", "not-a-uuid")

		reader := envcfg.UUID(t.Context(), "TEST_UUID_INVALID")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
		assert.Contains(t, err.Error(), "uuid is expected")
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestDuration(t *testing.T) {
	t.Run("valid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "1500ms")

		reader := envcfg.Duration(t.Context(), "TEST_DURATION")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, value)
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		t.Setenv("TEST_DURATION_SPACED", " 30s ")

		reader := envcfg.Duration(t.Context(), "TEST_DURATION_SPACED")
		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, value)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION_INVALID", "soon")

		reader := envcfg.Duration(t.Context(), "TEST_DURATION_INVALID")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info upper", "INFO", slog.LevelInfo},
		{"warn with offset", "WARN+2", slog.LevelWarn + 2},
		{"error spaced", " error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_LEVEL_" + tt.name
			t.Setenv(key, tt.value)

			reader := envcfg.LogLevel(t.Context(), key)
			value, err := reader.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv("TEST_LEVEL_INVALID", "loud")

		reader := envcfg.LogLevel(t.Context(), "TEST_LEVEL_INVALID")
		_, err := reader.Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestWithOverride(t *testing.T) {
	t.Run("override supplies missing variable", func(t *testing.T) {
		t.Parallel()

		ctx := envcfg.WithOverride(t.Context(), "OVERRIDE_ONLY", "9090")

		value, err := envcfg.Int(ctx, "OVERRIDE_ONLY").Value()
		require.NoError(t, err)
		assert.Equal(t, int64(9090), value)
	})

	t.Run("override wins over environment", func(t *testing.T) {
		t.Setenv("OVERRIDE_BOTH", "1111")

		ctx := envcfg.WithOverride(t.Context(), "OVERRIDE_BOTH", "2222")

		value, err := envcfg.Int(ctx, "OVERRIDE_BOTH").Value()
		require.NoError(t, err)
		assert.Equal(t, int64(2222), value)
	})

	t.Run("override is scoped to its key", func(t *testing.T) {
		t.Parallel()

		ctx := envcfg.WithOverride(t.Context(), "OVERRIDE_A", "set")

		reader := envcfg.String(ctx, "OVERRIDE_B")
		assert.False(t, reader.HasValue())
	})

	t.Run("overridden value still parses through the pipe", func(t *testing.T) {
		t.Parallel()

		ctx := envcfg.WithOverride(t.Context(), "OVERRIDE_BAD", "maybe")

		_, err := envcfg.Bool(ctx, "OVERRIDE_BAD").Value()
		require.ErrorIs(t, err, envcfg.ErrBadValue)
	})
}

//nolint:tparallel // Cannot use t.Parallel() with subtests that call t.Setenv()
func TestOptions(t *testing.T) {
	t.Run("required converts missing into given error", func(t *testing.T) {
		t.Parallel()

		reader := envcfg.String(t.Context(), "TEST_REQUIRED_MISSING",
			envcfg.Required[string](assert.AnError))

		_, err := reader.Value()
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("required leaves present value alone", func(t *testing.T) {
		t.Setenv("TEST_REQUIRED_SET", "here")

		reader := envcfg.String(t.Context(), "TEST_REQUIRED_SET",
			envcfg.Required[string](assert.AnError))

		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "here", value)
	})

	t.Run("fallback reader consulted when missing", func(t *testing.T) {
		t.Setenv("TEST_FALLBACK_SOURCE", "from-fallback")

		fallback := envcfg.String(t.Context(), "TEST_FALLBACK_SOURCE")
		reader := envcfg.String(t.Context(), "TEST_FALLBACK_MISSING",
			envcfg.Fallback(fallback))

		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, "from-fallback", value)
	})

	t.Run("validate accepts", func(t *testing.T) {
		t.Setenv("TEST_VALIDATE_OK", "8080")

		reader := envcfg.Int(t.Context(), "TEST_VALIDATE_OK",
			envcfg.Validate(func(v int64) error {
				if v <= 0 {
					return assert.AnError
				}

				return nil
			}))

		value, err := reader.Value()
		require.NoError(t, err)
		assert.Equal(t, int64(8080), value)
	})

	t.Run("validate rejects", func(t *testing.T) {
		t.Setenv("TEST_VALIDATE_BAD", "-1")

		reader := envcfg.Int(t.Context(), "TEST_VALIDATE_BAD",
			envcfg.Validate(func(v int64) error {
				if v <= 0 {
					return assert.AnError
				}

				return nil
			}))

		_, err := reader.Value()
		require.ErrorIs(t, err, assert.AnError)
	})
}
