package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionEmpty(t *testing.T) {
	t.Parallel()

	var c Collection

	assert.False(t, c.HasError())
	assert.Zero(t, c.Len())
	require.NoError(t, c.Err())
}

func TestCollectionIgnoresNil(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(nil)
	c.Add(nil)

	assert.False(t, c.HasError())
	require.NoError(t, c.Err())
}

func TestCollectionSingleError(t *testing.T) {
	t.Parallel()

	var c Collection

	boom := errors.New("boom") //nolint:err113
	c.Add(boom)

	assert.True(t, c.HasError())
	assert.Equal(t, 1, c.Len())

	// A single error comes back unwrapped.
	assert.Same(t, boom, c.Err()) //nolint:errorlint
}

func TestCollectionJoinsMultiple(t *testing.T) {
	t.Parallel()

	var c Collection

	first := errors.New("first")   //nolint:err113
	second := errors.New("second") //nolint:err113

	c.Add(first)
	c.Add(nil)
	c.Add(second)

	assert.Equal(t, 2, c.Len())

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}

func TestCollectionPreservesWrapping(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(fmt.Errorf("lookup id: %w", ErrNotFound))
	c.Add(fmt.Errorf("lookup name: %w", ErrNotFound))

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionClear(t *testing.T) {
	t.Parallel()

	var c Collection

	c.Add(errors.New("boom")) //nolint:err113
	require.True(t, c.HasError())

	c.Clear()

	assert.False(t, c.HasError())
	require.NoError(t, c.Err())
}

func TestFromPanicNil(t *testing.T) {
	t.Parallel()

	require.NoError(t, FromPanic(nil, nil))
}

func TestFromPanicError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom") //nolint:err113
	err := FromPanic(boom, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.ErrorIs(t, err, boom)
}

func TestFromPanicValue(t *testing.T) {
	t.Parallel()

	err := FromPanic("not an error", []byte("goroutine 1 [running]"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "not an error")
	assert.Contains(t, err.Error(), "goroutine 1")
}
