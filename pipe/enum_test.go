package pipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigot-labs/spigot/pipe"
)

type sortOrder string

const (
	orderAsc  sortOrder = "asc"
	orderDesc sortOrder = "desc"
)

func TestEnumAcceptsMembers(t *testing.T) {
	t.Parallel()

	p := pipe.NewEnum([]sortOrder{orderAsc, orderDesc})

	t.Run("typed member", func(t *testing.T) {
		t.Parallel()

		got, err := p.Transform(t.Context(), orderAsc, meta())
		require.NoError(t, err)
		assert.Equal(t, orderAsc, got)
	})

	t.Run("plain string converts to the enum type", func(t *testing.T) {
		t.Parallel()

		got, err := p.Transform(t.Context(), "desc", meta())
		require.NoError(t, err)
		assert.Equal(t, orderDesc, got)
		assert.IsType(t, sortOrder(""), got)
	})
}

func TestEnumRejectsNonMembers(t *testing.T) {
	t.Parallel()

	p := pipe.NewEnum([]sortOrder{orderAsc, orderDesc})

	inputs := []any{
		"ASC",
		"ascending",
		"",
		" asc",
		42,
		true,
		[]string{"asc"},
	}

	for _, input := range inputs {
		_, err := p.Transform(t.Context(), input, meta())
		require.Error(t, err)
		assert.Equal(t, "Validation failed (enum string is expected)", err.Error())
	}
}

func TestEnumEmptySetRejectsEverything(t *testing.T) {
	t.Parallel()

	p := pipe.NewEnum([]string{})

	_, err := p.Transform(t.Context(), "anything", meta())
	require.Error(t, err)
	assert.Equal(t, "Validation failed (enum string is expected)", err.Error())
}

func TestEnumAllowed(t *testing.T) {
	t.Parallel()

	// Natural order: numeric segments compare by value, so v10 sorts after v9.
	p := pipe.NewEnum([]string{"v10", "v2", "v1", "v9", "v2"})

	assert.Equal(t, []string{"v1", "v2", "v9", "v10"}, p.Allowed())

	// Mutating the returned slice must not leak back into the pipe.
	first := p.Allowed()
	first[0] = "mutated"
	assert.Equal(t, []string{"v1", "v2", "v9", "v10"}, p.Allowed())
}

func TestEnumAbsentValue(t *testing.T) {
	t.Parallel()

	p := pipe.NewEnum([]sortOrder{orderAsc}, pipe.Optional())

	got, err := p.Transform(t.Context(), nil, meta())
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = pipe.NewEnum([]sortOrder{orderAsc}).Transform(t.Context(), nil, meta())
	require.Error(t, err)
}
