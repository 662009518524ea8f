package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator("team_")
	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "team_"))
	assert.NotEqual(t, first, second)

	parsed, err := uuid.Parse(strings.TrimPrefix(first, "team_"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestUUIDGenerator_NilGenerator(t *testing.T) {
	t.Parallel()

	var gen *UUIDGenerator
	v, err := gen.NewID()
	require.NoError(t, err)
	_, err = uuid.Parse(v)
	require.NoError(t, err)
}
