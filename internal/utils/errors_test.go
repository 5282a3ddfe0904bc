package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	err := WrapError("open record", ErrNoSpace)
	require.Error(t, err)
	require.Equal(t, "frogfs: open record: no contiguous free space", err.Error())
	assert.True(t, errors.Is(err, ErrNoSpace))
}

func TestWrapErrorAt(t *testing.T) {
	err := WrapErrorAt("descriptor read failed", 42, ErrIO)
	require.Error(t, err)
	require.Equal(t, "frogfs: descriptor read failed (offset 42): storage i/o failure", err.Error())
	assert.True(t, errors.Is(err, ErrIO))

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	require.Equal(t, 42, opErr.Offset)
}

func TestWrapErrorNil(t *testing.T) {
	require.NoError(t, WrapError("anything", nil))
	require.NoError(t, WrapErrorAt("anything", 7, nil))
}

func TestWrapErrorNested(t *testing.T) {
	inner := WrapErrorAt("image write failed", 12, ErrIO)
	outer := WrapError("format", inner)
	assert.True(t, errors.Is(outer, ErrIO))

	var opErr *OpError
	require.True(t, errors.As(outer, &opErr))
	require.Equal(t, "format", opErr.Context)
	require.Equal(t, OffsetNone, opErr.Offset)
}
