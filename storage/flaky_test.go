package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmiori92/frogfs/internal/utils"
)

func TestFlakyBudgets(t *testing.T) {
	f := NewFlaky(NewMem(16), 1, 2)

	buf := make([]byte, 2)
	require.NoError(t, f.Read(buf))
	err := f.Read(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrIO))

	require.NoError(t, f.Seek(0))
	require.NoError(t, f.Write(buf))
	require.NoError(t, f.Write(buf))
	err = f.Write(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrIO))
}

func TestFlakyNegativeBudgetNeverFails(t *testing.T) {
	f := NewFlaky(NewMem(16), -1, -1)
	buf := make([]byte, 1)
	for i := 0; i < 8; i++ {
		require.NoError(t, f.Seek(0))
		require.NoError(t, f.Write(buf))
		require.NoError(t, f.Seek(0))
		require.NoError(t, f.Read(buf))
	}
}
