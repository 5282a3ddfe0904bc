package writer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/storage"
)

func medium(t *testing.T, capacity int, chunks map[int][]byte) *storage.Mem {
	t.Helper()
	buf := make([]byte, capacity)
	sb := core.EncodeSuperblock()
	copy(buf, sb[:])
	for off, chunk := range chunks {
		require.LessOrEqual(t, off+len(chunk), capacity)
		copy(buf[off:], chunk)
	}
	return storage.NewMemFromBytes(buf)
}

func TestFindContiguousBlankMedium(t *testing.T) {
	run, err := FindContiguous(medium(t, 32, nil))
	require.NoError(t, err)
	// The whole body after the superblock is one run of 27 bytes.
	require.Equal(t, uint16(5), run.SpaceStart)
	require.Equal(t, uint16(8), run.DataStart)
	require.Equal(t, uint16(27-MinRun), run.DataSize)
}

func TestFindContiguousAfterRecord(t *testing.T) {
	run, err := FindContiguous(medium(t, 32, map[int][]byte{
		// Record 0: head plus 4 data bytes occupy [5, 12).
		5: {0x01, 0x80, 0x04, 0xAA, 0xBB, 0xCC, 0xDD},
	}))
	require.NoError(t, err)
	require.Equal(t, uint16(12), run.SpaceStart)
	require.Equal(t, uint16(15), run.DataStart)
	require.Equal(t, uint16(20-MinRun), run.DataSize)
}

func TestFindContiguousSkipsZeroDataBytes(t *testing.T) {
	run, err := FindContiguous(medium(t, 32, map[int][]byte{
		// Record 0 carries all-zero data; those bytes are declared by the
		// head and must not be mistaken for free space.
		5: {0x01, 0x80, 0x08},
	}))
	require.NoError(t, err)
	require.Equal(t, uint16(16), run.SpaceStart)
}

func TestFindContiguousFirstFitHole(t *testing.T) {
	run, err := FindContiguous(medium(t, 64, map[int][]byte{
		// An erased hole covers [5, 14); record 1 sits at [14, 21).
		14: {0x02, 0x80, 0x04, 0xAA, 0xBB, 0xCC, 0xDD},
	}))
	require.NoError(t, err)
	// First fit takes the hole, not the larger tail run.
	require.Equal(t, uint16(5), run.SpaceStart)
	require.Equal(t, uint16(8), run.DataStart)
	require.Equal(t, uint16(9-MinRun), run.DataSize)
}

func TestFindContiguousHoleTooSmall(t *testing.T) {
	run, err := FindContiguous(medium(t, 64, map[int][]byte{
		// The hole [5, 11) is one byte short of qualifying.
		11: {0x02, 0x80, 0x04, 0xAA, 0xBB, 0xCC, 0xDD},
	}))
	require.NoError(t, err)
	require.Equal(t, uint16(18), run.SpaceStart)
}

func TestFindContiguousStepsOverContinuations(t *testing.T) {
	run, err := FindContiguous(medium(t, 64, map[int][]byte{
		// Head with 2 data bytes, pointer terminator, continuation with 3
		// data bytes right after.
		5:  {0x01, 0x80, 0x02, 0xAA, 0xBB},
		10: {0x81, 0x00, 0x0D},
		13: {0x81, 0x80, 0x03, 0xCC, 0xDD, 0xEE},
	}))
	require.NoError(t, err)
	require.Equal(t, uint16(19), run.SpaceStart)
}

func TestFindContiguousNoSpace(t *testing.T) {
	_, err := FindContiguous(medium(t, 12, map[int][]byte{
		// Record fills the whole body: no blank run at all.
		5: {0x01, 0x80, 0x04, 0xAA, 0xBB, 0xCC, 0xDD},
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNoSpace))
}

func TestFindContiguousRunAtMinimum(t *testing.T) {
	// Exactly MinRun blank bytes qualify, with zero usable data capacity.
	run, err := FindContiguous(medium(t, 64, map[int][]byte{
		12: {0x02, 0x80, 0x2E},
	}))
	require.NoError(t, err)
	require.Equal(t, uint16(5), run.SpaceStart)
	require.Equal(t, uint16(0), run.DataSize)
}
