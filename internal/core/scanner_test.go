package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/storage"
)

// image builds a formatted medium of the given capacity with body laid
// over the superblock at the offsets recorded in chunks.
func image(t *testing.T, capacity int, chunks map[int][]byte) *storage.Mem {
	t.Helper()
	buf := make([]byte, capacity)
	sb := EncodeSuperblock()
	copy(buf, sb[:])
	for off, chunk := range chunks {
		require.LessOrEqual(t, off+len(chunk), capacity)
		copy(buf[off:], chunk)
	}
	return storage.NewMemFromBytes(buf)
}

func TestScanEmptyMedium(t *testing.T) {
	tbl := NewTable(32)
	require.NoError(t, Scan(image(t, 64, nil), tbl))
	require.Equal(t, 0, tbl.Count())
}

func TestScanNotFormatted(t *testing.T) {
	tbl := NewTable(32)
	err := Scan(storage.NewMem(64), tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNotFormatted))
}

func TestScanSingleRecord(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 64, map[int][]byte{
		// Record 0 head: NORMAL/SIZE, 4 data bytes.
		5: {0x01, 0x80, 0x04, 0xAA, 0xBB, 0xCC, 0xDD},
	})
	require.NoError(t, Scan(s, tbl))
	require.Equal(t, []uint8{0}, tbl.List(nil))
	require.Equal(t, uint16(5), tbl.Slot(0).Offset)
}

func TestScanRecordsAfterGap(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 64, map[int][]byte{
		5:  {0x01, 0x80, 0x02, 0xAA, 0xBB}, // record 0, 2 data bytes
		20: {0x03, 0x80, 0x01, 0xCC},       // record 2 after a blank gap
	})
	require.NoError(t, Scan(s, tbl))
	require.Equal(t, []uint8{0, 2}, tbl.List(nil))
	require.Equal(t, uint16(5), tbl.Slot(0).Offset)
	require.Equal(t, uint16(20), tbl.Slot(2).Offset)
}

func TestScanFragmentedRecord(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 64, map[int][]byte{
		// Record 0: head with 2 data bytes, pointer to a continuation at
		// offset 20 holding 3 more bytes.
		5:  {0x01, 0x80, 0x02, 0xAA, 0xBB},
		10: {0x81, 0x00, 0x14},
		20: {0x81, 0x80, 0x03, 0xCC, 0xDD, 0xEE},
	})
	require.NoError(t, Scan(s, tbl))
	// Only the head defines the record; continuations are stepped over.
	require.Equal(t, []uint8{0}, tbl.List(nil))
	require.Equal(t, uint16(5), tbl.Slot(0).Offset)
}

func TestScanDuplicateHead(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 64, map[int][]byte{
		5:  {0x01, 0x80, 0x01, 0xAA},
		16: {0x01, 0x80, 0x01, 0xBB},
	})
	err := Scan(s, tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))
}

func TestScanIDBeyondTable(t *testing.T) {
	tbl := NewTable(8)
	s := image(t, 64, map[int][]byte{
		// Record id 9 with an 8-slot table.
		5: {0x0A, 0x80, 0x01, 0xAA},
	})
	err := Scan(s, tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))
}

func TestScanPointerOutOfRange(t *testing.T) {
	for name, ptr := range map[string][]byte{
		"into superblock": {0x81, 0x00, 0x03},
		"beyond medium":   {0x81, 0x7F, 0xFF},
	} {
		tbl := NewTable(32)
		s := image(t, 64, map[int][]byte{5: ptr})
		err := Scan(s, tbl)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, utils.ErrOutOfRange), name)
	}
}

func TestScanDataOverrunsMedium(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 16, map[int][]byte{
		// Head declares 100 data bytes on a 16-byte medium.
		5: {0x01, 0x80, 0x64},
	})
	err := Scan(s, tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))
}

func TestScanNormalPointerRejected(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 64, map[int][]byte{
		// NORMAL kind with POINTER payload is not a defined variant.
		5: {0x01, 0x00, 0x14},
	})
	err := Scan(s, tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))
}

func TestScanPartialDescriptorAtEnd(t *testing.T) {
	tbl := NewTable(32)
	s := image(t, 16, map[int][]byte{
		// Nonzero bytes on only the last two positions cannot be a full
		// descriptor; the scan ends cleanly.
		14: {0x01, 0x80},
	})
	require.NoError(t, Scan(s, tbl))
	require.Equal(t, 0, tbl.Count())
}

func TestScanResetsPreviousTable(t *testing.T) {
	tbl := NewTable(32)
	tbl.Slot(7).Offset = 99
	require.NoError(t, Scan(image(t, 64, nil), tbl))
	require.Equal(t, 0, tbl.Count())
}
