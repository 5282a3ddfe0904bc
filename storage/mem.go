package storage

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/utils"
)

// Mem is a memory-backed Storage. It stands in for the EEPROM on hosts
// without persistent media and backs most of the engine tests.
type Mem struct {
	data []byte
	pos  uint16
}

// NewMem creates a blank memory medium of the given capacity.
func NewMem(capacity uint16) *Mem {
	return &Mem{data: make([]byte, capacity)}
}

// NewMemFromBytes creates a memory medium holding a copy of image.
// The capacity is the image length.
func NewMemFromBytes(image []byte) *Mem {
	m := &Mem{data: make([]byte, len(image))}
	copy(m.data, image)
	return m
}

// Bytes returns a copy of the current medium contents.
func (m *Mem) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// Capacity returns the total byte capacity of the medium.
func (m *Mem) Capacity() uint16 {
	return uint16(len(m.data))
}

// Seek positions the cursor at the given absolute offset.
func (m *Mem) Seek(offset uint16) error {
	if int(offset) > len(m.data) {
		return utils.WrapErrorAt(fmt.Sprintf("seek beyond capacity %d", len(m.data)), offset, utils.ErrIO)
	}
	m.pos = offset
	return nil
}

// Advance moves the cursor forward by n bytes.
func (m *Mem) Advance(n uint16) error {
	if int(m.pos)+int(n) > len(m.data) {
		return utils.WrapErrorAt(fmt.Sprintf("advance by %d beyond capacity %d", n, len(m.data)), m.pos, utils.ErrIO)
	}
	m.pos += n
	return nil
}

// Backtrack moves the cursor backward by n bytes.
func (m *Mem) Backtrack(n uint16) error {
	if n > m.pos {
		return utils.WrapErrorAt(fmt.Sprintf("backtrack by %d before start of medium", n), m.pos, utils.ErrIO)
	}
	m.pos -= n
	return nil
}

// Position returns the current cursor offset.
func (m *Mem) Position() (uint16, error) {
	return m.pos, nil
}

// AtEnd reports whether the cursor sits on the last byte of the medium.
func (m *Mem) AtEnd() bool {
	return len(m.data) == 0 || int(m.pos) >= len(m.data)-1
}

// Read fills p from the medium and advances the cursor.
func (m *Mem) Read(p []byte) error {
	if int(m.pos)+len(p) > len(m.data) {
		return utils.WrapErrorAt(fmt.Sprintf("read of %d bytes beyond capacity %d", len(p), len(m.data)), m.pos, utils.ErrIO)
	}
	copy(p, m.data[m.pos:int(m.pos)+len(p)])
	m.pos += uint16(len(p))
	return nil
}

// Write stores p on the medium and advances the cursor.
func (m *Mem) Write(p []byte) error {
	if int(m.pos)+len(p) > len(m.data) {
		return utils.WrapErrorAt(fmt.Sprintf("write of %d bytes beyond capacity %d", len(p), len(m.data)), m.pos, utils.ErrIO)
	}
	copy(m.data[m.pos:], p)
	m.pos += uint16(len(p))
	return nil
}

// Sync is a no-op for the memory medium.
func (m *Mem) Sync() {}

// Close releases the medium.
func (m *Mem) Close() error {
	return nil
}
