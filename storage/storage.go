// Package storage defines the byte-addressable medium abstraction the
// FrogFS engine operates on, together with memory-backed and file-backed
// implementations.
//
// A Storage models a small persistent memory (an EEPROM or an image file
// emulating one): a fixed capacity of at most 65535 bytes, a single cursor,
// and exact-length reads and writes. The engine seeks before every access,
// so implementations only have to honor absolute positioning; they never
// need to preserve the cursor across engine calls.
package storage

// Storage is the medium consumed by the filesystem engine.
//
// Read and Write transfer exactly len(p) bytes and advance the cursor;
// a transfer that would cross the capacity boundary fails without a
// partial result. Sync is a durability hint and may be a no-op.
type Storage interface {
	// Capacity returns the total byte capacity of the medium.
	Capacity() uint16

	// Seek positions the cursor at the given absolute offset.
	Seek(offset uint16) error

	// Advance moves the cursor forward by n bytes.
	Advance(n uint16) error

	// Backtrack moves the cursor backward by n bytes.
	Backtrack(n uint16) error

	// Position returns the current cursor offset.
	Position() (uint16, error)

	// AtEnd reports whether the cursor sits on the last byte of the medium.
	AtEnd() bool

	// Read fills p from the medium and advances the cursor.
	Read(p []byte) error

	// Write stores p on the medium and advances the cursor.
	Write(p []byte) error

	// Sync flushes buffered writes to the underlying medium, if any.
	Sync()

	// Close releases the medium.
	Close() error
}
