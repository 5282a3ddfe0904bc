// Package utils provides utility functions for the FrogFS library.
package utils

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the closed FrogFS error taxonomy. Engine and
// storage code wrap these with context via WrapError or WrapErrorAt;
// callers match them with errors.Is.
var (
	// ErrNullArg reports a required argument that was nil.
	ErrNullArg = errors.New("nil argument")

	// ErrIO reports a storage adapter failure.
	ErrIO = errors.New("storage i/o failure")

	// ErrNotFormatted reports a missing or mismatched superblock.
	ErrNotFormatted = errors.New("medium is not formatted")

	// ErrInvalidRecord reports a record id or size outside the configured limits.
	ErrInvalidRecord = errors.New("invalid record id or size")

	// ErrNoSpace reports that no qualifying blank run exists on the medium.
	ErrNoSpace = errors.New("no contiguous free space")

	// ErrNotWritable reports an operation that requires the record to be
	// open for writing.
	ErrNotWritable = errors.New("record not open for writing")

	// ErrNotReadable reports an operation that requires the record to not
	// be open for writing.
	ErrNotReadable = errors.New("record open for writing")

	// ErrInvalidOperation reports an operation on a record in the wrong
	// state, such as closing a record that was never created.
	ErrInvalidOperation = errors.New("invalid record state for operation")

	// ErrOutOfRange reports a structural violation found on the medium.
	ErrOutOfRange = errors.New("medium structure out of range")
)

// OffsetNone marks an OpError with no medium position, such as a
// rejected option value or an exhausted allocation table.
const OffsetNone = -1

// OpError is the wrapper every FrogFS error travels in. Context names the
// failing step, Offset pins the medium byte the step was working on when
// one exists (OffsetNone otherwise), and Err is the cause: a taxonomy
// sentinel or a storage driver error. With descriptors being anonymous
// 3-byte words, the offset is usually the only way to locate a failure on
// a dump of the medium.
type OpError struct {
	Context string
	Offset  int
	Err     error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Offset == OffsetNone {
		return fmt.Sprintf("frogfs: %s: %v", e.Context, e.Err)
	}
	return fmt.Sprintf("frogfs: %s (offset %d): %v", e.Context, e.Offset, e.Err)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *OpError) Unwrap() error {
	return e.Err
}

// WrapError wraps a cause with context but no medium position.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &OpError{Context: context, Offset: OffsetNone, Err: cause}
}

// WrapErrorAt wraps a cause with context and the medium offset involved.
func WrapErrorAt(context string, offset uint16, cause error) error {
	if cause == nil {
		return nil
	}
	return &OpError{Context: context, Offset: int(offset), Err: cause}
}
