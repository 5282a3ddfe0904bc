package frogfs

import "github.com/lmiori92/frogfs/internal/utils"

// The closed FrogFS error taxonomy. Operations wrap these with context;
// match with errors.Is.
var (
	// ErrNullArg reports a required argument that was nil.
	ErrNullArg = utils.ErrNullArg

	// ErrIO reports a storage adapter failure.
	ErrIO = utils.ErrIO

	// ErrNotFormatted reports a missing or mismatched superblock.
	ErrNotFormatted = utils.ErrNotFormatted

	// ErrInvalidRecord reports a record id or size outside the configured
	// limits.
	ErrInvalidRecord = utils.ErrInvalidRecord

	// ErrNoSpace reports that no qualifying blank run exists on the medium.
	ErrNoSpace = utils.ErrNoSpace

	// ErrNotWritable reports a write against a record that is not open for
	// writing.
	ErrNotWritable = utils.ErrNotWritable

	// ErrNotReadable reports a read or erase against a record that is open
	// for writing.
	ErrNotReadable = utils.ErrNotReadable

	// ErrInvalidOperation reports an operation on a record in the wrong
	// state, such as closing a record that was never created.
	ErrInvalidOperation = utils.ErrInvalidOperation

	// ErrOutOfRange reports a structural violation found on the medium, or
	// an exhausted allocation table.
	ErrOutOfRange = utils.ErrOutOfRange
)
