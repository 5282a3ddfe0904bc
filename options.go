package frogfs

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
)

// Compile-time defaults and hard format limits.
const (
	// DefaultMaxRecords is the number of allocation-table slots unless
	// overridden at Mount.
	DefaultMaxRecords = 32

	// MaxRecordsLimit is the largest configurable record count. It equals
	// core.MaxRecordID, so every configured id stays below the largest
	// encodable one.
	MaxRecordsLimit = core.MaxRecordID

	// DefaultMaxRecordBytes is the largest length a single Write or Read
	// call accepts unless overridden at Mount.
	DefaultMaxRecordBytes = 32 * 1024

	// MaxRecordBytesLimit is the largest configurable record size; the
	// 15-bit descriptor payload cannot express more.
	MaxRecordBytesLimit = 32 * 1024
)

// Option configures an FS during Mount.
type Option func(*FS) error

// WithMaxRecords sets the number of record slots, trading allocation-table
// RAM against the number of files the medium can hold. n must be in
// [1, 126].
func WithMaxRecords(n int) Option {
	return func(fs *FS) error {
		if n < 1 || n > MaxRecordsLimit {
			return utils.WrapError(fmt.Sprintf("max records %d outside [1, %d]", n, MaxRecordsLimit), utils.ErrInvalidRecord)
		}
		fs.maxRecords = n
		return nil
	}
}

// WithMaxRecordBytes sets the largest length a single Write or Read call
// accepts. It does not bound the total size of a record built up by
// several Write calls. n must be in [1, 32768].
func WithMaxRecordBytes(n int) Option {
	return func(fs *FS) error {
		if n < 1 || n > MaxRecordBytesLimit {
			return utils.WrapError(fmt.Sprintf("max record bytes %d outside [1, %d]", n, MaxRecordBytesLimit), utils.ErrInvalidRecord)
		}
		fs.maxRecordBytes = n
		return nil
	}
}
