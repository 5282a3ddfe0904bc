// Package frogfs implements a minimal record-oriented filesystem for very
// small byte-addressable persistent memories, typically EEPROMs of a few
// kilobytes. Records are identified by a numeric index instead of a name,
// writes are fragmented on demand to survive random deletion, and a
// boot-time scan rebuilds the in-RAM allocation table so regular
// operations never rewalk the medium.
package frogfs

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/storage"
)

// FS is a mounted FrogFS filesystem: one storage medium plus its in-RAM
// allocation table. The engine is synchronous and not reentrant; callers
// must serialize access and keep at most one record open for writing.
type FS struct {
	store          storage.Storage
	table          *core.Table
	maxRecords     int
	maxRecordBytes int
}

// Mount attaches the engine to a storage medium. The medium is not
// touched: call Init to load an existing filesystem or Format to create
// a fresh one.
func Mount(store storage.Storage, opts ...Option) (*FS, error) {
	if store == nil {
		return nil, utils.WrapError("storage", utils.ErrNullArg)
	}
	fs := &FS{
		store:          store,
		maxRecords:     DefaultMaxRecords,
		maxRecordBytes: DefaultMaxRecordBytes,
	}
	for _, opt := range opts {
		if err := opt(fs); err != nil {
			return nil, err
		}
	}
	fs.table = core.NewTable(fs.maxRecords)
	return fs, nil
}

// Format zeroes the whole medium and writes the superblock, then resets
// the allocation table. Every record is lost.
func (fs *FS) Format() error {
	if err := fs.store.Seek(0); err != nil {
		return err
	}

	page := utils.GetWipePage()
	defer utils.ReleaseWipePage(page)
	remaining := int(fs.store.Capacity())
	for remaining > 0 {
		n := len(page)
		if remaining < n {
			n = remaining
		}
		if err := fs.store.Write(page[:n]); err != nil {
			return err
		}
		remaining -= n
	}

	sb := core.EncodeSuperblock()
	if err := fs.store.Seek(0); err != nil {
		return err
	}
	if err := fs.store.Write(sb[:]); err != nil {
		return err
	}
	fs.store.Sync()
	fs.table.Reset()
	return nil
}

// Init verifies the superblock and rebuilds the allocation table from the
// medium. It returns ErrNotFormatted when the superblock does not match
// and ErrOutOfRange when the medium structure is corrupt; after
// ErrOutOfRange only Format is safe.
func (fs *FS) Init() error {
	return core.Scan(fs.store, fs.table)
}

// List appends the ids of all existing records to dst in ascending order.
func (fs *FS) List(dst []uint8) []uint8 {
	return fs.table.List(dst)
}

// Count returns the number of existing records.
func (fs *FS) Count() int {
	return fs.table.Count()
}

// FirstFree returns the smallest unused record id, or ErrOutOfRange when
// every slot is taken.
func (fs *FS) FirstFree() (uint8, error) {
	return fs.table.FirstFree()
}

// Close ends the current open cycle of a record, clearing its working
// cursors. No data is flushed; the on-medium state is kept consistent by
// Write itself. Closing a record that does not exist returns
// ErrInvalidOperation.
func (fs *FS) Close(id uint8) error {
	if int(id) >= fs.maxRecords {
		return utils.WrapError(fmt.Sprintf("record %d beyond limit %d", id, fs.maxRecords), utils.ErrInvalidRecord)
	}
	slot := fs.table.Slot(id)
	if slot.Offset == 0 {
		return utils.WrapError(fmt.Sprintf("record %d does not exist", id), utils.ErrInvalidOperation)
	}
	slot.Clear()
	return nil
}

// Sync passes the durability hint down to the storage medium.
func (fs *FS) Sync() {
	fs.store.Sync()
}

// Unmount releases the storage medium. The FS must not be used afterward.
func (fs *FS) Unmount() error {
	return fs.store.Close()
}
