package frogfs

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/internal/writer"
)

// Open prepares a record for use. An existing record has its read cursors
// rewound to the start; a missing record is created, which allocates a
// blank run, writes a zero-sized head descriptor, and leaves the record
// open for writing.
//
// A record already open for writing must be closed first; reopening it
// returns ErrInvalidOperation.
func (fs *FS) Open(id uint8) error {
	if int(id) >= fs.maxRecords {
		return utils.WrapError(fmt.Sprintf("record %d beyond limit %d", id, fs.maxRecords), utils.ErrInvalidRecord)
	}
	slot := fs.table.Slot(id)
	if slot.WriteOffset != 0 {
		return utils.WrapError(fmt.Sprintf("record %d still open for writing", id), utils.ErrInvalidOperation)
	}

	if slot.Offset != 0 {
		// Record exists: rewind for reading.
		slot.Clear()
		return nil
	}

	// Record does not exist: allocate its head fragment.
	run, err := writer.FindContiguous(fs.store)
	if err != nil {
		return err
	}
	head := core.Descriptor{Kind: core.KindNormal, ID: id, PayloadKind: core.PayloadSize, Payload: 0}
	word, err := head.Encode()
	if err != nil {
		return err
	}
	if err := fs.store.Seek(run.SpaceStart); err != nil {
		return err
	}
	if err := fs.store.Write(word[:]); err != nil {
		return err
	}

	slot.Offset = run.SpaceStart
	slot.WriteOffset = run.DataStart
	slot.CurA = run.DataSize
	slot.CurB = 0
	return nil
}

// Write appends data to a record open for writing, chaining continuation
// fragments whenever the current one fills up. The head descriptor of the
// fragment being written is re-stamped with the bytes actually stored
// before Write returns, including on I/O errors and on ErrNoSpace, so the
// medium always describes a coherent prefix.
//
// While writing, the slot registers hold: WriteOffset = data start of the
// current fragment, CurA = its data capacity, CurB = bytes written so far.
func (fs *FS) Write(id uint8, data []byte) error {
	if int(id) >= fs.maxRecords {
		return utils.WrapError(fmt.Sprintf("record %d beyond limit %d", id, fs.maxRecords), utils.ErrInvalidRecord)
	}
	if len(data) > fs.maxRecordBytes {
		return utils.WrapError(fmt.Sprintf("write of %d bytes beyond limit %d", len(data), fs.maxRecordBytes), utils.ErrInvalidRecord)
	}
	slot := fs.table.Slot(id)
	if slot.WriteOffset == 0 {
		return utils.WrapError(fmt.Sprintf("record %d", id), utils.ErrNotWritable)
	}

	written := 0
	for {
		if written >= len(data) {
			// All input stored: stamp the final size of this fragment.
			return fs.updateHead(id, slot)
		}

		if slot.CurB < slot.CurA {
			// Room remains in the current fragment.
			n := int(slot.CurA - slot.CurB)
			if rem := len(data) - written; rem < n {
				n = rem
			}
			if err := fs.store.Seek(slot.WriteOffset + slot.CurB); err != nil {
				return err
			}
			if err := fs.store.Write(data[written : written+n]); err != nil {
				// Keep the head coherent for what made it to the medium.
				_ = fs.updateHead(id, slot)
				return err
			}
			slot.CurB += uint16(n)
			written += n
			if slot.CurB >= slot.CurA {
				// Fragment filled to capacity; stamp it before chaining.
				if err := fs.updateHead(id, slot); err != nil {
					return err
				}
			}
			continue
		}

		// Current fragment is full: chain a continuation.
		run, err := writer.FindContiguous(fs.store)
		if err != nil {
			if stampErr := fs.updateHead(id, slot); stampErr != nil {
				return stampErr
			}
			return err
		}
		ptr := core.Descriptor{Kind: core.KindFragment, ID: id, PayloadKind: core.PayloadPointer, Payload: run.SpaceStart}
		word, err := ptr.Encode()
		if err != nil {
			return err
		}
		if err := fs.store.Seek(slot.WriteOffset + slot.CurA); err != nil {
			return err
		}
		if err := fs.store.Write(word[:]); err != nil {
			return err
		}

		slot.WriteOffset = run.DataStart
		slot.CurA = run.DataSize
		slot.CurB = 0
		// Stamp the continuation head at size zero; it is patched as data
		// lands, so an immediate close leaves the chain consistent.
		if err := fs.updateHead(id, slot); err != nil {
			return err
		}
	}
}

// updateHead re-stamps the head descriptor of the fragment currently open
// for writing with the bytes written so far. The record's own head keeps
// its kind bits and only gets the size fields rewritten; a continuation
// head is re-encoded in full.
func (fs *FS) updateHead(id uint8, slot *core.Slot) error {
	headPos := slot.WriteOffset - core.DescriptorLen
	var word [core.DescriptorLen]byte

	if headPos == slot.Offset {
		if err := fs.store.Seek(headPos); err != nil {
			return err
		}
		if err := fs.store.Read(word[:]); err != nil {
			return err
		}
		word[1] = word[1]&0x80 | uint8(slot.CurB>>8)
		word[2] = uint8(slot.CurB)
	} else {
		head := core.Descriptor{Kind: core.KindFragment, ID: id, PayloadKind: core.PayloadSize, Payload: slot.CurB}
		w, err := head.Encode()
		if err != nil {
			return err
		}
		word = w
	}

	if err := fs.store.Seek(headPos); err != nil {
		return err
	}
	return fs.store.Write(word[:])
}
