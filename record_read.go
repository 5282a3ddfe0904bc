package frogfs

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
)

// Read copies up to len(buf) bytes from the record into buf, following
// the fragment chain as needed. The read cursor persists across calls
// until Close, so a record can be consumed in arbitrary slices. Reads of
// different records may be interleaved freely.
//
// The returned count is the number of bytes stored in buf; it is short
// when the record ends first.
func (fs *FS) Read(id uint8, buf []byte) (int, error) {
	return fs.traverse(id, buf, len(buf), false)
}

// Erase removes a record: every descriptor and data byte of its fragment
// chain is zeroed on the medium, then the allocation-table slot is
// cleared. The freed bytes become a blank run for future allocations.
func (fs *FS) Erase(id uint8) error {
	if int(id) >= fs.maxRecords {
		return utils.WrapError(fmt.Sprintf("record %d beyond limit %d", id, fs.maxRecords), utils.ErrInvalidRecord)
	}
	slot := fs.table.Slot(id)
	if slot.Offset == 0 {
		return utils.WrapError(fmt.Sprintf("record %d does not exist", id), utils.ErrInvalidRecord)
	}
	if slot.WriteOffset != 0 {
		return utils.WrapError(fmt.Sprintf("record %d open for writing", id), utils.ErrNotReadable)
	}

	// Restart the traversal from the head, whatever reads happened before.
	slot.Clear()
	if _, err := fs.traverse(id, nil, 0, true); err != nil {
		return err
	}
	slot.Clear()
	slot.Offset = 0
	return nil
}

// traverse is the sequential walk shared by Read and Erase. When erasing,
// data regions and fragment descriptors are zeroed in place instead of
// being copied out, and the requested count is stretched to cover the
// whole record.
//
// While traversing, the slot registers hold: CurA = current medium
// position, CurB = bytes left in the current fragment, with
// core.FragmentExhausted meaning "the next descriptor sits at CurA".
func (fs *FS) traverse(id uint8, buf []byte, want int, erase bool) (int, error) {
	if int(id) >= fs.maxRecords {
		return 0, utils.WrapError(fmt.Sprintf("record %d beyond limit %d", id, fs.maxRecords), utils.ErrInvalidRecord)
	}
	if want > fs.maxRecordBytes {
		return 0, utils.WrapError(fmt.Sprintf("read of %d bytes beyond limit %d", want, fs.maxRecordBytes), utils.ErrInvalidRecord)
	}
	slot := fs.table.Slot(id)
	if slot.Offset == 0 {
		return 0, utils.WrapError(fmt.Sprintf("record %d does not exist", id), utils.ErrInvalidRecord)
	}
	if slot.WriteOffset != 0 {
		return 0, utils.WrapError(fmt.Sprintf("record %d open for writing", id), utils.ErrNotReadable)
	}

	capacity := fs.store.Capacity()
	got := 0
	var word [core.DescriptorLen]byte
	for {
		switch {
		case slot.CurA > 0 && slot.CurB == core.FragmentExhausted:
			// Fragment consumed: decode whatever descriptor follows.
			descPos := slot.CurA
			if int(capacity)-int(descPos) < core.DescriptorLen {
				return got, nil
			}
			if err := fs.store.Seek(descPos); err != nil {
				return got, err
			}
			if err := fs.store.Read(word[:]); err != nil {
				return got, err
			}
			if core.IsBlank(word[:]) {
				// Ran into free space: nothing follows this record.
				return got, nil
			}
			d, err := core.Decode(word[:])
			if err != nil || d.ID != id {
				// Stale or foreign metadata ends the walk.
				return got, nil
			}
			switch {
			case d.Kind == core.KindFragment && d.PayloadKind == core.PayloadSize:
				slot.CurA = descPos + core.DescriptorLen
				slot.CurB = d.Payload
			case d.Kind == core.KindFragment && d.PayloadKind == core.PayloadPointer:
				if d.Payload <= core.SuperblockLen || d.Payload >= capacity {
					return got, utils.WrapErrorAt(fmt.Sprintf("continuation pointer %d out of range", d.Payload), descPos, utils.ErrOutOfRange)
				}
				slot.CurA = d.Payload
				// CurB stays exhausted: the continuation head is decoded
				// on the next iteration.
			default:
				// A record head: the next record starts here, this one is
				// done.
				return got, nil
			}
			if erase {
				if err := fs.eraseRange(descPos, core.DescriptorLen); err != nil {
					return got, err
				}
			}

		case slot.CurA > 0:
			// Data bytes remain in the current fragment.
			var n int
			if erase {
				n = int(slot.CurB)
				if err := fs.eraseRange(slot.CurA, slot.CurB); err != nil {
					return got, err
				}
			} else {
				n = int(slot.CurB)
				if rem := want - got; rem < n {
					n = rem
				}
				if n > 0 {
					if err := fs.store.Seek(slot.CurA); err != nil {
						return got, err
					}
					if err := fs.store.Read(buf[got : got+n]); err != nil {
						return got, err
					}
				}
			}
			slot.CurA += uint16(n)
			slot.CurB -= uint16(n)
			got += n
			if slot.CurB == 0 {
				slot.CurB = core.FragmentExhausted
			}

		default:
			// First operation after open: load the record head.
			if err := fs.store.Seek(slot.Offset); err != nil {
				return got, err
			}
			if err := fs.store.Read(word[:]); err != nil {
				return got, err
			}
			d, err := core.Decode(word[:])
			if err != nil {
				return got, err
			}
			slot.CurA = slot.Offset + core.DescriptorLen
			slot.CurB = d.Payload
			if erase {
				if err := fs.eraseRange(slot.Offset, core.DescriptorLen); err != nil {
					return got, err
				}
				// Stretch the walk over the entire fragment chain.
				want = int(capacity)
			}
		}

		if got >= want {
			return got, nil
		}
	}
}

// eraseRange zeroes size bytes of the medium starting at pos.
func (fs *FS) eraseRange(pos, size uint16) error {
	if size == 0 {
		return nil
	}
	if err := fs.store.Seek(pos); err != nil {
		return err
	}
	page := utils.GetWipePage()
	defer utils.ReleaseWipePage(page)
	remaining := int(size)
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
	return nil
}
