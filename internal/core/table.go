package core

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/utils"
)

// FragmentExhausted marks a read cursor whose current fragment has been
// consumed: the next descriptor sits at the slot's CurA position.
const FragmentExhausted = 0xFFFF

// Slot is the in-RAM state of one record.
//
// Offset is the medium position of the record's head descriptor; zero
// means the record does not exist. CurA and CurB are working registers
// whose meaning depends on the record state: while reading, CurA is the
// current medium position and CurB the bytes left in the current fragment
// (or FragmentExhausted); while writing, CurA is the capacity of the
// current fragment and CurB the bytes written into it. WriteOffset is the
// data start of the fragment being written; nonzero means open for writing.
type Slot struct {
	Offset      uint16
	CurA        uint16
	CurB        uint16
	WriteOffset uint16
}

// Clear resets the working registers, leaving the record allocated.
func (s *Slot) Clear() {
	s.CurA = 0
	s.CurB = 0
	s.WriteOffset = 0
}

// Table is the allocation table: one slot per possible record id.
// It is rebuilt from the medium by Scan and never stored on it.
type Table struct {
	slots []Slot
}

// NewTable creates a table for maxRecords record ids, all empty.
func NewTable(maxRecords int) *Table {
	return &Table{slots: make([]Slot, maxRecords)}
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// Slot returns the slot for id. The caller guarantees id < Len().
func (t *Table) Slot(id uint8) *Slot {
	return &t.slots[id]
}

// Reset zeroes every slot.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = Slot{}
	}
}

// List appends the ids of all existing records to dst in ascending order.
func (t *Table) List(dst []uint8) []uint8 {
	for i := range t.slots {
		if t.slots[i].Offset != 0 {
			dst = append(dst, uint8(i))
		}
	}
	return dst
}

// Count returns the number of existing records.
func (t *Table) Count() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].Offset != 0 {
			n++
		}
	}
	return n
}

// FirstFree returns the smallest id whose slot is empty, or ErrOutOfRange
// when every slot is in use.
func (t *Table) FirstFree() (uint8, error) {
	for i := range t.slots {
		if t.slots[i].Offset == 0 {
			return uint8(i), nil
		}
	}
	return 0, utils.WrapError(fmt.Sprintf("all %d record slots in use", len(t.slots)), utils.ErrOutOfRange)
}
