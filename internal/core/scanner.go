package core

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/storage"
)

// Scan verifies the superblock and rebuilds the allocation table from the
// medium. The medium is walked once from offset 5: blank bytes are skipped
// one at a time, every nonzero byte starts a descriptor, and declared data
// payloads are stepped over without being read.
//
// Scan returns ErrNotFormatted when the superblock does not match and
// ErrOutOfRange on any structural violation (duplicate record heads, ids
// beyond the table, payloads overrunning the medium). On ErrOutOfRange the
// table is left partially populated; the only safe follow-up is a format.
func Scan(s storage.Storage, t *Table) error {
	t.Reset()

	capacity := s.Capacity()
	sb := make([]byte, SuperblockLen)
	if err := s.Seek(0); err != nil {
		return err
	}
	if err := s.Read(sb); err != nil {
		return utils.WrapError("superblock read failed", err)
	}
	if err := VerifySuperblock(sb); err != nil {
		return err
	}

	var (
		one  [1]byte
		word [DescriptorLen]byte
	)
	pos := uint16(SuperblockLen)
	for pos < capacity {
		if err := s.Seek(pos); err != nil {
			return err
		}
		if err := s.Read(one[:]); err != nil {
			return utils.WrapErrorAt("scan read failed", pos, err)
		}
		if one[0] == 0 {
			pos++
			continue
		}

		// A nonzero byte starts a descriptor. A truncated descriptor at
		// the end of the medium is treated as end-of-medium.
		if int(capacity)-int(pos) < DescriptorLen {
			return nil
		}
		if err := s.Seek(pos); err != nil {
			return err
		}
		if err := s.Read(word[:]); err != nil {
			return utils.WrapErrorAt("descriptor read failed", pos, err)
		}
		d, err := Decode(word[:])
		if err != nil {
			return err
		}
		if int(d.ID) >= t.Len() {
			return utils.WrapErrorAt(fmt.Sprintf("record id %d beyond table of %d", d.ID, t.Len()), pos, utils.ErrOutOfRange)
		}

		switch {
		case d.Kind == KindNormal && d.PayloadKind == PayloadSize:
			slot := t.Slot(d.ID)
			if slot.Offset != 0 {
				return utils.WrapErrorAt(fmt.Sprintf("second head descriptor for record %d", d.ID), pos, utils.ErrOutOfRange)
			}
			slot.Offset = pos
			pos += DescriptorLen
			if int(pos)+int(d.Payload) > int(capacity) {
				return utils.WrapErrorAt(fmt.Sprintf("record %d data overruns medium", d.ID), pos, utils.ErrOutOfRange)
			}
			pos += d.Payload

		case d.Kind == KindFragment && d.PayloadKind == PayloadPointer:
			// The continuation itself is discovered when the walk reaches
			// its address; only the pointer descriptor occupies space here.
			if d.Payload <= SuperblockLen || d.Payload >= capacity {
				return utils.WrapErrorAt(fmt.Sprintf("continuation pointer %d out of range", d.Payload), pos, utils.ErrOutOfRange)
			}
			pos += DescriptorLen

		case d.Kind == KindFragment && d.PayloadKind == PayloadSize:
			pos += DescriptorLen
			if int(pos)+int(d.Payload) > int(capacity) {
				return utils.WrapErrorAt(fmt.Sprintf("fragment of record %d overruns medium", d.ID), pos, utils.ErrOutOfRange)
			}
			pos += d.Payload

		default:
			return utils.WrapErrorAt("unsupported descriptor", pos, utils.ErrOutOfRange)
		}
	}
	return nil
}
