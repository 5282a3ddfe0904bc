// Package writer provides the medium-side write infrastructure for FrogFS:
// the free-space allocator that the record engine draws fragments from.
package writer

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/core"
	"github.com/lmiori92/frogfs/internal/utils"
	"github.com/lmiori92/frogfs/storage"
)

// MinRun is the smallest usable blank run: a head descriptor, at least one
// data byte, and three bytes reserved for a trailing continuation pointer.
const MinRun = core.DescriptorLen + 1 + core.DescriptorLen

// Run describes a blank region handed out by FindContiguous.
//
// SpaceStart is the first byte of the run and becomes the fragment's head
// descriptor position. DataStart is SpaceStart plus the descriptor length.
// DataSize is the number of data bytes the caller may write into the run
// while keeping three trailing bytes free for a continuation pointer.
type Run struct {
	SpaceStart uint16
	DataStart  uint16
	DataSize   uint16
}

// FindContiguous locates the lowest-addressed blank run of at least MinRun
// bytes.
//
// The search starts after the superblock and honors existing structures:
// descriptors are decoded and their declared data payloads stepped over, so
// zero bytes inside record data are never mistaken for free space. Only a
// true blank run qualifies.
//
// Strategy:
//   - First-fit: the first qualifying run wins, low addresses first
//   - The run is measured to its end so the caller can fill it completely
//   - No splitting or coalescing state is kept; the medium is the only
//     source of truth
//
// Returns ErrNoSpace when no qualifying run exists and ErrOutOfRange when
// the walk meets a descriptor that violates the format.
func FindContiguous(s storage.Storage) (Run, error) {
	capacity := s.Capacity()

	var (
		one  [1]byte
		word [core.DescriptorLen]byte
	)
	pos := uint16(core.SuperblockLen)
	for pos < capacity {
		if err := s.Seek(pos); err != nil {
			return Run{}, err
		}
		if err := s.Read(one[:]); err != nil {
			return Run{}, utils.WrapErrorAt("allocator read failed", pos, err)
		}

		if one[0] != 0 {
			// Occupied: step over the descriptor and whatever it declares.
			if int(capacity)-int(pos) < core.DescriptorLen {
				break
			}
			if err := s.Seek(pos); err != nil {
				return Run{}, err
			}
			if err := s.Read(word[:]); err != nil {
				return Run{}, utils.WrapErrorAt("descriptor read failed", pos, err)
			}
			d, err := core.Decode(word[:])
			if err != nil {
				return Run{}, err
			}
			pos += core.DescriptorLen
			if d.PayloadKind == core.PayloadSize {
				if int(pos)+int(d.Payload) > int(capacity) {
					return Run{}, utils.WrapErrorAt(fmt.Sprintf("data of record %d overruns medium", d.ID), pos, utils.ErrOutOfRange)
				}
				pos += d.Payload
			}
			continue
		}

		// Blank byte: measure the run.
		runStart := pos
		pos++
		for pos < capacity {
			if err := s.Read(one[:]); err != nil {
				return Run{}, utils.WrapErrorAt("allocator read failed", pos, err)
			}
			if one[0] != 0 {
				break
			}
			pos++
		}
		runLen := pos - runStart
		if runLen >= MinRun {
			return Run{
				SpaceStart: runStart,
				DataStart:  runStart + core.DescriptorLen,
				DataSize:   runLen - MinRun,
			}, nil
		}
	}
	return Run{}, utils.WrapError("medium full or too fragmented", utils.ErrNoSpace)
}
