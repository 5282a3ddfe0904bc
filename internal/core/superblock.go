// Package core provides low-level FrogFS on-medium format parsing and
// generation. It handles the superblock, the 3-byte record descriptors,
// the in-RAM allocation table, and the boot-time scan.
package core

import (
	"encoding/binary"

	"github.com/lmiori92/frogfs/internal/utils"
)

// FrogFS medium signature and supported version.
const (
	// Magic is the 32-bit little-endian signature ("SLYf") stored at
	// offset 0 of every formatted medium.
	Magic uint32 = 0x66594C53

	// Version is the format version stored at offset 4.
	Version byte = 1

	// SuperblockLen is the size of the superblock in bytes. The record
	// body starts right after it.
	SuperblockLen = 5
)

// EncodeSuperblock returns the 5-byte superblock: the little-endian magic
// followed by the version byte.
func EncodeSuperblock() [SuperblockLen]byte {
	var sb [SuperblockLen]byte
	binary.LittleEndian.PutUint32(sb[0:4], Magic)
	sb[4] = Version
	return sb
}

// VerifySuperblock checks the magic and version at the start of buf.
// It returns ErrNotFormatted on any mismatch.
func VerifySuperblock(buf []byte) error {
	if len(buf) < SuperblockLen {
		return utils.WrapError("medium too small for a superblock", utils.ErrNotFormatted)
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != Magic {
		return utils.WrapError("signature mismatch", utils.ErrNotFormatted)
	}
	if buf[4] != Version {
		return utils.WrapError("version mismatch", utils.ErrNotFormatted)
	}
	return nil
}
