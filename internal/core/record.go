package core

import (
	"fmt"

	"github.com/lmiori92/frogfs/internal/utils"
)

// RecordKind tags a descriptor as the start of a record or as part of a
// fragment chain.
type RecordKind uint8

// Descriptor record kinds (bit 7 of byte 0).
const (
	KindNormal   RecordKind = 0
	KindFragment RecordKind = 1
)

// PayloadKind tags the descriptor payload as a byte offset or a length.
type PayloadKind uint8

// Descriptor payload kinds (bit 7 of byte 1).
const (
	PayloadPointer PayloadKind = 0
	PayloadSize    PayloadKind = 1
)

const (
	// DescriptorLen is the size of a record descriptor in bytes.
	DescriptorLen = 3

	// MaxRecordID is the largest encodable record id. Byte 0 carries the
	// id biased by +1 in its low 7 bits, so 126 is the ceiling.
	MaxRecordID = 126

	// MaxPayload is the largest encodable 15-bit payload.
	MaxPayload = 1<<15 - 1

	// indexBias keeps byte 0 of a descriptor nonzero so that metadata is
	// always distinguishable from blank (all-zero) storage.
	indexBias = 1
)

// Descriptor is a decoded 3-byte record metadata word.
type Descriptor struct {
	Kind        RecordKind
	ID          uint8
	PayloadKind PayloadKind
	Payload     uint16
}

// IsBlank reports whether word is free space: all bytes zero, or too short
// to hold a descriptor at all.
func IsBlank(word []byte) bool {
	if len(word) < DescriptorLen {
		return true
	}
	return word[0] == 0 && word[1] == 0 && word[2] == 0
}

// Encode packs the descriptor into its 3-byte on-medium form.
// It fails when the id or the payload does not fit the format.
func (d Descriptor) Encode() ([DescriptorLen]byte, error) {
	var word [DescriptorLen]byte
	if d.ID > MaxRecordID {
		return word, utils.WrapError(fmt.Sprintf("record id %d not encodable", d.ID), utils.ErrInvalidRecord)
	}
	if d.Payload > MaxPayload {
		return word, utils.WrapError(fmt.Sprintf("payload %d not encodable", d.Payload), utils.ErrInvalidRecord)
	}
	word[0] = (uint8(d.Kind) << 7) | (d.ID + indexBias)
	word[1] = (uint8(d.PayloadKind) << 7) | uint8(d.Payload>>8)
	word[2] = uint8(d.Payload)
	return word, nil
}

// Decode unpacks a 3-byte metadata word. A blank word and a word whose id
// bits are zero without being blank are both structural errors here;
// callers that expect free space check IsBlank first.
func Decode(word []byte) (Descriptor, error) {
	var d Descriptor
	if len(word) < DescriptorLen {
		return d, utils.WrapError("short descriptor", utils.ErrOutOfRange)
	}
	if IsBlank(word) {
		return d, utils.WrapError("blank descriptor", utils.ErrOutOfRange)
	}
	biased := word[0] & 0x7F
	if biased == 0 {
		return d, utils.WrapError("descriptor with zero id bits", utils.ErrOutOfRange)
	}
	d.Kind = RecordKind(word[0] >> 7)
	d.ID = biased - indexBias
	d.PayloadKind = PayloadKind(word[1] >> 7)
	d.Payload = uint16(word[1]&0x7F)<<8 | uint16(word[2])
	return d, nil
}
