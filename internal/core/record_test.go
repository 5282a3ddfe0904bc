package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmiori92/frogfs/internal/utils"
)

func TestEncodeDescriptor(t *testing.T) {
	word, err := Descriptor{Kind: KindNormal, ID: 0, PayloadKind: PayloadSize, Payload: 4}.Encode()
	require.NoError(t, err)
	// Id 0 is biased to 0x01 so the word can never be all-zero.
	require.Equal(t, [3]byte{0x01, 0x80, 0x04}, word)

	word, err = Descriptor{Kind: KindFragment, ID: 3, PayloadKind: PayloadPointer, Payload: 0x1234}.Encode()
	require.NoError(t, err)
	require.Equal(t, [3]byte{0x84, 0x12, 0x34}, word)

	word, err = Descriptor{Kind: KindFragment, ID: 126, PayloadKind: PayloadSize, Payload: MaxPayload}.Encode()
	require.NoError(t, err)
	require.Equal(t, [3]byte{0xFF, 0xFF, 0xFF}, word)
}

func TestEncodeDescriptorRejectsOutOfRange(t *testing.T) {
	_, err := Descriptor{Kind: KindNormal, ID: 127, PayloadKind: PayloadSize, Payload: 0}.Encode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidRecord))

	_, err = Descriptor{Kind: KindNormal, ID: 0, PayloadKind: PayloadSize, Payload: 1 << 15}.Encode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidRecord))
}

func TestDecodeDescriptorRoundTrip(t *testing.T) {
	in := Descriptor{Kind: KindFragment, ID: 17, PayloadKind: PayloadSize, Payload: 300}
	word, err := in.Encode()
	require.NoError(t, err)

	out, err := Decode(word[:])
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestDecodeBlankAndInvalid(t *testing.T) {
	_, err := Decode([]byte{0x00, 0x00, 0x00})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))

	// Kind bit set but zero id bits: not blank, not a valid descriptor.
	_, err = Decode([]byte{0x80, 0x12, 0x34})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))

	_, err = Decode([]byte{0x01})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrOutOfRange))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank([]byte{0, 0, 0}))
	assert.True(t, IsBlank([]byte{0, 0}), "window shorter than a descriptor is blank")
	assert.True(t, IsBlank(nil))
	assert.False(t, IsBlank([]byte{0, 0, 1}))
	assert.False(t, IsBlank([]byte{1, 0, 0}))
}
