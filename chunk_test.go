package png

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadChunk_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello chunk")
	require.NoError(t, writeChunk(&buf, TagTEXT, payload))

	got, err := readChunk(&buf)
	require.NoError(t, err)
	assert.Equal(t, TagTEXT, got.Tag)
	assert.Equal(t, payload, got.Payload)
}

func TestReadChunk_CrcMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunk(&buf, TagIEND, nil))

	raw := buf.Bytes()
	// Flip a bit in the trailing CRC.
	raw[len(raw)-1] ^= 0xff

	_, err := readChunk(bytes.NewReader(raw))
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidCrc, reason)
}

func TestReadChunk_UnrecognizedTag(t *testing.T) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], 0)
	copy(hdr[4:8], "Xyz!")
	var crcBytes [4]byte
	binary.BigEndian.PutUint32(crcBytes[:], computeCRC([4]byte{'X', 'y', 'z', '!'}, nil))

	raw := append(append([]byte{}, hdr[:]...), crcBytes[:]...)
	_, err := readChunk(bytes.NewReader(raw))
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidChunkType, reason)
}
