package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnpackSamples_Grayscale1Bit(t *testing.T) {
	// One row, width 8, bit depth 1: 0b10110010.
	packed := []byte{0b10110010}
	got := unpackSamples(packed, 1, 8, 1, false)
	want := []byte{255, 0, 255, 255, 0, 0, 255, 0}
	assert.Equal(t, want, got)
}

func TestUnpackSamples_Grayscale4Bit(t *testing.T) {
	packed := []byte{0x1f}
	got := unpackSamples(packed, 1, 2, 4, false)
	// 0x1 -> 1*17=17, 0xf -> 15*17=255
	assert.Equal(t, []byte{17, 255}, got)
}

func TestUnpackSamples_Indexed1BitXORQuirk(t *testing.T) {
	packed := []byte{0b10000000}
	got := unpackSamples(packed, 1, 8, 1, true)
	// The leading 1 bit is XORed to 0, every trailing 0 bit XORed to 1.
	want := []byte{0, 1, 1, 1, 1, 1, 1, 1}
	assert.Equal(t, want, got)
}

func TestUnpackSamples_IndexedWiderThan1BitNoQuirk(t *testing.T) {
	packed := []byte{0b11100100}
	got := unpackSamples(packed, 1, 4, 2, true)
	assert.Equal(t, []byte{3, 2, 1, 0}, got)
}

func TestPackSamples_InverseOfUnpack4Bit(t *testing.T) {
	samples := []byte{1, 15, 3, 0}
	packed := packSamples(samples, 1, 4, 4)
	assert.Equal(t, []byte{0x1f, 0x30}, packed)
}
