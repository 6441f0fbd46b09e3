package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelFormat_Accessors(t *testing.T) {
	assert.Equal(t, "Rgba16", FormatRgba16.String())
	assert.Equal(t, 8, FormatRgba16.BytesPerPixel())
	assert.Equal(t, 4, FormatRgba16.Channels())
	assert.Equal(t, 16, FormatRgba16.BitDepth())
	assert.True(t, FormatRgba16.HasAlpha())
	assert.False(t, FormatRgb8.HasAlpha())
}

func TestAddAlpha_R8(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Format: FormatR8, Data: []byte{10, 20}}
	img.AddAlpha()
	assert.Equal(t, FormatRa8, img.Format)
	assert.Equal(t, []byte{10, 0xff, 20, 0xff}, img.Data)
}

func TestAddAlpha_IdempotentOnAlreadyAlpha(t *testing.T) {
	img := &Image{Width: 1, Height: 1, Format: FormatRa8, Data: []byte{10, 0x80}}
	img.AddAlpha()
	assert.Equal(t, FormatRa8, img.Format)
	assert.Equal(t, []byte{10, 0x80}, img.Data)
}

func TestAddChannels_R8(t *testing.T) {
	img := &Image{Width: 2, Height: 1, Format: FormatR8, Data: []byte{10, 20}}
	img.AddChannels()
	assert.Equal(t, FormatRgb8, img.Format)
	assert.Equal(t, []byte{10, 10, 10, 20, 20, 20}, img.Data)
}

func TestAddChannels_Ra16PreservesAlpha(t *testing.T) {
	img := &Image{Width: 1, Height: 1, Format: FormatRa16, Data: []byte{0x01, 0x02, 0xff, 0xff}}
	img.AddChannels()
	assert.Equal(t, FormatRgba16, img.Format)
	assert.Equal(t, []byte{0x01, 0x02, 0x01, 0x02, 0x01, 0x02, 0xff, 0xff}, img.Data)
}

func TestNewImage_ZeroedBuffer(t *testing.T) {
	img := NewImage(4, 3, FormatRgba8)
	assert.Equal(t, 4*3*4, len(img.Data))
	for _, b := range img.Data {
		assert.Equal(t, byte(0), b)
	}
}
