package png

// PixelFormat tags the channel set and bit depth of an Image's pixel
// data. The zero value is not a valid format.
type PixelFormat int

const (
	FormatR8 PixelFormat = iota + 1
	FormatR16
	FormatRa8
	FormatRa16
	FormatRgb8
	FormatRgb16
	FormatRgba8
	FormatRgba16
)

type formatInfo struct {
	name          string
	channels      int
	bitDepth      int
	bytesPerPixel int
	colorType     uint8
}

var formatTable = map[PixelFormat]formatInfo{
	FormatR8:     {"R8", 1, 8, 1, ctGrayscale},
	FormatR16:    {"R16", 1, 16, 2, ctGrayscale},
	FormatRa8:    {"Ra8", 2, 8, 2, ctGrayscaleAlpha},
	FormatRa16:   {"Ra16", 2, 16, 4, ctGrayscaleAlpha},
	FormatRgb8:   {"Rgb8", 3, 8, 3, ctTruecolor},
	FormatRgb16:  {"Rgb16", 3, 16, 6, ctTruecolor},
	FormatRgba8:  {"Rgba8", 4, 8, 4, ctTruecolorAlpha},
	FormatRgba16: {"Rgba16", 4, 16, 8, ctTruecolorAlpha},
}

// String returns the format's short name, e.g. "Rgba8".
func (f PixelFormat) String() string {
	if info, ok := formatTable[f]; ok {
		return info.name
	}
	return "Invalid"
}

// BytesPerPixel returns the number of bytes one pixel occupies in an
// Image's tightly packed data buffer.
func (f PixelFormat) BytesPerPixel() int {
	return formatTable[f].bytesPerPixel
}

// Channels returns the number of samples per pixel (1, 2, 3, or 4).
func (f PixelFormat) Channels() int {
	return formatTable[f].channels
}

// BitDepth returns the bit depth per sample (8 or 16).
func (f PixelFormat) BitDepth() int {
	return formatTable[f].bitDepth
}

// HasAlpha reports whether the format carries an explicit alpha
// channel.
func (f PixelFormat) HasAlpha() bool {
	switch f {
	case FormatRa8, FormatRa16, FormatRgba8, FormatRgba16:
		return true
	default:
		return false
	}
}

// Image is the canonical in-memory pixel buffer produced by Decode
// and consumed by Encode. Data is tightly packed, row-major,
// left-to-right, top-to-bottom, with no padding between rows. For
// 16-bit formats, each sample occupies two bytes in the host's native
// byte order, not network order.
type Image struct {
	Width  uint32
	Height uint32
	Format PixelFormat
	Data   []byte
}

// NewImage allocates an Image of the given dimensions and format with
// a zeroed pixel buffer.
func NewImage(width, height uint32, format PixelFormat) *Image {
	bpp := format.BytesPerPixel()
	return &Image{
		Width:  width,
		Height: height,
		Format: format,
		Data:   make([]byte, uint64(width)*uint64(height)*uint64(bpp)),
	}
}

// rowBytes returns the number of storage bytes needed for one row of
// pixel data at this image's width and format.
func (img *Image) rowBytes() int {
	return int(img.Width) * img.Format.BytesPerPixel()
}

// AddAlpha inserts a fully opaque alpha channel into R8/R16/Rgb8/Rgb16
// images, converting them to Ra8/Ra16/Rgba8/Rgba16 respectively. It is
// a no-op for formats that already carry alpha, so calling it twice
// in a row only has an effect the first time.
func (img *Image) AddAlpha() {
	switch img.Format {
	case FormatR8:
		img.Data = interleaveAppend(img.Data, 1, []byte{0xff})
		img.Format = FormatRa8
	case FormatR16:
		img.Data = interleaveAppend(img.Data, 2, []byte{0xff, 0xff})
		img.Format = FormatRa16
	case FormatRgb8:
		img.Data = interleaveAppend(img.Data, 3, []byte{0xff})
		img.Format = FormatRgba8
	case FormatRgb16:
		img.Data = interleaveAppend(img.Data, 6, []byte{0xff, 0xff})
		img.Format = FormatRgba16
	}
}

// AddChannels triplicates a single gray channel into three color
// channels, converting R8->Rgb8, R16->Rgb16, Ra8->Rgba8, Ra16->Rgba16.
// It is a no-op for formats that already carry three color channels.
func (img *Image) AddChannels() {
	switch img.Format {
	case FormatR8:
		img.Data = triplicateGray(img.Data, 1, false)
		img.Format = FormatRgb8
	case FormatR16:
		img.Data = triplicateGray(img.Data, 2, false)
		img.Format = FormatRgb16
	case FormatRa8:
		img.Data = triplicateGray(img.Data, 1, true)
		img.Format = FormatRgba8
	case FormatRa16:
		img.Data = triplicateGray(img.Data, 2, true)
		img.Format = FormatRgba16
	}
}

// interleaveAppend copies src in groups of sampleWidth bytes, appending
// tail after each group. Used to insert an opaque alpha sample after
// every pixel's existing channels.
func interleaveAppend(src []byte, sampleWidth int, tail []byte) []byte {
	n := len(src) / sampleWidth
	out := make([]byte, 0, len(src)+n*len(tail))
	for i := 0; i < n; i++ {
		out = append(out, src[i*sampleWidth:(i+1)*sampleWidth]...)
		out = append(out, tail...)
	}
	return out
}

// triplicateGray expands a gray (optionally gray+alpha) buffer into an
// RGB(A) buffer by repeating the gray sample three times.
func triplicateGray(src []byte, sampleWidth int, hasAlpha bool) []byte {
	unit := sampleWidth
	if hasAlpha {
		unit *= 2
	}
	n := len(src) / unit
	outUnit := sampleWidth*3 + unit - sampleWidth
	out := make([]byte, 0, n*outUnit)
	for i := 0; i < n; i++ {
		pixel := src[i*unit : (i+1)*unit]
		gray := pixel[:sampleWidth]
		out = append(out, gray...)
		out = append(out, gray...)
		out = append(out, gray...)
		if hasAlpha {
			out = append(out, pixel[sampleWidth:]...)
		}
	}
	return out
}
