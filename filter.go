package png

// Filter selector values, as stored in the leading byte of each
// post-DEFLATE scanline.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// bppForFilter returns the byte offset to the "previous pixel" used
// by the filter engine's neighbor accessors, per spec §4.3. Indexed
// color and sub-byte grayscale always use 1, since filtering operates
// on raw storage bytes rather than logical pixels in those cases.
func bppForFilter(colorType uint8, bitDepth int) int {
	switch colorType {
	case ctIndexed:
		return 1
	case ctGrayscale:
		if bitDepth < 8 {
			return 1
		}
		return bitDepth / 8
	case ctGrayscaleAlpha:
		return 2 * (bitDepth / 8)
	case ctTruecolor:
		return 3 * (bitDepth / 8)
	case ctTruecolorAlpha:
		return 4 * (bitDepth / 8)
	default:
		return 1
	}
}

// paeth is the PNG Paeth predictor: whichever of a, b, c is closest to
// p = a + b - c, with ties broken in the order a, b, c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// unfilterScanlines reverses the five PNG row filters over a
// post-DEFLATE byte stream laid out as height rows of
// (1 filter byte + rowBytes data bytes), returning the concatenated
// unfiltered scanline data (without the filter bytes) in a new buffer.
// The input stream is not modified.
func unfilterScanlines(stream []byte, height int, rowBytes int, bpp int) ([]byte, error) {
	stride := 1 + rowBytes
	if len(stream) < height*stride {
		return nil, newError(InvalidPngData, "truncated scanline data")
	}

	out := make([]byte, height*rowBytes)
	prevRow := make([]byte, rowBytes)
	curRow := make([]byte, rowBytes)

	for y := 0; y < height; y++ {
		rowStart := y * stride
		filterType := stream[rowStart]
		raw := stream[rowStart+1 : rowStart+1+rowBytes]

		switch filterType {
		case filterNone:
			copy(curRow, raw)
		case filterSub:
			for i := 0; i < rowBytes; i++ {
				var a byte
				if i >= bpp {
					a = curRow[i-bpp]
				}
				curRow[i] = raw[i] + a
			}
		case filterUp:
			for i := 0; i < rowBytes; i++ {
				curRow[i] = raw[i] + prevRow[i]
			}
		case filterAverage:
			for i := 0; i < rowBytes; i++ {
				var a, b int
				if i >= bpp {
					a = int(curRow[i-bpp])
				}
				b = int(prevRow[i])
				curRow[i] = raw[i] + byte((a+b)/2)
			}
		case filterPaeth:
			for i := 0; i < rowBytes; i++ {
				var a, c byte
				if i >= bpp {
					a = curRow[i-bpp]
					c = prevRow[i-bpp]
				}
				b := prevRow[i]
				curRow[i] = raw[i] + paeth(a, b, c)
			}
		default:
			return nil, newErrorf(InvalidPngData, "bad filter type %d", filterType)
		}

		copy(out[y*rowBytes:(y+1)*rowBytes], curRow)
		prevRow, curRow = curRow, prevRow
	}

	return out, nil
}

// filterScanlinesPaeth applies the Paeth forward filter to every row
// of raw pixel data, producing a post-filter stream with a leading
// selector byte of filterPaeth on every row.
func filterScanlinesPaeth(data []byte, height int, rowBytes int, bpp int) []byte {
	stride := 1 + rowBytes
	out := make([]byte, height*stride)
	prevRow := make([]byte, rowBytes)

	for y := 0; y < height; y++ {
		curRow := data[y*rowBytes : (y+1)*rowBytes]
		dst := out[y*stride : (y+1)*stride]
		dst[0] = filterPaeth
		for i := 0; i < rowBytes; i++ {
			var a, c byte
			if i >= bpp {
				a = curRow[i-bpp]
				c = prevRow[i-bpp]
			}
			b := prevRow[i]
			dst[1+i] = curRow[i] - paeth(a, b, c)
		}
		prevRow = curRow
	}
	return out
}

// filterScanlinesNone produces a post-filter stream with a leading
// selector byte of filterNone on every row and data bytes unchanged.
func filterScanlinesNone(data []byte, height int, rowBytes int) []byte {
	stride := 1 + rowBytes
	out := make([]byte, height*stride)
	for y := 0; y < height; y++ {
		dst := out[y*stride : (y+1)*stride]
		dst[0] = filterNone
		copy(dst[1:], data[y*rowBytes:(y+1)*rowBytes])
	}
	return out
}
