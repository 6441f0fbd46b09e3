package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Color type codes, as carried in IHDR.
const (
	ctGrayscale      uint8 = 0
	ctTruecolor      uint8 = 2
	ctIndexed        uint8 = 3
	ctGrayscaleAlpha uint8 = 4
	ctTruecolorAlpha uint8 = 6
)

var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

var validBitDepths = map[uint8][]uint8{
	ctGrayscale:      {1, 2, 4, 8, 16},
	ctTruecolor:      {8, 16},
	ctIndexed:        {1, 2, 4, 8},
	ctGrayscaleAlpha: {8, 16},
	ctTruecolorAlpha: {8, 16},
}

func validateBitDepth(colorType, bitDepth uint8) bool {
	for _, d := range validBitDepths[colorType] {
		if d == bitDepth {
			return true
		}
	}
	return false
}

func channelsForColorType(colorType uint8) int {
	switch colorType {
	case ctGrayscale, ctIndexed:
		return 1
	case ctGrayscaleAlpha:
		return 2
	case ctTruecolor:
		return 3
	case ctTruecolorAlpha:
		return 4
	default:
		return 0
	}
}

type ihdr struct {
	width             uint32
	height            uint32
	bitDepth          uint8
	colorType         uint8
	compressionMethod uint8
	filterMethod      uint8
	interlaceMethod   uint8
}

func parseIHDR(payload []byte) (ihdr, error) {
	if len(payload) != 13 {
		return ihdr{}, newErrorf(InvalidPngData, "IHDR length %d, want 13", len(payload))
	}
	h := ihdr{
		width:             binary.BigEndian.Uint32(payload[0:4]),
		height:            binary.BigEndian.Uint32(payload[4:8]),
		bitDepth:          payload[8],
		colorType:         payload[9],
		compressionMethod: payload[10],
		filterMethod:      payload[11],
		interlaceMethod:   payload[12],
	}
	if h.width == 0 || h.height == 0 {
		return ihdr{}, newError(InvalidPngData, "zero width or height")
	}
	if h.compressionMethod != 0 {
		return ihdr{}, newError(InvalidPngData, "unsupported compression method")
	}
	if h.filterMethod != 0 {
		return ihdr{}, newError(InvalidPngData, "unsupported filter method")
	}
	if h.interlaceMethod != 0 {
		return ihdr{}, newError(InvalidPngData, "interlacing not supported")
	}
	if !validateBitDepth(h.colorType, h.bitDepth) {
		return ihdr{}, newErrorf(InvalidPngData, "bit depth %d invalid for color type %d", h.bitDepth, h.colorType)
	}
	return h, nil
}

// Decode reads a PNG image from r, validating its signature, chunk
// framing and structure, inflating its pixel data, and reconstructing
// a canonical Image in the narrowest pixel format that faithfully
// represents the source.
func Decode(r io.Reader) (*Image, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil || sig != pngSignature {
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, errors.WithStack(err)
		}
		return nil, newError(InvalidSignature, "missing or malformed PNG signature")
	}

	first, err := readChunk(r)
	if err != nil {
		return nil, err
	}
	if first.Tag != TagIHDR {
		return nil, newError(InvalidPngData, "IHDR must be the first chunk")
	}
	hdr, err := parseIHDR(first.Payload)
	if err != nil {
		return nil, err
	}

	var (
		pal      Palette
		havePal  bool
		trns     transparencyKey
		idat     bytes.Buffer
		seenIDAT bool
		seenIEND bool
	)

	for !seenIEND {
		chunk, err := readChunk(r)
		if err != nil {
			return nil, err
		}

		if seenIDAT && chunk.Tag != TagIDAT && chunk.Tag != TagIEND {
			return nil, newError(InvalidPngData, "non-IDAT chunk interrupts IDAT sequence")
		}

		switch chunk.Tag {
		case TagIEND:
			seenIEND = true
		case TagPLTE:
			pal, err = newPalette(chunk.Payload)
			if err != nil {
				return nil, err
			}
			havePal = true
		case TagIDAT:
			seenIDAT = true
			idat.Write(chunk.Payload)
		case TagTRNS:
			trns, err = parseTrns(hdr.colorType, chunk.Payload)
			if err != nil {
				return nil, err
			}
		default:
			// Recognized-but-ignored ancillary chunk; drop the payload.
		}
	}

	if hdr.colorType == ctIndexed && !havePal {
		return nil, newError(InvalidPngData, "indexed color image missing PLTE chunk")
	}

	zr, err := zlib.NewReader(&idat)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	channels := channelsForColorType(hdr.colorType)
	rowBytes := (int(hdr.bitDepth)*channels*int(hdr.width) + 7) / 8
	bpp := bppForFilter(hdr.colorType, int(hdr.bitDepth))

	unfiltered, err := unfilterScanlines(raw, int(hdr.height), rowBytes, bpp)
	if err != nil {
		return nil, err
	}

	img, err := buildImage(hdr, unfiltered, pal, trns)
	if err != nil {
		return nil, err
	}

	if img.Format.BitDepth() == 16 {
		swapSamplePairs(img.Data)
	}

	return img, nil
}

// parseTrns parses a tRNS chunk's payload against the active color
// type, failing if that color type forbids a tRNS chunk at all.
func parseTrns(colorType uint8, payload []byte) (transparencyKey, error) {
	switch colorType {
	case ctGrayscale:
		if len(payload) < 2 {
			return transparencyKey{}, newError(InvalidPngData, "tRNS too short for grayscale")
		}
		return transparencyKey{kind: trnsGray, gray: binary.BigEndian.Uint16(payload[:2])}, nil
	case ctTruecolor:
		if len(payload) < 6 {
			return transparencyKey{}, newError(InvalidPngData, "tRNS too short for truecolor")
		}
		return transparencyKey{
			kind: trnsRGB,
			r:    binary.BigEndian.Uint16(payload[0:2]),
			g:    binary.BigEndian.Uint16(payload[2:4]),
			b:    binary.BigEndian.Uint16(payload[4:6]),
		}, nil
	case ctIndexed:
		return transparencyKey{kind: trnsIndexed, indexed: newTrnsPalette(payload)}, nil
	default:
		return transparencyKey{}, newError(InvalidPngData, "tRNS not permitted for this color type")
	}
}

// buildImage interprets unfiltered scanline data according to the
// IHDR's (color type, bit depth) pair, producing the narrowest Image
// format that represents it, with any tRNS transparency applied.
func buildImage(hdr ihdr, data []byte, pal Palette, trns transparencyKey) (*Image, error) {
	width, height := hdr.width, hdr.height

	switch hdr.colorType {
	case ctGrayscale:
		var samples []byte
		if hdr.bitDepth < 8 {
			samples = unpackSamples(data, int(height), int(width), int(hdr.bitDepth), false)
		} else {
			samples = data
		}
		format := FormatR8
		if hdr.bitDepth == 16 {
			format = FormatR16
		}
		img := &Image{Width: width, Height: height, Format: format, Data: samples}
		if trns.kind == trnsGray {
			key := trns.gray
			if hdr.bitDepth < 8 {
				// Sub-byte samples were scaled to 0..255 by unpackSamples;
				// scale the key the same way so the comparison matches.
				scale := 255 / ((1 << int(hdr.bitDepth)) - 1)
				key *= uint16(scale)
			}
			applyGrayKey(img, key)
		}
		return img, nil

	case ctGrayscaleAlpha:
		format := FormatRa8
		if hdr.bitDepth == 16 {
			format = FormatRa16
		}
		return &Image{Width: width, Height: height, Format: format, Data: data}, nil

	case ctTruecolor:
		format := FormatRgb8
		if hdr.bitDepth == 16 {
			format = FormatRgb16
		}
		img := &Image{Width: width, Height: height, Format: format, Data: data}
		if trns.kind == trnsRGB {
			applyRGBKey(img, trns.r, trns.g, trns.b)
		}
		return img, nil

	case ctTruecolorAlpha:
		format := FormatRgba8
		if hdr.bitDepth == 16 {
			format = FormatRgba16
		}
		return &Image{Width: width, Height: height, Format: format, Data: data}, nil

	case ctIndexed:
		var indices []byte
		if hdr.bitDepth < 8 {
			indices = unpackSamples(data, int(height), int(width), int(hdr.bitDepth), true)
		} else {
			indices = data
		}
		for _, i := range indices {
			if int(i) >= pal.Len() {
				return nil, newErrorf(InvalidPngData, "palette index %d out of range", i)
			}
		}
		if trns.kind == trnsIndexed {
			return expandIndexedWithTrns(width, height, indices, pal, trns.indexed), nil
		}
		return expandIndexed(width, height, indices, pal), nil

	default:
		return nil, newErrorf(InvalidPngData, "unsupported color type %d", hdr.colorType)
	}
}

// swapSamplePairs swaps every adjacent pair of bytes in place,
// converting 16-bit samples between network (big-endian) and host
// native byte order. The operation is its own inverse. On a big-endian
// host the two orders coincide and the data is left unchanged.
func swapSamplePairs(data []byte) {
	if binary.NativeEndian.Uint16([]byte{0, 1}) == 1 {
		return
	}
	for i := 0; i+1 < len(data); i += 2 {
		data[i], data[i+1] = data[i+1], data[i]
	}
}
