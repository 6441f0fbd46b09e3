package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
)

// CompressionLevel selects the zlib compression effort used when
// deflating the IDAT stream. It does not affect decoded pixels.
type CompressionLevel int

const (
	CompressionDefault CompressionLevel = iota
	CompressionNone
	CompressionFast
	CompressionBest
)

func (c CompressionLevel) zlibLevel() int {
	switch c {
	case CompressionNone:
		return zlib.NoCompression
	case CompressionFast:
		return zlib.BestSpeed
	case CompressionBest:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// Options configures Encode.
type Options struct {
	Compression CompressionLevel
	// WriteTimestamp, when true, emits a tIME chunk carrying Timestamp.
	WriteTimestamp bool
	Timestamp      time.Time
}

// Encode writes img to w as a complete PNG stream: signature, IHDR, an
// optional tIME, a single IDAT, and IEND.
func Encode(w io.Writer, img *Image, opts Options) error {
	info, ok := formatTable[img.Format]
	if !ok {
		return newErrorf(InvalidPngData, "unrecognized pixel format %d", int(img.Format))
	}
	wantLen := int(img.Width) * int(img.Height) * info.bytesPerPixel
	if len(img.Data) != wantLen {
		return newErrorf(InvalidPngData, "image data length %d, want %d", len(img.Data), wantLen)
	}

	if _, err := w.Write(pngSignature[:]); err != nil {
		return errors.WithStack(err)
	}

	ihdrPayload := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdrPayload[0:4], img.Width)
	binary.BigEndian.PutUint32(ihdrPayload[4:8], img.Height)
	ihdrPayload[8] = byte(info.bitDepth)
	ihdrPayload[9] = info.colorType
	ihdrPayload[10] = 0
	ihdrPayload[11] = 0
	ihdrPayload[12] = 0
	if err := writeChunk(w, TagIHDR, ihdrPayload); err != nil {
		return err
	}

	if opts.WriteTimestamp {
		if err := writeTimeChunk(w, opts.Timestamp); err != nil {
			return err
		}
	}

	idat, err := encodeIDAT(img, info, opts.Compression)
	if err != nil {
		return err
	}
	if err := writeChunk(w, TagIDAT, idat); err != nil {
		return err
	}

	return writeChunk(w, TagIEND, nil)
}

// writeTimeChunk emits a tIME chunk carrying t's year, month, day,
// hour, minute and second, in UTC. Unlike the reference encoder this
// is ported from, the day field carries the actual day of month
// rather than a copy of the month.
func writeTimeChunk(w io.Writer, t time.Time) error {
	u := t.UTC()
	payload := make([]byte, 7)
	binary.BigEndian.PutUint16(payload[0:2], uint16(u.Year()))
	payload[2] = byte(u.Month())
	payload[3] = byte(u.Day())
	payload[4] = byte(u.Hour())
	payload[5] = byte(u.Minute())
	payload[6] = byte(u.Second())
	return writeChunk(w, TagTIME, payload)
}

// encodeIDAT filters img's pixel data and deflates it into a single
// IDAT payload.
func encodeIDAT(img *Image, info formatInfo, level CompressionLevel) ([]byte, error) {
	data := img.Data
	if info.bitDepth == 16 {
		data = append([]byte(nil), data...)
		swapSamplePairs(data)
	}

	rowBytes := img.rowBytes()
	bpp := bppForFilter(info.colorType, info.bitDepth)

	var filtered []byte
	if level == CompressionNone {
		filtered = filterScanlinesNone(data, int(img.Height), rowBytes)
	} else {
		filtered = filterScanlinesPaeth(data, int(img.Height), rowBytes, bpp)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level.zlibLevel())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := zw.Write(filtered); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := zw.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}
