package png

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ChunkTag identifies the 4-byte ASCII type tag of a PNG chunk.
type ChunkTag string

// Structural chunk tags, the only ones this package acts on.
const (
	TagIHDR ChunkTag = "IHDR"
	TagPLTE ChunkTag = "PLTE"
	TagIDAT ChunkTag = "IDAT"
	TagIEND ChunkTag = "IEND"
	TagTRNS ChunkTag = "tRNS"
)

// Ancillary chunk tags recognized and passively skipped on decode,
// never emitted on encode except tIME (written explicitly by the
// encoder driver, not through this registry).
const (
	TagCHRM ChunkTag = "cHRM"
	TagGAMA ChunkTag = "gAMA"
	TagICCP ChunkTag = "iCCP"
	TagSBIT ChunkTag = "sBIT"
	TagSRGB ChunkTag = "sRGB"
	TagCICP ChunkTag = "cICP"
	TagMDCV ChunkTag = "mDCv"
	TagITXT ChunkTag = "iTXt"
	TagTEXT ChunkTag = "tEXt"
	TagZTXT ChunkTag = "zTXt"
	TagBKGD ChunkTag = "bKGD"
	TagHIST ChunkTag = "hIST"
	TagPHYS ChunkTag = "pHYs"
	TagSPLT ChunkTag = "sPLT"
	TagEXIF ChunkTag = "eXIf"
	TagTIME ChunkTag = "tIME"
	TagACTL ChunkTag = "acTL"
	TagFCTL ChunkTag = "fcTL"
	TagFDAT ChunkTag = "fdAT"
)

// recognizedTags is the full set of chunk tags this package will
// accept from a stream. Anything outside this set fails with
// InvalidChunkType, per spec §4.2 step 5.
var recognizedTags = map[ChunkTag]bool{
	TagIHDR: true, TagPLTE: true, TagIDAT: true, TagIEND: true, TagTRNS: true,
	TagCHRM: true, TagGAMA: true, TagICCP: true, TagSBIT: true, TagSRGB: true,
	TagCICP: true, TagMDCV: true, TagITXT: true, TagTEXT: true, TagZTXT: true,
	TagBKGD: true, TagHIST: true, TagPHYS: true, TagSPLT: true, TagEXIF: true,
	TagTIME: true, TagACTL: true, TagFCTL: true, TagFDAT: true,
}

// Chunk is one length-prefixed, CRC-trailered unit of PNG content
// with its CRC already verified and discarded.
type Chunk struct {
	Tag     ChunkTag
	Payload []byte
}

func isASCIITag(b [4]byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// readChunk reads one length-prefixed, CRC-trailered chunk from r.
func readChunk(r io.Reader) (Chunk, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Chunk{}, newError(InvalidPngData, "truncated stream: missing chunk header")
		}
		return Chunk{}, errors.WithStack(err)
	}
	length := binary.BigEndian.Uint32(hdr[:4])
	var tagBytes [4]byte
	copy(tagBytes[:], hdr[4:8])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Chunk{}, newError(InvalidPngData, "truncated stream: short chunk payload")
		}
		return Chunk{}, errors.WithStack(err)
	}

	var crcBytes [4]byte
	if _, err := io.ReadFull(r, crcBytes[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Chunk{}, newError(InvalidPngData, "truncated stream: missing chunk CRC")
		}
		return Chunk{}, errors.WithStack(err)
	}
	expected := binary.BigEndian.Uint32(crcBytes[:])
	if computeCRC(tagBytes, payload) != expected {
		return Chunk{}, newError(InvalidCrc, "crc mismatch for chunk "+string(tagBytes[:]))
	}

	if !isASCIITag(tagBytes) {
		return Chunk{}, newError(InvalidChunkType, "chunk tag is not ASCII")
	}
	tag := ChunkTag(tagBytes[:])
	if !recognizedTags[tag] {
		return Chunk{}, newErrorf(InvalidChunkType, "unrecognized chunk tag %q", string(tagBytes[:]))
	}

	return Chunk{Tag: tag, Payload: payload}, nil
}

// writeChunk emits one chunk: length, tag, payload, CRC.
func writeChunk(w io.Writer, tag ChunkTag, payload []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(len(payload)))
	copy(hdr[4:8], tag)
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.WithStack(err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return errors.WithStack(err)
		}
	}
	var tagBytes [4]byte
	copy(tagBytes[:], tag)
	var crcBytes [4]byte
	binary.BigEndian.PutUint32(crcBytes[:], computeCRC(tagBytes, payload))
	if _, err := w.Write(crcBytes[:]); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
