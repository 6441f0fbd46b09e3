package png

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason is the closed set of failure categories a PNG stream can be
// rejected for. Callers that need to branch on the kind of failure
// should use errors.As to recover an *Error and switch on its Reason,
// rather than matching on the error's formatted message.
type Reason int

const (
	// InvalidSignature means the leading 8 magic bytes did not match
	// the PNG signature.
	InvalidSignature Reason = iota
	// InvalidChunkType means a chunk tag was not ASCII or was not one
	// of the chunk tags recognized by this package.
	InvalidChunkType
	// InvalidCrc means a chunk's trailing CRC-32 did not match the
	// CRC computed over its tag and payload.
	InvalidCrc
	// InvalidPngData covers every other structural violation: wrong
	// first/last chunk, unsupported interlacing, an invalid
	// (color type, bit depth) pair, a tRNS chunk under a color type
	// that forbids it, a bad filter selector, or a truncated stream.
	InvalidPngData
)

func (r Reason) String() string {
	switch r {
	case InvalidSignature:
		return "invalid signature"
	case InvalidChunkType:
		return "invalid chunk type"
	case InvalidCrc:
		return "invalid chunk crc"
	case InvalidPngData:
		return "invalid png data"
	default:
		return fmt.Sprintf("png.Reason(%d)", int(r))
	}
}

// Error is the concrete error type returned by Decode for every
// member of the Reason taxonomy.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Reason.String()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func newError(reason Reason, message string) error {
	return errors.WithStack(&Error{Reason: reason, Message: message})
}

func newErrorf(reason Reason, format string, args ...any) error {
	return errors.WithStack(&Error{Reason: reason, Message: fmt.Sprintf(format, args...)})
}

// ReasonOf reports the taxonomy member for an error produced by this
// package, or ok=false if err did not originate here.
func ReasonOf(err error) (reason Reason, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason, true
	}
	return 0, false
}
