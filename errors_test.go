package png

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonOf_WrapsCleanly(t *testing.T) {
	err := newError(InvalidCrc, "boom")
	reason, ok := ReasonOf(err)
	assert.True(t, ok)
	assert.Equal(t, InvalidCrc, reason)
}

func TestReasonOf_ForeignError(t *testing.T) {
	_, ok := ReasonOf(errors.New("not ours"))
	assert.False(t, ok)
}

func TestError_MessageFormatting(t *testing.T) {
	var e *Error = &Error{Reason: InvalidPngData, Message: "bad filter type 9"}
	assert.Equal(t, "invalid png data: bad filter type 9", e.Error())

	bare := &Error{Reason: InvalidSignature}
	assert.Equal(t, "invalid signature", bare.Error())
}
