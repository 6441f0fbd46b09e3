package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaeth_TieBreak(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c byte
		want    byte
	}{
		{"all zero picks a", 0, 0, 0, 0},
		{"b closest", 10, 20, 5, 20},
		{"exact a==p", 5, 100, 100, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := paeth(c.a, c.b, c.c)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFilterUnfilter_PaethRoundTrip(t *testing.T) {
	const width, height, bpp = 3, 4, 3
	rowBytes := width * bpp
	raw := make([]byte, height*rowBytes)
	for i := range raw {
		raw[i] = byte(i * 17)
	}

	filtered := filterScanlinesPaeth(raw, height, rowBytes, bpp)
	unfiltered, err := unfilterScanlines(filtered, height, rowBytes, bpp)
	require.NoError(t, err)
	assert.Equal(t, raw, unfiltered)
}

func TestFilterUnfilter_NoneRoundTrip(t *testing.T) {
	const width, height, bpp = 2, 2, 1
	rowBytes := width * bpp
	raw := []byte{1, 2, 3, 4}

	filtered := filterScanlinesNone(raw, height, rowBytes)
	unfiltered, err := unfilterScanlines(filtered, height, rowBytes, bpp)
	require.NoError(t, err)
	assert.Equal(t, raw, unfiltered)
}

func TestUnfilterScanlines_BadFilterType(t *testing.T) {
	stream := []byte{7, 0, 0, 0}
	_, err := unfilterScanlines(stream, 1, 3, 1)
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, InvalidPngData, reason)
}

func TestUnfilterScanlines_Truncated(t *testing.T) {
	_, err := unfilterScanlines([]byte{0, 1, 2}, 2, 3, 1)
	require.Error(t, err)
}
