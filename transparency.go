package png

// transparencyKind distinguishes which shape of TransparencyKey is in
// effect for the current image, mirroring spec §3's TransparencyKey.
type transparencyKind int

const (
	trnsNone transparencyKind = iota
	trnsGray
	trnsRGB
	trnsIndexed
)

// transparencyKey holds the parsed tRNS chunk, in whichever shape
// matches the image's color type.
type transparencyKey struct {
	kind    transparencyKind
	gray    uint16
	r, g, b uint16
	indexed TrnsPalette
}

// applyGrayKey promotes an R8/R16 image to Ra8/Ra16, setting alpha to
// 0 for every pixel whose gray sample equals key and 255 otherwise.
func applyGrayKey(img *Image, key uint16) {
	if img.Format == FormatR8 {
		n := len(img.Data)
		out := make([]byte, 0, n*2)
		g := byte(key)
		for _, sample := range img.Data {
			alpha := byte(0xff)
			if sample == g {
				alpha = 0
			}
			out = append(out, sample, alpha)
		}
		img.Data = out
		img.Format = FormatRa8
		return
	}
	// R16: samples are still in big-endian wire order at this point in
	// the pipeline (the host-native byte swap happens after this step),
	// same as the tRNS key, which was parsed straight off the wire.
	n := len(img.Data) / 2
	out := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		b0, b1 := img.Data[2*i], img.Data[2*i+1]
		sample := beUint16(b0, b1)
		alpha := byte(0xff)
		if sample == key {
			alpha = 0
		}
		out = append(out, b0, b1, alpha, alpha)
	}
	img.Data = out
	img.Format = FormatRa16
}

// applyRGBKey promotes an Rgb8/Rgb16 image to Rgba8/Rgba16 using an
// exact-match color key.
func applyRGBKey(img *Image, r, g, b uint16) {
	if img.Format == FormatRgb8 {
		n := len(img.Data) / 3
		out := make([]byte, 0, n*4)
		rr, gg, bb := byte(r), byte(g), byte(b)
		for i := 0; i < n; i++ {
			px := img.Data[3*i : 3*i+3]
			alpha := byte(0xff)
			if px[0] == rr && px[1] == gg && px[2] == bb {
				alpha = 0
			}
			out = append(out, px[0], px[1], px[2], alpha)
		}
		img.Data = out
		img.Format = FormatRgba8
		return
	}
	n := len(img.Data) / 6
	out := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		px := img.Data[6*i : 6*i+6]
		sr := beUint16(px[0], px[1])
		sg := beUint16(px[2], px[3])
		sb := beUint16(px[4], px[5])
		alpha := byte(0xff)
		if sr == r && sg == g && sb == b {
			alpha = 0
		}
		out = append(out, px[0], px[1], px[2], px[3], px[4], px[5], alpha, alpha)
	}
	img.Data = out
	img.Format = FormatRgba16
}

// expandIndexedWithTrns builds an Rgba8 image from raw palette
// indices, a Palette, and a TrnsPalette.
func expandIndexedWithTrns(width, height uint32, indices []byte, pal Palette, trns TrnsPalette) *Image {
	out := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		c := pal.Get(i)
		out = append(out, c[0], c[1], c[2], trns.Get(i))
	}
	return &Image{Width: width, Height: height, Format: FormatRgba8, Data: out}
}

// expandIndexed builds an Rgb8 image from raw palette indices and a
// Palette, with no transparency.
func expandIndexed(width, height uint32, indices []byte, pal Palette) *Image {
	out := make([]byte, 0, len(indices)*3)
	for _, i := range indices {
		c := pal.Get(i)
		out = append(out, c[0], c[1], c[2])
	}
	return &Image{Width: width, Height: height, Format: FormatRgb8, Data: out}
}

func beUint16(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
