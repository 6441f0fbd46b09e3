// Package png implements a decoder and encoder for a practical subset
// of the PNG image format: the eight non-indexed, non-interlaced
// pixel formats reachable from grayscale, truecolor and indexed-color
// source images, with tRNS transparency promotion and the baseline
// ancillary chunk set recognized and skipped (their payloads are
// discarded on decode).
//
// Adam7 interlacing, APNG, ICC/color-space chunks and text chunk
// decoding are out of scope; see DESIGN.md for the reasoning.
package png
