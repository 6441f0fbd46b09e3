package png

import "hash/crc32"

// computeCRC returns the PNG CRC-32 of a chunk's tag concatenated with
// its payload. PNG's CRC-32 (polynomial 0xEDB88320, init 0xFFFFFFFF,
// right-shifting, XOR-out 0xFFFFFFFF) is bit-for-bit the same
// algorithm as IEEE 802.3's, so this reuses the standard library's
// precomputed table instead of building one by hand.
func computeCRC(tag [4]byte, payload []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(tag[:])
	crc.Write(payload)
	return crc.Sum32()
}
