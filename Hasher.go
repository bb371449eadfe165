package StUtils

import (
	"encoding/binary"
	"unsafe"
)

const (
	murmurM uint32 = 0x5bd1e995
	murmurR        = 24
)

// MurmurHash2 is Austin Appleby's 32 bit MurmurHash2. Words are read little-endian so the result is
// the same on every platform, which matters because signatures end up in binary dict files.
func MurmurHash2(key []byte, seed uint32) uint32 {
	h := seed ^ uint32(len(key))
	for ; len(key) >= 4; key = key[4:] {
		k := binary.LittleEndian.Uint32(key)
		k *= murmurM
		k ^= k >> murmurR
		k *= murmurM
		h *= murmurM
		h ^= k
	}
	switch len(key) {
	case 3:
		h ^= uint32(key[2]) << 16
		fallthrough
	case 2:
		h ^= uint32(key[1]) << 8
		fallthrough
	case 1:
		h ^= uint32(key[0])
		h *= murmurM
	}
	h ^= h >> 13
	h *= murmurM
	h ^= h >> 15
	return h
}

// Sign collapses b into a pair of 32 bit signatures.
// Up to 8 bytes are copied verbatim (zero padded), longer inputs are split in two halves and each half
// is hashed with MurmurHash2 using seeds 1 and 2.
//
// Short inputs that only differ by trailing zero bytes share a signature, e.g. "ab" and "ab\x00".
// Tables keyed by signatures should compare the real key when that matters.
func Sign(b []byte) (sign1, sign2 uint32) {
	switch n := len(b); {
	case n <= 4:
		return padWord(b), 0
	case n <= 8:
		return binary.LittleEndian.Uint32(b), padWord(b[4:])
	default:
		return MurmurHash2(b[:n/2], 1), MurmurHash2(b[n/2:], 2)
	}
}

// SignString is Sign for strings without copying.
func SignString(s string) (sign1, sign2 uint32) {
	return Sign(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func padWord(b []byte) uint32 {
	var w [4]byte
	copy(w[:], b)
	return binary.LittleEndian.Uint32(w[:])
}
