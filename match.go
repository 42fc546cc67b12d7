package lz77

import (
	"encoding/binary"
	"math/bits"
	"runtime"
)

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		// As long as we are 8 or more bytes before the end of src, we can load and
		// compare 8 bytes at a time. If those 8 bytes are equal, repeat.
		for j+8 < len(src) {
			iBytes := binary.LittleEndian.Uint64(src[i:])
			jBytes := binary.LittleEndian.Uint64(src[j:])
			if iBytes != jBytes {
				// XOR the two values; the lowest set bit is in the first
				// byte that differs, since the load is little-endian.
				return j + bits.TrailingZeros64(iBytes^jBytes)>>3
			}
			i, j = i+8, j+8
		}
	case "386":
		// On a 32-bit CPU, we do it 4 bytes at a time.
		for j+4 < len(src) {
			iBytes := binary.LittleEndian.Uint32(src[i:])
			jBytes := binary.LittleEndian.Uint32(src[j:])
			if iBytes != jBytes {
				return j + bits.TrailingZeros32(iBytes^jBytes)>>3
			}
			i, j = i+4, j+4
		}
	}
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}

// commonPrefix returns how many bytes at candidate match the bytes at pos.
// The count stops at the end of src, and before the candidate range would
// reach pos, so a match found this way never overlaps its own source.
func commonPrefix(src []byte, candidate, pos int) int {
	limit := len(src)
	if end := pos + (pos - candidate); end < limit {
		limit = end
	}
	return extendMatch(src[:limit], candidate, pos) - pos
}
