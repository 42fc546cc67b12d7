package lz77

import "fmt"

const maxVarintLen64 = 10

// AppendUvarint appends x to dst in varint format: 7 bits per byte, least
// significant group first, with the high bit set on every byte but the last.
func AppendUvarint(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// UvarintLen returns the number of bytes AppendUvarint uses for x.
func UvarintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// Uvarint decodes a varint from the start of src. It returns the value and
// the number of bytes read. A varint that runs past the end of src yields
// ErrFormat; one that does not fit in 64 bits yields ErrOverflow.
func Uvarint(src []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i, b := range src {
		if i == maxVarintLen64 {
			return 0, 0, ErrOverflow
		}
		if b < 0x80 {
			if i == maxVarintLen64-1 && b > 1 {
				return 0, 0, ErrOverflow
			}
			return x | uint64(b)<<s, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, fmt.Errorf("%w: truncated varint", ErrFormat)
}
