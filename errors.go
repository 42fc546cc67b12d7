package lz77

import "errors"

var (
	// ErrFormat is returned when a compressed stream is malformed: an unknown
	// tag, a truncated varint, or a token that reads or writes outside its
	// buffer.
	ErrFormat = errors.New("lz77: invalid stream format")
	// ErrOverflow is returned when a varint does not fit in 64 bits.
	ErrOverflow = errors.New("lz77: varint overflows 64 bits")
	// ErrAllocationLimit is returned when the header declares an uncompressed
	// length above DecompressOptions.MaxDecodedLen.
	ErrAllocationLimit = errors.New("lz77: decoded length exceeds limit")
)
