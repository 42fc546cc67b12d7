package lz77

import (
	"fmt"
	"io"
	"math"
)

// DecodedLen returns the length of the decoded block, read from the header
// of src.
func DecodedLen(src []byte) (int, error) {
	n, _, err := Uvarint(src)
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: header declares %d bytes", ErrAllocationLimit, n)
	}
	return int(n), nil
}

// Decompress decodes a stream produced by Compress, with the default
// allocation limit. An empty src decodes to an empty slice without a header.
func Decompress(src []byte) ([]byte, error) {
	return DecompressWithOptions(src, nil)
}

// DecompressWithOptions is like Decompress, but takes the allocation limit
// from opts. A nil opts means DefaultDecompressOptions.
func DecompressWithOptions(src []byte, opts *DecompressOptions) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	limit := DefaultMaxDecodedLen
	if opts != nil && opts.MaxDecodedLen > 0 {
		limit = opts.MaxDecodedLen
	}

	r, err := NewTokenReader(src)
	if err != nil {
		return nil, err
	}
	if r.DecodedLen() > uint64(limit) {
		return nil, fmt.Errorf("%w: header declares %d bytes, limit is %d", ErrAllocationLimit, r.DecodedLen(), limit)
	}

	dst := make([]byte, r.DecodedLen())
	d := 0
	for {
		t, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t.Kind {
		case EndOfBuffer, LiteralRun:
			if len(t.Literal) > len(dst)-d {
				return nil, fmt.Errorf("%w: %s of %d bytes at output offset %d overruns %d-byte output", ErrFormat, t.Kind, len(t.Literal), d, len(dst))
			}
			d += copy(dst[d:], t.Literal)
		case BackReference:
			if err := copyBackRef(dst, d, t.Offset, t.Length); err != nil {
				return nil, err
			}
			d += t.Length
		}
	}

	if d != len(dst) {
		return nil, fmt.Errorf("%w: decoded %d bytes, header declares %d", ErrFormat, d, len(dst))
	}
	return dst, nil
}

// copyBackRef copies length bytes from dst[pos-offset:] to dst[pos:].
// When offset < length the ranges overlap, and the copy goes forward byte by
// byte so that the bytes it writes are read again, repeating the pattern.
func copyBackRef(dst []byte, pos, offset, length int) error {
	from := pos - offset
	if offset == 0 || from < 0 {
		return fmt.Errorf("%w: back-reference offset %d at output offset %d", ErrFormat, offset, pos)
	}
	if length > len(dst)-pos {
		return fmt.Errorf("%w: back-reference of %d bytes at output offset %d overruns %d-byte output", ErrFormat, length, pos, len(dst))
	}

	if offset >= length {
		copy(dst[pos:pos+length], dst[from:from+length])
		return nil
	}
	for i := 0; i < length; i++ {
		dst[pos+i] = dst[from+i]
	}
	return nil
}
