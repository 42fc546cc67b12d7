package lz77

import (
	"fmt"
	"io"
	"math"
)

// A TokenKind identifies one of the three token variants of a stream.
type TokenKind int

const (
	EndOfBuffer   TokenKind = tagEndOfBuffer
	BackReference TokenKind = tagBackReference
	LiteralRun    TokenKind = tagLiteralRun
)

func (k TokenKind) String() string {
	switch k {
	case EndOfBuffer:
		return "end"
	case BackReference:
		return "ref"
	case LiteralRun:
		return "lit"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// A Token is one unit of a compressed stream.
type Token struct {
	Kind TokenKind

	// Offset is how far back a BackReference copies from.
	Offset int

	// Length is the number of bytes the token produces.
	Length int

	// Literal holds the raw bytes of a LiteralRun or EndOfBuffer token.
	// It aliases the compressed buffer.
	Literal []byte
}

// A TokenReader reads the tokens of a compressed stream one at a time.
type TokenReader struct {
	src        []byte
	pos        int
	decodedLen uint64
}

// NewTokenReader reads the header of src and returns a TokenReader
// positioned at the first token.
func NewTokenReader(src []byte) (*TokenReader, error) {
	n, hdr, err := Uvarint(src)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return &TokenReader{src: src, pos: hdr, decodedLen: n}, nil
}

// DecodedLen returns the uncompressed length declared by the header.
func (r *TokenReader) DecodedLen() uint64 {
	return r.decodedLen
}

// Next returns the next token. It returns io.EOF when the stream has been
// fully consumed.
func (r *TokenReader) Next() (Token, error) {
	if r.pos >= len(r.src) {
		return Token{}, io.EOF
	}
	tag, err := r.readInt("tag")
	if err != nil {
		return Token{}, err
	}

	switch TokenKind(tag) {
	case EndOfBuffer:
		lit := r.src[r.pos:]
		r.pos = len(r.src)
		return Token{Kind: EndOfBuffer, Length: len(lit), Literal: lit}, nil

	case LiteralRun:
		length, err := r.readInt("literal length")
		if err != nil {
			return Token{}, err
		}
		if length > len(r.src)-r.pos {
			return Token{}, fmt.Errorf("%w: literal run of %d bytes at offset %d overruns input", ErrFormat, length, r.pos)
		}
		lit := r.src[r.pos : r.pos+length]
		r.pos += length
		return Token{Kind: LiteralRun, Length: length, Literal: lit}, nil

	case BackReference:
		offset, err := r.readInt("offset")
		if err != nil {
			return Token{}, err
		}
		length, err := r.readInt("match length")
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: BackReference, Offset: offset, Length: length}, nil
	}

	return Token{}, fmt.Errorf("%w: unknown tag %d at offset %d", ErrFormat, tag, r.pos)
}

func (r *TokenReader) readInt(what string) (int, error) {
	v, n, err := Uvarint(r.src[r.pos:])
	if err != nil {
		return 0, fmt.Errorf("reading %s at offset %d: %w", what, r.pos, err)
	}
	if v > math.MaxInt {
		return 0, fmt.Errorf("%w: %s %d out of range", ErrFormat, what, v)
	}
	r.pos += n
	return int(v), nil
}

// Dump writes a human-readable listing of the tokens in src to w, one per
// line. Back-references are written as <Length,Distance>.
func Dump(w io.Writer, src []byte) error {
	r, err := NewTokenReader(src)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "length %d\n", r.DecodedLen()); err != nil {
		return err
	}
	for {
		t, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t.Kind {
		case BackReference:
			_, err = fmt.Fprintf(w, "%s <%d,%d>\n", t.Kind, t.Length, t.Offset)
		default:
			_, err = fmt.Fprintf(w, "%s %d %q\n", t.Kind, t.Length, preview(t.Literal))
		}
		if err != nil {
			return err
		}
	}
}

func preview(b []byte) string {
	const max = 32
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
