package lz77

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenReader(t *testing.T) {
	compressed, _ := Compress([]byte("abcdefghijklabcdefghijklXYZ"), nil)
	r, err := NewTokenReader(compressed)
	require.NoError(t, err)
	assert.Equal(t, uint64(27), r.DecodedLen())

	var tokens []Token
	for {
		tok, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		tokens = append(tokens, tok)
	}

	assert.Equal(t, []Token{
		{Kind: LiteralRun, Length: 12, Literal: []byte("abcdefghijkl")},
		{Kind: BackReference, Offset: 12, Length: 12},
		{Kind: EndOfBuffer, Length: 3, Literal: []byte("XYZ")},
	}, tokens)
}

func TestTokenReaderEndsAtEndOfBuffer(t *testing.T) {
	// Bytes after the end marker belong to it, even ones that look like tags.
	r, err := NewTokenReader([]byte{4, 1, 2, 3, 1, 0})
	require.NoError(t, err)

	tok, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, EndOfBuffer, tok.Kind)
	assert.Equal(t, []byte{2, 3, 1, 0}, tok.Literal)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestDump(t *testing.T) {
	compressed, _ := Compress([]byte("abcdefghijklabcdefghijklXYZ"), nil)
	var b strings.Builder
	require.NoError(t, Dump(&b, compressed))
	assert.Equal(t, "length 27\n"+
		"lit 12 \"abcdefghijkl\"\n"+
		"ref <12,12>\n"+
		"end 3 \"XYZ\"\n", b.String())
}

func TestDumpTruncatesLongLiterals(t *testing.T) {
	src := randomBytes(100, 3)
	compressed, _ := Compress(src, nil)
	var b bytes.Buffer
	require.NoError(t, Dump(&b, compressed))
	assert.Contains(t, b.String(), "end 100 ")
	assert.Contains(t, b.String(), `..."`)
}

func TestDumpReportsErrors(t *testing.T) {
	var b bytes.Buffer
	err := Dump(&b, []byte{1, 9})
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, "length 1\n", b.String())
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "end", EndOfBuffer.String())
	assert.Equal(t, "ref", BackReference.String())
	assert.Equal(t, "lit", LiteralRun.String())
	assert.Equal(t, "TokenKind(0)", TokenKind(0).String())
}
