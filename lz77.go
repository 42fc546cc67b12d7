// Package lz77 is a single-pass, dictionary-based compressor in the LZ77
// family. It replaces repeated byte sequences with back-references into
// data that has already been seen.
//
// Compression is split into two parts, as in most LZ77 compressors:
//   - A MatchFinder that looks for repeated sequences of bytes
//   - An Encoder that writes the matches in the compressed data format
//
// The stream format is a varint header holding the uncompressed length,
// followed by tokens. Every token starts with a varint tag:
//
//	1 end of buffer   the rest of the stream is raw bytes
//	2 back-reference  varint offset, varint length
//	3 literal run     varint length, then that many raw bytes
//
// There is no entropy coding stage, and both Compress and Decompress work on
// complete buffers.
package lz77

// A Match is the basic unit of LZ77 compression.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	// src is treated as a complete buffer.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new buffer.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match) []byte

	// Reset clears any internal state.
	Reset()
}
