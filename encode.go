package lz77

// Token tags.
const (
	tagEndOfBuffer   = 1
	tagBackReference = 2
	tagLiteralRun    = 3
)

// A StreamEncoder implements the Encoder interface, writing in the lz77
// stream format. The whole of src is written as one stream, starting with
// its length.
type StreamEncoder struct{}

func (StreamEncoder) Reset() {}

func (StreamEncoder) Encode(dst []byte, src []byte, matches []Match) []byte {
	dst = AppendUvarint(dst, uint64(len(src)))

	pos := 0
	for _, m := range matches {
		if m.Length == 0 {
			// Trailing literals go after the end-of-buffer marker.
			break
		}
		if m.Unmatched > 0 {
			dst = appendLiteralRun(dst, src[pos:pos+m.Unmatched])
			pos += m.Unmatched
		}
		dst = appendBackReference(dst, m.Distance, m.Length)
		pos += m.Length
	}

	dst = AppendUvarint(dst, tagEndOfBuffer)
	return append(dst, src[pos:]...)
}

func appendLiteralRun(dst, lit []byte) []byte {
	dst = AppendUvarint(dst, tagLiteralRun)
	dst = AppendUvarint(dst, uint64(len(lit)))
	return append(dst, lit...)
}

func appendBackReference(dst []byte, offset, length int) []byte {
	dst = AppendUvarint(dst, tagBackReference)
	dst = AppendUvarint(dst, uint64(offset))
	return AppendUvarint(dst, uint64(length))
}

// A Compressor pairs a ScanMatcher with a StreamEncoder. It owns the lookup
// table, which is allocated once and reused by every call.
//
// A Compressor is not safe for concurrent use; use one per goroutine.
type Compressor struct {
	MatchFinder MatchFinder
	Encoder     Encoder

	matches []Match
}

// NewCompressor returns a Compressor configured by opts. A nil opts means
// DefaultCompressOptions.
func NewCompressor(opts *CompressOptions) *Compressor {
	o := opts.normalize()
	m := &ScanMatcher{
		MinLength: o.MinMatchLength,
		TableSize: o.TableSize,
		Thorough:  o.Mode == ModeThorough,
	}
	m.init()
	return &Compressor{
		MatchFinder: m,
		Encoder:     StreamEncoder{},
	}
}

// NewChainCompressor returns a Compressor that finds matches with a
// HashChain instead of a ScanMatcher. It writes the same stream format.
// opts.TableSize and opts.Mode do not apply to hash chains.
func NewChainCompressor(opts *CompressOptions, searchLen int) *Compressor {
	o := opts.normalize()
	return &Compressor{
		MatchFinder: &HashChain{
			MinLength: o.MinMatchLength,
			SearchLen: searchLen,
		},
		Encoder: StreamEncoder{},
	}
}

// Compress compresses src and returns the compressed stream along with the
// compression ratio (see Ratio). It never fails.
func (c *Compressor) Compress(src []byte) ([]byte, float64) {
	dst := c.Append(nil, src)
	return dst, Ratio(len(src), len(dst))
}

// Append appends the compressed form of src to dst and returns dst.
func (c *Compressor) Append(dst, src []byte) []byte {
	c.MatchFinder.Reset()
	c.Encoder.Reset()
	c.matches = c.MatchFinder.FindMatches(c.matches[:0], src)
	return c.Encoder.Encode(dst, src, c.matches)
}

// Compress compresses src with a fresh Compressor. A nil opts means
// DefaultCompressOptions.
func Compress(src []byte, opts *CompressOptions) ([]byte, float64) {
	return NewCompressor(opts).Compress(src)
}

// Ratio returns (in-out)/in: the fraction of the input saved by compression.
// It is negative when the output is larger than the input, and 0 when the
// input is empty.
func Ratio(in, out int) float64 {
	if in == 0 {
		return 0
	}
	return float64(in-out) / float64(in)
}
