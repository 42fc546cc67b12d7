package lz77

import "encoding/binary"

// HashChain is an implementation of the MatchFinder interface that links
// every position to the previous position with the same 4-byte hash, and
// follows those links to find the longest match. It is an alternative to
// ScanMatcher for a Compressor (see NewChainCompressor): it usually finds
// longer matches, including ones that overlap their source, and produces
// the same stream format.
type HashChain struct {
	// SearchLen is how many links to follow per position.
	// The default is 16.
	SearchLen int

	// MaxDistance is the maximum distance (in bytes) to look back for
	// a match. The default is 1<<16.
	MaxDistance int

	// MinLength is the shortest match the default parser will use.
	// The default is 12.
	MinLength int

	Parser Parser

	// head and prev hold position+1; 0 ends a chain.
	head    [chainHeadSize]int32
	prev    []int32
	history []byte
}

const (
	chainHeadBits = 14
	chainHeadSize = 1 << chainHeadBits
	hashMul32     = 0x1e35a7bd
)

func hash4(u uint32) uint32 {
	return (u * hashMul32) >> (32 - chainHeadBits)
}

func (q *HashChain) Reset() {
	q.head = [chainHeadSize]int32{}
	q.prev = q.prev[:0]
	q.history = nil
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
// Inputs of 2 GiB or more are passed through as literals.
func (q *HashChain) FindMatches(dst []Match, src []byte) []Match {
	if q.MaxDistance <= 0 {
		q.MaxDistance = 1 << 16
	}
	if q.SearchLen <= 0 {
		q.SearchLen = 16
	}
	if q.MinLength <= 0 {
		q.MinLength = DefaultMinMatchLength
	}
	if q.Parser == nil {
		q.Parser = &GreedyParser{MinLength: q.MinLength}
	}
	q.Reset()
	if int64(len(src)) >= 1<<31-1 {
		return append(dst, Match{Unmatched: len(src)})
	}

	q.history = src
	for i := 0; i+4 <= len(src); i++ {
		h := hash4(binary.LittleEndian.Uint32(src[i:]))
		q.prev = append(q.prev, q.head[h])
		q.head[h] = int32(i + 1)
	}

	dst = q.Parser.Parse(dst, q, 0, len(src))
	q.history = nil
	return dst
}

// Search follows the chain at pos and appends each match that is longer
// than the ones before it, so the last one appended is the longest.
func (q *HashChain) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	if pos >= len(q.prev) || pos+4 > max {
		return dst
	}
	src := q.history
	want := binary.LittleEndian.Uint32(src[pos:])
	best := 0

	link := q.prev[pos]
	for i := 0; i < q.SearchLen && link != 0; i++ {
		candidate := int(link) - 1
		link = q.prev[candidate]
		if pos-candidate > q.MaxDistance {
			break
		}
		if binary.LittleEndian.Uint32(src[candidate:]) != want {
			continue
		}

		m := AbsoluteMatch{
			Start: pos,
			End:   extendMatch(src[:max], candidate+4, pos+4),
			Match: candidate,
		}
		// Grow the match backward over bytes not yet emitted.
		for m.Start > min && m.Match > 0 && src[m.Start-1] == src[m.Match-1] {
			m.Start--
			m.Match--
		}
		if m.End-m.Start > best {
			best = m.End - m.Start
			dst = append(dst, m)
		}
	}
	return dst
}
