package lz77

import "github.com/pierrec/xxHash/xxHash32"

const (
	fastHashSeed = 0x13371337
	fastHashMul  = 0xdeadbeef
)

// ScanMatcher is an implementation of the MatchFinder interface that keeps a
// fixed-size table of positions and, starting from a hashed slot, scans
// backward through the whole table for a prior occurrence of the upcoming
// bytes.
//
// The scan is not limited to one bucket: it walks slot by slot toward slot 0,
// wraps to the last slot, and stops at the first empty slot or when it comes
// back to where it started. Whichever slot it examined last is then
// overwritten with the current position.
//
// A ScanMatcher is not safe for concurrent use.
type ScanMatcher struct {
	// MinLength is the shortest run considered a match.
	// The default is 12.
	MinLength int

	// TableSize is the number of slots in the lookup table.
	// The default is 1024.
	TableSize int

	// Thorough selects the full-window hash and keeps scanning after the
	// first qualifying candidate, looking for a better quality score.
	Thorough bool

	Parser Parser

	// table holds position+1 for each slot; 0 marks an empty slot.
	table   []int
	history []byte
}

func (q *ScanMatcher) init() {
	if q.MinLength <= 0 {
		q.MinLength = DefaultMinMatchLength
	}
	if q.TableSize <= 0 {
		q.TableSize = DefaultTableSize
	}
	if q.Parser == nil {
		q.Parser = &GreedyParser{MinLength: q.MinLength}
	}
	if len(q.table) != q.TableSize {
		q.table = make([]int, q.TableSize)
	}
}

func (q *ScanMatcher) Reset() {
	for i := range q.table {
		q.table[i] = 0
	}
	q.history = nil
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
// The table is cleared first, so matches only refer to earlier bytes of src.
func (q *ScanMatcher) FindMatches(dst []Match, src []byte) []Match {
	q.init()
	q.Reset()
	q.history = src
	dst = q.Parser.Parse(dst, q, 0, len(src))
	q.history = nil
	return dst
}

// Search looks for a match at pos and appends it to dst. It finds at most
// one match, and always records pos in the table.
func (q *ScanMatcher) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	if pos+q.MinLength > max {
		return dst
	}
	length, offset := q.FindMatch(q.history[:max], pos)
	if length == 0 {
		return dst
	}
	return append(dst, AbsoluteMatch{
		Start: pos,
		End:   pos + length,
		Match: pos - offset,
	})
}

// FindMatch returns the best match known for the bytes at src[pos:], as a
// length and a distance back from pos, or (0, 0) if none is at least
// MinLength bytes long. The table must have been filled from the same src;
// positions may be probed in any order.
//
// Candidates are ranked by length*TableSize/distance, so a far-away match
// can score 0 and be ignored even when it is long.
func (q *ScanMatcher) FindMatch(src []byte, pos int) (length, offset int) {
	q.init()
	base := q.hash(src, pos)
	slot := base
	bestQuality := 0

	for {
		v := q.table[slot]
		if v == 0 {
			break
		}
		candidate := v - 1

		// A slot written for pos or a later position is not a prior
		// occurrence; it is passed over like a short match.
		if candidate < pos {
			n := commonPrefix(src, candidate, pos)
			if n >= q.MinLength {
				delta := pos - candidate
				quality := n * q.TableSize / delta
				if quality > bestQuality {
					bestQuality = quality
					length, offset = n, delta
				}
				if !q.Thorough {
					break
				}
			}
		}

		slot--
		if slot < 0 {
			slot = len(q.table) - 1
		}
		if slot == base {
			break
		}
	}

	q.table[slot] = pos + 1
	return length, offset
}

// hash picks the starting slot for pos. In fast mode it mixes only the first
// TableSize/255+1 bytes; in thorough mode it hashes the whole MinLength
// window with xxHash32.
func (q *ScanMatcher) hash(src []byte, pos int) int {
	if q.Thorough {
		end := pos + q.MinLength
		if end > len(src) {
			end = len(src)
		}
		return int(xxHash32.Checksum(src[pos:end], 0) % uint32(q.TableSize))
	}

	end := pos + q.TableSize/0xff + 1
	if end > len(src) {
		end = len(src)
	}
	h := uint32(fastHashSeed)
	for _, b := range src[pos:end] {
		h ^= uint32(b) * fastHashMul
	}
	return int(h % uint32(q.TableSize))
}
