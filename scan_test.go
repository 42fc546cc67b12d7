package lz77

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchRepeat(t *testing.T) {
	src := []byte("abcdefghijklabcdefghijkl")
	q := &ScanMatcher{}

	for pos := 0; pos < 12; pos++ {
		length, offset := q.FindMatch(src, pos)
		assert.Zero(t, length, "pos %d", pos)
		assert.Zero(t, offset, "pos %d", pos)
	}

	length, offset := q.FindMatch(src, 12)
	assert.Equal(t, 12, length)
	assert.Equal(t, 12, offset)
}

func TestFindMatchThorough(t *testing.T) {
	src := []byte("abcdefghijklabcdefghijkl")
	q := &ScanMatcher{Thorough: true}

	for pos := 0; pos < 12; pos++ {
		length, _ := q.FindMatch(src, pos)
		assert.Zero(t, length, "pos %d", pos)
	}

	length, offset := q.FindMatch(src, 12)
	assert.Equal(t, 12, length)
	assert.Equal(t, 12, offset)
}

// selectionInput holds the same 12 bytes at 0, 40 and 60, each followed by
// a different byte, so both earlier copies match position 60 for exactly 12
// bytes.
func selectionInput() []byte {
	p := []byte("0123456789ab")
	src := append([]byte{}, p...)
	src = append(src, bytes.Repeat([]byte("-"), 28)...)
	src = append(src, p...)
	src = append(src, bytes.Repeat([]byte("-"), 8)...)
	src = append(src, p...)
	return append(src, '!')
}

// primedMatcher returns an 8-slot matcher with position 0 in the slot that
// pos hashes to and position 40 in the slot scanned after it.
func primedMatcher(src []byte, pos int, thorough bool) (*ScanMatcher, int) {
	q := &ScanMatcher{TableSize: 8, Thorough: thorough}
	q.init()
	base := q.hash(src, pos)
	q.table[base] = 0 + 1
	q.table[(base+7)%8] = 40 + 1
	return q, base
}

func TestFindMatchFastTakesFirstCandidate(t *testing.T) {
	src := selectionInput()
	q, base := primedMatcher(src, 60, false)

	length, offset := q.FindMatch(src, 60)
	assert.Equal(t, 12, length)
	assert.Equal(t, 60, offset)

	// The scan stopped at the base slot, so that is the one replaced.
	assert.Equal(t, 61, q.table[base])
	assert.Equal(t, 41, q.table[(base+7)%8])
}

func TestFindMatchThoroughTakesBestQuality(t *testing.T) {
	src := selectionInput()
	q, base := primedMatcher(src, 60, true)

	// 12*8/20 beats 12*8/60, even though it is scanned second.
	length, offset := q.FindMatch(src, 60)
	assert.Equal(t, 12, length)
	assert.Equal(t, 20, offset)

	// The scan ran on to the first empty slot and stored the position there.
	assert.Equal(t, 1, q.table[base])
	assert.Equal(t, 41, q.table[(base+7)%8])
	assert.Equal(t, 61, q.table[(base+6)%8])
}

func TestFindMatchEmptyBaseSlot(t *testing.T) {
	src := selectionInput()
	q := &ScanMatcher{TableSize: 8}
	q.init()
	base := q.hash(src, 60)

	length, offset := q.FindMatch(src, 60)
	assert.Zero(t, length)
	assert.Zero(t, offset)

	want := make([]int, 8)
	want[base] = 61
	assert.Equal(t, want, q.table)
}

func TestFindMatchFullWrapReplacesBaseSlot(t *testing.T) {
	src := selectionInput()
	q := &ScanMatcher{TableSize: 4}
	q.init()
	base := q.hash(src, 60)

	// Every slot holds a position inside the run of '-', which matches
	// nothing at 60.
	for i := range q.table {
		q.table[i] = 13 + i + 1
	}
	want := append([]int{}, q.table...)
	want[base] = 61

	length, _ := q.FindMatch(src, 60)
	assert.Zero(t, length)
	assert.Equal(t, want, q.table)
}

func TestFindMatchSkipsLaterPositions(t *testing.T) {
	src := make([]byte, 200)
	q := &ScanMatcher{TableSize: 1}
	q.FindMatch(src, 100)

	var length, offset int
	require.NotPanics(t, func() { length, offset = q.FindMatch(src, 10) })
	assert.Zero(t, length)
	assert.Zero(t, offset)
	assert.Equal(t, []int{11}, q.table)
}

func TestFindMatchUsesEarlierSlotBehindLaterOne(t *testing.T) {
	src := make([]byte, 200)
	q := &ScanMatcher{TableSize: 4}
	q.init()
	base := q.hash(src, 30)
	q.table[base] = 100 + 1
	q.table[(base+3)%4] = 0 + 1

	length, offset := q.FindMatch(src, 30)
	assert.Equal(t, 30, length)
	assert.Equal(t, 30, offset)
	assert.Equal(t, 101, q.table[base])
	assert.Equal(t, 31, q.table[(base+3)%4])
}

func TestFindMatchFarCandidateScoresZero(t *testing.T) {
	pattern := []byte("0123456789ab")

	build := func(gap int) []byte {
		src := append([]byte{}, pattern...)
		src = append(src, make([]byte, gap)...)
		src = append(src, pattern...)
		return append(src, '!')
	}

	near := build(100)
	q := &ScanMatcher{}
	q.FindMatch(near, 0)
	length, offset := q.FindMatch(near, 112)
	assert.Equal(t, 12, length)
	assert.Equal(t, 112, offset)

	// 12*1024/20012 rounds down to 0, which never beats the initial score.
	far := build(20000)
	q = &ScanMatcher{}
	q.FindMatch(far, 0)
	length, offset = q.FindMatch(far, 20012)
	assert.Zero(t, length)
	assert.Zero(t, offset)
}

func TestFindMatchRecordsPosition(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox "), 20)
	q := &ScanMatcher{MinLength: 12, TableSize: 16}

	for pos := 0; pos+q.MinLength <= len(src); pos++ {
		q.FindMatch(src, pos)

		found := false
		for _, v := range q.table {
			if v == 0 {
				continue
			}
			require.LessOrEqual(t, v-1, pos, "slot refers past the current position")
			if v-1 == pos {
				found = true
			}
		}
		require.True(t, found, "position %d not recorded", pos)
	}
}

func TestFindMatchesTablePressure(t *testing.T) {
	src := bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz"), 100)
	q := &ScanMatcher{TableSize: 3}

	matches := q.FindMatches(nil, src)
	covered := 0
	for _, m := range matches {
		covered += m.Unmatched
		if m.Length > 0 {
			assert.GreaterOrEqual(t, m.Length, 12)
			assert.LessOrEqual(t, m.Length, m.Distance, "match overlaps its source")
			assert.LessOrEqual(t, m.Distance, covered)
			assert.Equal(t, src[covered-m.Distance:covered-m.Distance+m.Length], src[covered:covered+m.Length])
		}
		covered += m.Length
	}
	assert.Equal(t, len(src), covered)
}

func TestFindMatchesResetsBetweenBuffers(t *testing.T) {
	q := &ScanMatcher{}
	a := bytes.Repeat([]byte("0123456789abcdef"), 8)
	b := []byte("0123456789abcdef and then something else entirely")

	q.FindMatches(nil, a)
	got := q.FindMatches(nil, b)

	fresh := (&ScanMatcher{}).FindMatches(nil, b)
	assert.Equal(t, fresh, got)
	assert.Equal(t, []Match{{Unmatched: len(b)}}, got)
}

func TestCommonPrefixStopsBeforeOverlap(t *testing.T) {
	src := []byte("aaaaaaaaaaaaaaaa")
	assert.Equal(t, 2, commonPrefix(src, 0, 2))
	assert.Equal(t, 8, commonPrefix(src, 0, 8))
	assert.Equal(t, 6, commonPrefix(src, 4, 10))
}

func TestCommonPrefixStopsAtEnd(t *testing.T) {
	src := []byte("abcdefghijklmnopqrstuvwxyz0123456789abcdefghij")
	assert.Equal(t, 10, commonPrefix(src, 0, 36))
	assert.Equal(t, 0, commonPrefix(src, 1, 36))
}

func TestHashStaysInTable(t *testing.T) {
	src := []byte("some bytes to hash, enough of them to fill a window")
	for _, size := range []int{1, 7, 255, 1024, 4096} {
		for _, thorough := range []bool{false, true} {
			q := &ScanMatcher{TableSize: size, Thorough: thorough}
			q.init()
			for pos := 0; pos < len(src); pos++ {
				h := q.hash(src, pos)
				require.GreaterOrEqual(t, h, 0)
				require.Less(t, h, size)
			}
		}
	}
}

type fixedSearcher map[int]AbsoluteMatch

func (f fixedSearcher) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	if m, ok := f[pos]; ok {
		return append(dst, m)
	}
	return dst
}

func TestGreedyParser(t *testing.T) {
	src := fixedSearcher{
		3:  {Start: 3, End: 8, Match: 0},
		5:  {Start: 5, End: 20, Match: 1},
		10: {Start: 10, End: 12, Match: 2},
		12: {Start: 12, End: 18, Match: 4},
	}
	p := &GreedyParser{MinLength: 4}

	got := p.Parse(nil, src, 0, 24)
	assert.Equal(t, []Match{
		{Unmatched: 3, Length: 5, Distance: 3},
		{Unmatched: 4, Length: 6, Distance: 8},
		{Unmatched: 6},
	}, got)
}
