package bitalloc

import "strings"

// bitmap is the occupancy index: one bit per quantum, eight per byte, the
// first quantum of each byte in its most significant bit. A set bit means
// the quantum belongs to a live allocation.
type bitmap []byte

func (bm bitmap) get(i int) bool {
	return bm[i/8]&(0x80>>(i%8)) != 0
}

func (bm bitmap) set(i int, v bool) {
	if v {
		bm[i/8] |= 0x80 >> (i % 8)
	} else {
		bm[i/8] &^= 0x80 >> (i % 8)
	}
}

// setRange sets count bits starting at start. Callers validate the range.
func (bm bitmap) setRange(start, count int, v bool) {
	for i := start; i < start+count; i++ {
		bm.set(i, v)
	}
}

// rangeFree reports whether every bit in [start, start+count) is clear and
// the range fits below limit.
func (bm bitmap) rangeFree(start, count, limit int) bool {
	if start < 0 || start+count > limit {
		return false
	}
	for i := start; i < start+count; i++ {
		if bm.get(i) {
			return false
		}
	}
	return true
}

// count returns the number of set bits below limit.
func (bm bitmap) count(limit int) int {
	n := 0
	for i := 0; i < limit; i++ {
		if bm.get(i) {
			n++
		}
	}
	return n
}

// longestFreeRun returns the length of the longest run of clear bits below limit.
func (bm bitmap) longestFreeRun(limit int) int {
	best, run := 0, 0
	for i := 0; i < limit; i++ {
		if bm.get(i) {
			run = 0
			continue
		}
		run++
		best = max(best, run)
	}
	return best
}

func (bm bitmap) clear() {
	clear(bm)
}

// render writes the first limit bits as '0'/'1', perRow bits per line.
func (bm bitmap) render(limit, perRow int) string {
	var sb strings.Builder
	sb.Grow(limit + limit/perRow + 1)
	for i := 0; i < limit; i++ {
		if i > 0 && i%perRow == 0 {
			sb.WriteByte('\n')
		}
		if bm.get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
