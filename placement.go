package bitalloc

// wrappedCursor returns the cursor, or 0 once it has run off the end of the
// data region.
func (a *Allocator) wrappedCursor() int {
	if a.cursor >= a.layout.quanta {
		return 0
	}
	return a.cursor
}

// probeCursor tests the single run at the cursor, rounded up to align.
func (a *Allocator) probeCursor(count, align int) (int, bool) {
	off := alignUp(a.layout.offsetOf(a.wrappedCursor()), align)
	start := a.layout.quantumOf(off)
	if a.index.rangeFree(start, count, a.layout.quanta) {
		return start, true
	}
	return 0, false
}

// findFreeRun returns the lowest quantum at which count free quanta start on
// an align boundary. Candidates are visited one byte offset at a time, each
// rounded up to align, so alignments larger than Quantum still find every
// boundary in the data region.
func (a *Allocator) findFreeRun(count, align int) (int, bool) {
	off := a.layout.dataStart - 1
	for {
		off = alignUp(off+1, align)
		start := a.layout.quantumOf(off)
		if start+count > a.layout.quanta {
			return 0, false
		}
		if a.index.rangeFree(start, count, a.layout.quanta) {
			return start, true
		}
	}
}
