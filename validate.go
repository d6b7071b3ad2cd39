package bitalloc

import "github.com/cockroachdb/errors"

// Validate checks the allocator's internal consistency: the cursor is in
// range, padding bits past the last quantum are clear, and for
// strict allocators every recorded allocation matches the occupancy index.
func (a *Allocator) Validate() error {
	if a.region == nil {
		return ErrNotInitialized
	}
	l := a.layout
	// A scan hit can leave the cursor past the last quantum; it wraps on the
	// next allocation.
	if a.cursor < 0 || a.cursor >= 2*l.quanta {
		return errors.Wrapf(ErrCorrupt, "cursor %d outside [0, %d)", a.cursor, 2*l.quanta)
	}
	for i := l.quanta; i < len(a.index)*8; i++ {
		if a.index.get(i) {
			return errors.Wrapf(ErrCorrupt, "padding bit %d is set", i)
		}
	}
	if a.live == nil {
		return nil
	}

	var err error
	covered, prevEnd := 0, 0
	a.live.each(func(r run) bool {
		if r.start < prevEnd {
			err = errors.Wrapf(ErrCorrupt, "allocation at quantum %d overlaps the previous one ending at %d", r.start, prevEnd)
			return false
		}
		if r.end() > l.quanta {
			err = errors.Wrapf(ErrCorrupt, "allocation at quantum %d runs past quantum %d", r.start, l.quanta)
			return false
		}
		for q := r.start; q < r.end(); q++ {
			if !a.index.get(q) {
				err = errors.Wrapf(ErrCorrupt, "quantum %d of allocation at %d is marked free", q, r.start)
				return false
			}
		}
		covered += r.count
		prevEnd = r.end()
		return true
	})
	if err != nil {
		return err
	}
	if used := a.index.count(l.quanta); used != covered {
		return errors.Wrapf(ErrCorrupt, "%d quanta marked in use but %d recorded in %d allocations",
			used, covered, a.live.len())
	}
	return nil
}
