package bitalloc

import (
	"github.com/cockroachdb/errors"
	"github.com/google/btree"
)

// run is a live allocation, in quanta.
type run struct {
	start int
	count int
}

func (r run) end() int { return r.start + r.count }

// ledger records live allocations keyed by start quantum. It only exists
// for allocators built WithStrictFree.
type ledger struct {
	runs *btree.BTreeG[run]
}

func newLedger() *ledger {
	return &ledger{
		runs: btree.NewG(8, func(a, b run) bool { return a.start < b.start }),
	}
}

func (l *ledger) add(start, count int) {
	l.runs.ReplaceOrInsert(run{start: start, count: count})
}

// remove forgets the run at start. It fails without modifying the ledger if
// no run starts there or if its length differs from count.
func (l *ledger) remove(start, count int) error {
	r, ok := l.runs.Get(run{start: start})
	if !ok {
		return errors.Newf("no allocation starts at quantum %d", start)
	}
	if r.count != count {
		return errors.Newf("allocation at quantum %d spans %d quanta, free asked for %d",
			start, r.count, count)
	}
	l.runs.Delete(r)
	return nil
}

func (l *ledger) len() int {
	return l.runs.Len()
}

func (l *ledger) reset() {
	l.runs.Clear(false)
}

// each calls fn for every live run in increasing start order.
func (l *ledger) each(fn func(r run) bool) {
	l.runs.Ascend(fn)
}
