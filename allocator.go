package bitalloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Allocator hands out Quantum-granular runs of a caller-supplied buffer.
// The start of the buffer holds the occupancy index, one bit per quantum of
// the data region that follows it.
//
// Allocations are identified by their byte offset from the start of the
// buffer. The allocator does not record their sizes: Free must be given the
// same size that was allocated (see WithStrictFree).
//
// Allocator is not goroutine-safe. Use SafeAllocator for concurrent access.
// The zero value is unusable until Init succeeds.
type Allocator struct {
	region []byte
	layout layout
	index  bitmap
	cursor int // quantum to probe first on the next allocation

	live   *ledger
	logger *slog.Logger
	stats  counters
}

// New creates an Allocator over buf. Only the first MaxRegionSize bytes of
// buf are used. The buffer stays owned by the caller and must outlive the
// allocator.
func New(buf []byte, opts ...Option) (*Allocator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	a := &Allocator{logger: cfg.logger}
	if cfg.strict {
		a.live = newLedger()
	}
	if err := a.Init(buf); err != nil {
		return nil, err
	}
	return a, nil
}

// Init partitions buf into index and data regions and marks every quantum
// free. Calling Init again discards all outstanding allocations. On error
// the allocator is left unusable.
func (a *Allocator) Init(buf []byte) error {
	if a.logger == nil {
		a.logger = discardLogger()
	}
	l, err := partition(len(buf))
	if err != nil {
		a.region, a.index = nil, nil
		a.logger.Warn("init failed", "size", len(buf), "err", err)
		return err
	}

	a.region = buf[:l.size:l.size]
	a.layout = l
	a.index = bitmap(a.region[:l.indexBytes])
	a.index.clear()
	a.cursor = 0
	a.stats = counters{}
	if a.live != nil {
		a.live.reset()
	}

	a.logger.Debug("init",
		"size", l.size,
		"index_bytes", l.indexBytes,
		"data_start", l.dataStart,
		"quanta", l.quanta,
		"usable", l.usable())
	return nil
}

// Alloc reserves size bytes aligned to Quantum and returns their offset.
func (a *Allocator) Alloc(size int) (int, error) {
	return a.AllocAligned(size, Quantum)
}

// AllocAligned reserves size bytes at an offset that is a multiple of align.
// align must be a positive multiple of Quantum; it is never rounded.
//
// The quantum at the cursor is tried first. If that run is taken the data
// region is scanned from the start and the lowest fitting run is used.
// A failed call leaves the allocator unchanged.
func (a *Allocator) AllocAligned(size, align int) (int, error) {
	count, err := a.prepare(size, align)
	if err != nil {
		return NilOffset, err
	}
	start, probed, ok := a.place(count, align)
	if !ok {
		return NilOffset, a.outOfSpace(size, align)
	}
	a.commit(start, count, probed)
	return a.layout.offsetOf(start), nil
}

// Free releases the allocation at off. size must be the size it was
// allocated with. A NilOffset is ignored, as is any offset and size that
// falls outside the data region. Freeing memory that was not allocated, or
// with the wrong size, silently corrupts the occupancy index unless the
// allocator was built WithStrictFree.
func (a *Allocator) Free(off, size int) {
	_ = a.release(off, size)
}

// FreeChecked is Free but reports ignored frees as ErrBadFree.
func (a *Allocator) FreeChecked(off, size int) error {
	return a.release(off, size)
}

// Reset marks every quantum free without repartitioning the region.
func (a *Allocator) Reset() {
	if a.region == nil {
		return
	}
	a.index.clear()
	a.cursor = 0
	if a.live != nil {
		a.live.reset()
	}
}

// Bytes returns the bytes of the allocation at off. The slice capacity is
// limited to the allocation so appends cannot spill into a neighbour. The
// view is clipped at the end of the region. Bytes returns nil for offsets
// outside the data region.
func (a *Allocator) Bytes(off, size int) []byte {
	if a.region == nil || size <= 0 || off < a.layout.dataStart || off >= len(a.region) {
		return nil
	}
	end := off + min(size, len(a.region)-off)
	return a.region[off:end:end]
}

// Region returns the buffer the allocator manages, clamped to MaxRegionSize.
func (a *Allocator) Region() []byte {
	return a.region
}

// Dump renders the occupancy index, one character per quantum and 64
// quanta per line.
func (a *Allocator) Dump() string {
	if a.region == nil {
		return ""
	}
	return a.index.render(a.layout.quanta, 64)
}

// prepare validates an allocation request and returns its length in quanta.
func (a *Allocator) prepare(size, align int) (int, error) {
	if a.region == nil {
		return 0, ErrNotInitialized
	}
	if align <= 0 || align%Quantum != 0 {
		a.stats.failures++
		a.logger.Warn("invalid alignment", "align", align)
		return 0, errors.Wrapf(ErrBadAlignment, "align %d", align)
	}
	if size <= 0 {
		a.stats.failures++
		return 0, errors.Wrapf(ErrBadSize, "size %d", size)
	}
	if size > MaxRegionSize || align > MaxRegionSize {
		// Cannot fit in any region; checked early to keep the arithmetic small.
		return 0, a.outOfSpace(size, align)
	}
	return divCeil(size, Quantum), nil
}

// place finds a run for count quanta without modifying the index.
func (a *Allocator) place(count, align int) (start int, probed, ok bool) {
	if start, ok := a.probeCursor(count, align); ok {
		return start, true, true
	}
	if start, ok := a.findFreeRun(count, align); ok {
		return start, false, true
	}
	return 0, false, false
}

// commit marks a placed run occupied and advances the cursor by its length.
// The cursor moves from where it was, not from the run, on both paths.
func (a *Allocator) commit(start, count int, probed bool) {
	a.index.setRange(start, count, true)
	a.cursor = a.wrappedCursor() + count
	if probed {
		a.stats.probeHits++
	} else {
		a.stats.scanHits++
	}
	if a.live != nil {
		a.live.add(start, count)
	}
	a.stats.allocs++
	a.logger.Debug("alloc",
		"offset", a.layout.offsetOf(start),
		"quanta", count,
		"probed", probed,
		"cursor", a.cursor)
}

func (a *Allocator) outOfSpace(size, align int) error {
	a.stats.failures++
	a.logger.Warn("out of space", "size", size, "align", align)
	return errors.Wrapf(ErrOutOfSpace, "%d bytes aligned to %d", size, align)
}

func (a *Allocator) release(off, size int) error {
	if a.region == nil {
		return ErrNotInitialized
	}
	if off == NilOffset {
		return nil
	}
	if size <= 0 || size > MaxRegionSize || off < a.layout.dataStart {
		return a.badFree(off, size, nil)
	}
	start := a.layout.quantumOf(off)
	count := divCeil(size, Quantum)
	if start+count > a.layout.quanta {
		return a.badFree(off, size, nil)
	}
	if a.live != nil {
		if err := a.live.remove(start, count); err != nil {
			return a.badFree(off, size, err)
		}
	}

	a.index.setRange(start, count, false)
	a.cursor = start
	for a.cursor > 0 && !a.index.get(a.cursor-1) {
		a.cursor--
	}
	a.stats.frees++
	a.logger.Debug("free", "offset", off, "quanta", count, "cursor", a.cursor)
	return nil
}

func (a *Allocator) badFree(off, size int, cause error) error {
	a.stats.ignoredFrees++
	a.logger.Warn("free ignored", "offset", off, "size", size, "cause", cause)
	err := errors.Wrapf(ErrBadFree, "offset %d size %d", off, size)
	if cause != nil {
		err = errors.WithSecondaryError(err, cause)
	}
	return err
}
