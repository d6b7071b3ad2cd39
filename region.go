package bitalloc

import "github.com/cockroachdb/errors"

const (
	// Quantum is the allocation granularity in bytes and the minimum alignment.
	Quantum = 8

	// MaxRegionSize caps the usable part of any buffer handed to the allocator.
	// Larger buffers are silently truncated to this size.
	MaxRegionSize = 4096

	// NilOffset is never a valid data offset: the occupancy index always
	// occupies at least the first byte of the region.
	NilOffset = 0
)

// layout is the partition of a region into index bytes and data quanta.
// All values are byte offsets from the start of the region.
type layout struct {
	size       int // region bytes in use, after clamping
	indexBytes int // bytes of occupancy index at the start of the region
	dataStart  int // first data byte, Quantum-aligned
	quanta     int // number of quanta tracked by the index
}

// partition computes the layout of a region of the given size.
func partition(size int) (layout, error) {
	size = min(size, MaxRegionSize)
	if size <= 0 {
		return layout{}, errors.Wrapf(ErrTooSmall, "region of %d bytes", size)
	}

	l := layout{size: size}
	l.indexBytes = divCeil(divCeil(size, Quantum), 8)
	l.dataStart = alignUp(l.indexBytes, Quantum)

	usable := size - l.dataStart
	if usable <= 0 {
		return layout{}, errors.Wrapf(ErrTooSmall,
			"region of %d bytes leaves no room after a %d byte index", size, l.indexBytes)
	}
	l.quanta = divCeil(usable, Quantum)
	return l, nil
}

// usable returns the number of data bytes in the region.
func (l layout) usable() int {
	return l.size - l.dataStart
}

// offsetOf returns the region offset of quantum q.
func (l layout) offsetOf(q int) int {
	return l.dataStart + q*Quantum
}

// quantumOf returns the quantum containing region offset off.
// off must not be below dataStart.
func (l layout) quantumOf(off int) int {
	return (off - l.dataStart) / Quantum
}

func divCeil(x, y int) int {
	return (x + y - 1) / y
}

// alignUp rounds off up to the next multiple of align. align need not be a
// power of two.
func alignUp(off, align int) int {
	return divCeil(off, align) * align
}
