package bitalloc

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// AllocBytes reserves size bytes aligned to Quantum and returns them as a
// slice into the region. The slice's capacity equals its length. Release it
// with FreeBytes, passing the slice unchanged.
func (a *Allocator) AllocBytes(size int) ([]byte, error) {
	count, err := a.prepare(size, Quantum)
	if err != nil {
		return nil, err
	}
	start, probed, ok := a.place(count, Quantum)
	if ok && probed && !a.fitsRegion(start, size) {
		// The cursor run ends in the partial last quantum; an earlier run may fit.
		start, ok = a.findFreeRun(count, Quantum)
		probed = false
	}
	if !ok || !a.fitsRegion(start, size) {
		return nil, a.outOfSpace(size, Quantum)
	}
	a.commit(start, count, probed)
	off := a.layout.offsetOf(start)
	return a.region[off : off+size : off+size], nil
}

// FreeBytes releases a slice returned by AllocBytes.
func (a *Allocator) FreeBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	off, ok := a.sliceOffset(b)
	if !ok {
		if a.region == nil {
			return ErrNotInitialized
		}
		return a.badFree(NilOffset, len(b), errors.New("slice does not point into the region"))
	}
	return a.release(off, len(b))
}

// AllocValue returns a pointer to a zeroed T stored inside the region.
// T must not contain Go pointers: the garbage collector does not scan the
// region, so anything referenced only from it may be collected.
func AllocValue[T any](a *Allocator) (*T, error) {
	var zero T
	size := max(int(unsafe.Sizeof(zero)), 1)
	b, err := a.AllocBytes(size)
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		_ = a.FreeBytes(b)
		return nil, errors.Wrapf(ErrBadAlignment, "region base does not satisfy %d byte alignment", unsafe.Alignof(zero))
	}
	clear(b)
	return (*T)(p), nil
}

// FreeValue releases a value returned by AllocValue.
func FreeValue[T any](a *Allocator, p *T) error {
	if p == nil {
		return nil
	}
	var zero T
	size := max(int(unsafe.Sizeof(zero)), 1)
	return a.FreeBytes(unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
}

// AllocSlice returns a zeroed slice of n elements of T stored inside the
// region. The same pointer restriction as AllocValue applies.
// Returns nil if n <= 0.
func AllocSlice[T any](a *Allocator, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > MaxRegionSize/elemSize {
		return nil, a.outOfSpace(n*elemSize, Quantum)
	}
	b, err := a.AllocBytes(elemSize * n)
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(zero) != 0 {
		_ = a.FreeBytes(b)
		return nil, errors.Wrapf(ErrBadAlignment, "region base does not satisfy %d byte alignment", unsafe.Alignof(zero))
	}
	clear(b)
	return unsafe.Slice((*T)(p), n), nil
}

// FreeSlice releases a slice returned by AllocSlice. The slice must have the
// length it was allocated with.
func FreeSlice[T any](a *Allocator, s []T) error {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if len(s) == 0 || elemSize == 0 {
		return nil
	}
	return a.FreeBytes(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), elemSize*len(s)))
}

func (a *Allocator) fitsRegion(start, size int) bool {
	return a.layout.offsetOf(start)+size <= len(a.region)
}

// sliceOffset returns the region offset of b's first byte.
func (a *Allocator) sliceOffset(b []byte) (int, bool) {
	if a.region == nil {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.region)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p >= base+uintptr(len(a.region)) {
		return 0, false
	}
	return int(p - base), true
}
