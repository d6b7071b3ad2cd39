// Package bitalloc implements a fixed-capacity, bitmap-backed allocator over
// a single caller-supplied buffer.
//
// # Overview
//
// The allocator carves an occupancy index out of the start of the buffer and
// hands out the rest in 8-byte quanta. It never asks the operating system or
// the Go heap for memory, which makes allocation deterministic and bounded:
//
//   - Scratch memory for parsers and codecs with a hard size limit
//   - Fixed pools in long-running services that must not grow
//   - Simulating a small heap in tests
//
// # Basic Usage
//
//	buf := make([]byte, 3000)
//	a, err := bitalloc.New(buf)
//	if err != nil {
//	    return err // bitalloc.ErrTooSmall
//	}
//
//	off, err := a.Alloc(17)             // 8-byte aligned
//	data := a.Bytes(off, 17)
//	a.Free(off, 17)                     // the size must match
//
//	off, err = a.AllocAligned(99, 128) // off%128 == 0
//
// Allocations are byte offsets from the start of buf. NilOffset (0) is never
// a valid allocation because the index always occupies the first byte.
//
// # Memory Layout
//
// Only the first MaxRegionSize (4096) bytes of a buffer are used. The layout
// of a region of n bytes is
//
//	[0, indexBytes)           occupancy index, ceil(ceil(n/8)/8) bytes
//	[indexBytes, dataStart)   padding up to the next multiple of 8
//	[dataStart, n)            data, ceil((n-dataStart)/8) quanta
//
// Bit i of the index, stored most-significant-bit first, is set while
// quantum i belongs to a live allocation.
//
// # Placement
//
// Each allocation first tries the run at the cursor, which advances by the
// length of every allocation. If that run is taken the data region is scanned
// from the start and the lowest run that fits is used. Free rewinds the
// cursor to the start of the free space it created, so freed memory is
// reused first.
//
// # Freeing
//
// The allocator does not remember allocation sizes. Free must be called with
// the size that was allocated; anything else silently corrupts the index.
// WithStrictFree records live allocations and rejects mismatched frees,
// which FreeChecked reports as ErrBadFree.
//
// # Thread Safety
//
// The basic Allocator type is not thread-safe. For concurrent access, use
// SafeAllocator:
//
//	s, err := bitalloc.NewSafe(buf)
//	off, err := s.Alloc(64)
//
// # Mapped Regions
//
// NewMapped allocates its region with mmap. The region is page aligned, so
// offset alignment is also address alignment, which makes it the right
// choice for AllocValue and AllocSlice with alignment-sensitive types:
//
//	m, err := bitalloc.NewMapped(4096)
//	defer m.Close()
//	p, err := bitalloc.AllocValue[header](m.Allocator)
//
// # Metrics and Monitoring
//
//	metrics := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", metrics.Utilization*100)
//	fmt.Printf("Largest free run: %d bytes\n", metrics.LargestFree)
package bitalloc
