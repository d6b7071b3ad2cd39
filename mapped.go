package bitalloc

import (
	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/bitalloc/internal/mmap"
)

// MappedAllocator is an Allocator over a region mapped from the operating
// system. The region is page aligned, so every offset alignment the
// allocator guarantees is also an alignment of the address in memory.
type MappedAllocator struct {
	*Allocator
	mem []byte
}

// NewMapped maps a region of size bytes, clamped to MaxRegionSize, and
// creates an Allocator over it. Call Close to release the mapping.
func NewMapped(size int, opts ...Option) (*MappedAllocator, error) {
	size = min(size, MaxRegionSize)
	if size <= 0 {
		return nil, errors.Wrapf(ErrTooSmall, "region of %d bytes", size)
	}
	mem, err := mmap.Map(size)
	if err != nil {
		return nil, errors.Wrapf(err, "map %d byte region", size)
	}
	a, err := New(mem, opts...)
	if err != nil {
		_ = mmap.Unmap(mem)
		return nil, err
	}
	return &MappedAllocator{Allocator: a, mem: mem}, nil
}

// Close unmaps the region. Any use of the allocator or of memory it handed
// out afterwards is invalid; allocator calls report ErrNotInitialized.
// Close is safe to call more than once.
func (m *MappedAllocator) Close() error {
	if m.mem == nil {
		return nil
	}
	mem := m.mem
	m.mem = nil
	m.Allocator.region, m.Allocator.index = nil, nil
	return errors.Wrap(mmap.Unmap(mem), "unmap region")
}
