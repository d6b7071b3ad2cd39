package bitalloc

import "sync"

// SafeAllocator is a mutex-protected wrapper around Allocator for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type SafeAllocator struct {
	mu sync.Mutex
	a  *Allocator
}

// NewSafe creates a thread-safe allocator over buf.
func NewSafe(buf []byte, opts ...Option) (*SafeAllocator, error) {
	a, err := New(buf, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeAllocator{a: a}, nil
}

// Init thread-safely repartitions buf, discarding all allocations.
func (s *SafeAllocator) Init(buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Init(buf)
}

// Alloc thread-safely reserves size bytes aligned to Quantum.
func (s *SafeAllocator) Alloc(size int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// AllocAligned thread-safely reserves size bytes aligned to align.
func (s *SafeAllocator) AllocAligned(size, align int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocAligned(size, align)
}

// Free thread-safely releases the allocation at off.
func (s *SafeAllocator) Free(off, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Free(off, size)
}

// FreeChecked thread-safely releases the allocation at off, reporting ignored frees.
func (s *SafeAllocator) FreeChecked(off, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.FreeChecked(off, size)
}

// AllocBytes thread-safely reserves size bytes and returns them as a slice.
func (s *SafeAllocator) AllocBytes(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(size)
}

// FreeBytes thread-safely releases a slice returned by AllocBytes.
func (s *SafeAllocator) FreeBytes(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.FreeBytes(b)
}

// Bytes thread-safely returns the bytes of the allocation at off. Only the
// lookup is locked: the caller owns the allocation and its contents.
func (s *SafeAllocator) Bytes(off, size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Bytes(off, size)
}

// Reset thread-safely marks every quantum free.
func (s *SafeAllocator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Metrics thread-safely returns a snapshot of allocator statistics.
func (s *SafeAllocator) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

// Validate thread-safely checks internal consistency.
func (s *SafeAllocator) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Validate()
}

// Dump thread-safely renders the occupancy index.
func (s *SafeAllocator) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Dump()
}
