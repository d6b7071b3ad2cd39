package bitalloc

import "github.com/cockroachdb/errors"

var (
	// ErrTooSmall indicates the buffer cannot hold a data region once the
	// occupancy index has been carved out of it.
	ErrTooSmall = errors.New("bitalloc: region too small")

	// ErrBadAlignment indicates an alignment that is not a positive multiple of Quantum.
	ErrBadAlignment = errors.New("bitalloc: alignment must be a positive multiple of the quantum")

	// ErrOutOfSpace indicates no free run of the requested size and alignment exists.
	ErrOutOfSpace = errors.New("bitalloc: not enough contiguous space")

	// ErrBadSize indicates a non-positive allocation size.
	ErrBadSize = errors.New("bitalloc: size must be positive")

	// ErrNotInitialized indicates use of an Allocator that was never initialized.
	ErrNotInitialized = errors.New("bitalloc: allocator not initialized")

	// ErrBadFree indicates a free whose offset or size does not match a live allocation.
	ErrBadFree = errors.New("bitalloc: free does not match a live allocation")

	// ErrCorrupt indicates Validate found the allocator state inconsistent.
	ErrCorrupt = errors.New("bitalloc: corrupt allocator state")
)
