//go:build unix

// Package mmap maps anonymous memory for allocator regions.
package mmap

import (
	"golang.org/x/sys/unix"
)

// Map returns size bytes of zeroed, page-aligned, private read-write memory.
func Map(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// Unmap releases memory returned by Map.
func Unmap(data []byte) error {
	return unix.Munmap(data)
}

// PageSize returns the alignment of memory returned by Map.
func PageSize() int {
	return unix.Getpagesize()
}
