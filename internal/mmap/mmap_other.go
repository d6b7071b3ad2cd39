//go:build !unix

package mmap

import "unsafe"

const pageSize = 4096

// Map allocates size bytes from the heap, aligned to pageSize, when mmap is
// not available.
func Map(size int) ([]byte, error) {
	buf := make([]byte, size+pageSize)
	pad := (pageSize - int(uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%pageSize)) % pageSize
	return buf[pad : pad+size : pad+size], nil
}

// Unmap is a no-op; the garbage collector reclaims heap regions.
func Unmap(data []byte) error {
	return nil
}

// PageSize returns the alignment of memory returned by Map.
func PageSize() int {
	return pageSize
}
