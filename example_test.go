package bitalloc

import (
	"errors"
	"fmt"
	"sync"
)

// Example demonstrates basic allocator usage
func Example() {
	buf := make([]byte, 3000)
	a, err := New(buf)
	if err != nil {
		panic(err)
	}

	// Offsets are relative to the start of buf
	off, _ := a.Alloc(17)
	fmt.Printf("Alloc(17) at offset %d\n", off)

	aligned, _ := a.AllocAligned(99, 128)
	fmt.Printf("AllocAligned(99, 128) at offset %d\n", aligned)

	// Write through a view of the allocation
	copy(a.Bytes(off, 17), "seventeen bytes!!")

	fmt.Printf("Quanta in use: %d\n", a.QuantaInUse())
	fmt.Printf("Size in use: %d bytes of %d\n", a.SizeInUse(), a.Capacity())
	fmt.Printf("Utilization: %.2f%%\n", a.Utilization()*100)

	// Sizes must match the allocation
	a.Free(off, 17)
	a.Free(aligned, 99)
	fmt.Printf("Quanta in use after free: %d\n", a.QuantaInUse())

	// Output:
	// Alloc(17) at offset 48
	// AllocAligned(99, 128) at offset 128
	// Quanta in use: 16
	// Size in use: 128 bytes of 2952
	// Utilization: 4.34%
	// Quanta in use after free: 0
}

// ExampleAllocator_Dump shows the occupancy index of a small region
func ExampleAllocator_Dump() {
	a, _ := New(make([]byte, 256))
	a.Alloc(24)
	a.AllocAligned(8, 64)
	fmt.Println(a.Dump())

	// Output:
	// 1110000100000000000000000000000
}

// ExampleWithStrictFree demonstrates detection of mismatched frees
func ExampleWithStrictFree() {
	a, _ := New(make([]byte, 3000), WithStrictFree())
	off, _ := a.Alloc(40)

	err := a.FreeChecked(off, 16)
	fmt.Println(errors.Is(err, ErrBadFree))
	fmt.Println(a.QuantaInUse())

	err = a.FreeChecked(off, 40)
	fmt.Println(err)
	fmt.Println(a.QuantaInUse())

	// Output:
	// true
	// 5
	// <nil>
	// 0
}

// ExampleSafeAllocator demonstrates concurrent usage
func ExampleSafeAllocator() {
	s, err := NewSafe(make([]byte, MaxRegionSize))
	if err != nil {
		panic(err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				s.Alloc(32)
			}
		}()
	}
	wg.Wait()

	m := s.Metrics()
	fmt.Printf("Allocations: %d\n", m.Allocs)
	fmt.Printf("Quanta in use: %d of %d\n", m.QuantaInUse, m.Quanta)

	// Output:
	// Allocations: 40
	// Quanta in use: 160 of 504
}

// ExampleAllocSlice demonstrates typed allocation
func ExampleAllocSlice() {
	a, _ := New(make([]byte, 1024))

	xs, err := AllocSlice[int32](a, 5)
	if err != nil {
		panic(err)
	}
	for i := range xs {
		xs[i] = int32(i * i)
	}
	fmt.Println(xs)
	fmt.Println(a.SizeInUse())

	_ = FreeSlice(a, xs)
	fmt.Println(a.SizeInUse())

	// Output:
	// [0 1 4 9 16]
	// 24
	// 0
}
