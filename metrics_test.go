package bitalloc

import (
	"testing"
)

func TestAllocatorMetrics(t *testing.T) {
	a := newTestAllocator(t, 3000)

	// Test initial state
	if a.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", a.SizeInUse())
	}
	if a.Capacity() != 2952 {
		t.Errorf("Capacity = %d, want 2952", a.Capacity())
	}
	if a.LargestFree() != 2952 {
		t.Errorf("Initial LargestFree = %d, want 2952", a.LargestFree())
	}
	if a.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", a.Utilization())
	}

	// Allocate some data
	off1, _ := a.Alloc(100) // 13 quanta
	off2, _ := a.Alloc(200) // 25 quanta
	if a.SizeInUse() != 38*Quantum {
		t.Errorf("SizeInUse = %d, want %d", a.SizeInUse(), 38*Quantum)
	}
	if a.LargestFree() != (369-38)*Quantum {
		t.Errorf("LargestFree = %d, want %d", a.LargestFree(), (369-38)*Quantum)
	}

	utilization := a.Utilization()
	if utilization <= 0 || utilization > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", utilization)
	}

	// Test metrics snapshot
	m := a.Metrics()
	if m.RegionSize != 3000 || m.IndexBytes != 47 || m.DataStart != 48 || m.Quanta != 369 {
		t.Errorf("layout metrics = %+v", m)
	}
	if m.SizeInUse != a.SizeInUse() {
		t.Errorf("Metrics.SizeInUse = %d, want %d", m.SizeInUse, a.SizeInUse())
	}
	if m.QuantaInUse != 38 {
		t.Errorf("Metrics.QuantaInUse = %d, want 38", m.QuantaInUse)
	}
	if m.Cursor != 38 {
		t.Errorf("Metrics.Cursor = %d, want 38", m.Cursor)
	}
	if m.Allocs != 2 || m.ProbeHits != 2 || m.ScanHits != 0 {
		t.Errorf("alloc counters = %d/%d/%d, want 2/2/0", m.Allocs, m.ProbeHits, m.ScanHits)
	}
	if m.Utilization != utilization {
		t.Errorf("Metrics.Utilization = %f, want %f", m.Utilization, utilization)
	}

	a.Free(off1, 100)
	a.Free(off2, 200)
	a.Free(off2, -1)
	m = a.Metrics()
	if m.Frees != 2 || m.IgnoredFrees != 1 {
		t.Errorf("free counters = %d/%d, want 2/1", m.Frees, m.IgnoredFrees)
	}
	if m.SizeInUse != 0 {
		t.Errorf("SizeInUse after frees = %d, want 0", m.SizeInUse)
	}
}

func TestLargestFreeFragmented(t *testing.T) {
	a := newTestAllocator(t, 256) // 31 quanta

	var offs []int
	for range 10 {
		off, err := a.Alloc(24) // 3 quanta
		if err != nil {
			t.Fatal(err)
		}
		offs = append(offs, off)
	}
	// 1 quantum left at the end.
	if a.LargestFree() != Quantum {
		t.Errorf("LargestFree = %d, want %d", a.LargestFree(), Quantum)
	}

	a.Free(offs[4], 24)
	a.Free(offs[5], 24)
	if a.LargestFree() != 6*Quantum {
		t.Errorf("LargestFree = %d, want %d", a.LargestFree(), 6*Quantum)
	}
}
