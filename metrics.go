package bitalloc

// counters accumulate since the last Init.
type counters struct {
	allocs       uint64
	probeHits    uint64
	scanHits     uint64
	failures     uint64
	frees        uint64
	ignoredFrees uint64
}

// Capacity returns the number of data bytes the allocator can hand out.
func (a *Allocator) Capacity() int {
	if a.region == nil {
		return 0
	}
	return a.layout.quanta * Quantum
}

// QuantaInUse returns the number of allocated quanta.
func (a *Allocator) QuantaInUse() int {
	if a.region == nil {
		return 0
	}
	return a.index.count(a.layout.quanta)
}

// SizeInUse returns the number of allocated bytes, including the rounding
// of each allocation up to whole quanta.
func (a *Allocator) SizeInUse() int {
	return a.QuantaInUse() * Quantum
}

// Utilization returns the ratio of allocated quanta to all quanta (0.0 to 1.0).
func (a *Allocator) Utilization() float64 {
	if a.region == nil || a.layout.quanta == 0 {
		return 0
	}
	return float64(a.QuantaInUse()) / float64(a.layout.quanta)
}

// LargestFree returns the size in bytes of the longest run of free quanta,
// ignoring alignment.
func (a *Allocator) LargestFree() int {
	if a.region == nil {
		return 0
	}
	return a.index.longestFreeRun(a.layout.quanta) * Quantum
}

// Metrics returns a snapshot of allocator statistics.
func (a *Allocator) Metrics() Metrics {
	if a.region == nil {
		return Metrics{}
	}
	return Metrics{
		RegionSize:   a.layout.size,
		IndexBytes:   a.layout.indexBytes,
		DataStart:    a.layout.dataStart,
		Quanta:       a.layout.quanta,
		Capacity:     a.Capacity(),
		QuantaInUse:  a.QuantaInUse(),
		SizeInUse:    a.SizeInUse(),
		LargestFree:  a.LargestFree(),
		Cursor:       a.cursor,
		Utilization:  a.Utilization(),
		Allocs:       a.stats.allocs,
		ProbeHits:    a.stats.probeHits,
		ScanHits:     a.stats.scanHits,
		Failures:     a.stats.failures,
		Frees:        a.stats.frees,
		IgnoredFrees: a.stats.ignoredFrees,
	}
}

// Metrics contains statistical information about an allocator.
type Metrics struct {
	RegionSize   int     `json:"region_size"`   // Bytes of buffer in use
	IndexBytes   int     `json:"index_bytes"`   // Bytes taken by the occupancy index
	DataStart    int     `json:"data_start"`    // Offset of the first data byte
	Quanta       int     `json:"quanta"`        // Quanta tracked by the index
	Capacity     int     `json:"capacity"`      // Quanta * Quantum
	QuantaInUse  int     `json:"quanta_in_use"` // Allocated quanta
	SizeInUse    int     `json:"size_in_use"`   // Allocated bytes
	LargestFree  int     `json:"largest_free"`  // Longest free run in bytes
	Cursor       int     `json:"cursor"`        // Next quantum probed
	Utilization  float64 `json:"utilization"`   // Ratio of used to total quanta (0.0-1.0)
	Allocs       uint64  `json:"allocs"`        // Successful allocations
	ProbeHits    uint64  `json:"probe_hits"`    // Allocations placed at the cursor
	ScanHits     uint64  `json:"scan_hits"`     // Allocations placed by the full scan
	Failures     uint64  `json:"failures"`      // Rejected allocation requests
	Frees        uint64  `json:"frees"`         // Applied frees
	IgnoredFrees uint64  `json:"ignored_frees"` // Frees dropped as invalid
}
