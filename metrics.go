package alloc

// Stats is a snapshot of an allocator's byte counters.
type Stats struct {
	Capacity    uintptr `json:"capacity"`    // Total bytes the allocator can hand out
	Used        uintptr `json:"used"`        // Bytes consumed, alignment padding included
	Remain      uintptr `json:"remain"`      // Bytes still available
	Utilization float64 `json:"utilization"` // Used / Capacity (0.0-1.0)
}

// Snapshot returns the current counters of a.
func Snapshot(a Allocator) Stats {
	s := Stats{
		Capacity: a.Capacity(),
		Used:     a.Used(),
		Remain:   a.Remain(),
	}
	s.Utilization = Utilization(a)
	return s
}

// Utilization returns the ratio of used bytes to capacity (0.0 to 1.0).
// Returns 0.0 if the allocator has no capacity.
func Utilization(a Allocator) float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(capacity)
}
