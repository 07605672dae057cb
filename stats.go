package dynarray

import "fmt"

// Stats is a snapshot of an array's size and allocation history.
type Stats struct {
	ItemSize      int          // Bytes per element
	Length        int          // Elements stored
	Capacity      int          // Elements the buffer holds
	Bytes         int          // Buffer size in bytes
	Reallocations int          // Buffer moves since Init
	Growth        GrowthPolicy // Growth policy in use
}

// Utilization returns the ratio of used to allocated elements (0.0 to 1.0).
// Returns 0.0 if the array has no capacity.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Length) / float64(s.Capacity)
}

// Stats returns a snapshot of the array statistics.
func (a *Array) Stats() Stats {
	return Stats{
		ItemSize:      a.itemSize,
		Length:        a.length,
		Capacity:      a.capacity,
		Bytes:         len(a.buf),
		Reallocations: a.reallocs,
		Growth:        a.opts.growth,
	}
}

func (a *Array) String() string {
	return fmt.Sprintf("{item_size: %d, length: %d, capacity: %d, bytes: %d}",
		a.itemSize, a.length, a.capacity, len(a.buf))
}
