package pool

import "sync"

// uint32SlicePool reuses uint32 scratch slices (sized for entry words).
// container.Builder does not draw from it; it allocates its entry slices
// directly.
var uint32SlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetUint32Slice retrieves a uint32 slice sized to exactly n elements.
// The caller must call cleanup (typically via defer) to return it.
func GetUint32Slice(n int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	s := (*ptr)[:0]

	if cap(s) < n {
		s = make([]uint32, n)
	} else {
		s = s[:n]
	}
	*ptr = s

	return s, func() { uint32SlicePool.Put(ptr) }
}
