package core

// EnsureLen returns a slice with the requested length, reusing the capacity
// of buf when it is large enough. The returned values are unspecified, so
// callers overwrite them before reading.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}
