// Package minmax is a specialized partial ordering primitive for use in sampled eviction.
package minmax

// Partial rearranges s[start:start+count] so that the minimum element
// (per less) is at start and the maximum is at start+count-1, using at
// most two swaps. Elements between the extremes are left in whatever
// order the scan finds them; only the endpoints are meaningful.
//
// Ranges reaching past the end of s are clamped to the remaining tail.
// Ranges with fewer than two elements in bounds are left untouched.
func Partial[S ~[]E, E any](s S, start, count int, less func(a, b E) bool) {
	if start < 0 || start >= len(s) {
		return
	}
	end := start + count - 1
	if last := len(s) - 1; end > last {
		end = last
	}
	if end <= start {
		return
	}
	lowest, highest := start, start
	for i := start + 1; i <= end; i++ {
		if less(s[i], s[lowest]) {
			lowest = i
		}
		if less(s[highest], s[i]) {
			highest = i
		}
	}
	if lowest != start {
		s[start], s[lowest] = s[lowest], s[start]
		if highest == start {
			// The maximum was displaced by the swap above.
			highest = lowest
		}
	}
	if highest != end {
		s[end], s[highest] = s[highest], s[end]
	}
}
