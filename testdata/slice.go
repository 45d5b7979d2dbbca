package testdata

// SliceGet is a test case for a bounds-checked slice access.
func SliceGet(s []int32, i int) int32 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// SliceFirst is a test case for an unchecked slice access.
func SliceFirst(s []int32) int32 {
	return s[0]
}

// MakeBuffer is a test case for a slice allocation.
func MakeBuffer(n int) []int32 {
	return make([]int32, n)
}

// MakeBufferChecked is a test case for a checked slice allocation.
func MakeBufferChecked(n int) []int32 {
	if n < 0 {
		return nil
	}
	return make([]int32, n)
}
