package utils

import "math"

func CalculateTotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// CalculateOffset works on zero-based pages and saturates instead of overflowing.
func CalculateOffset(page, size int) int {
	if page < 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}
