package utils

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Min3 returns the minimum of three integers.
func Min3(a, b, c int) int {
	result := a
	if b < result {
		result = b
	}
	if c < result {
		result = c
	}
	return result
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CeilDiv divides a by b rounding up. b must be positive.
// Used for costing rules that never round in the buyer's favor.
func CeilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
