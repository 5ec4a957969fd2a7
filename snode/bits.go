package snode

import "math/bits"

// IsPow2 determines if the positive value n is a perfect power of 2.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilPow2 returns the least power of 2 that is >= n.
func CeilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Log2 efficiently computes log base 2 of n, rounded down.
func Log2(n int) int {
	return bits.Len(uint(n)) - 1
}
