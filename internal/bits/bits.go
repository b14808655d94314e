// Package bits provides small bit-twiddling helpers for the encoding
// packages: byte-rounding of bit counts, and min/max/required-width
// helpers. encoding/delta uses MaxLen64 to size its miniblock widths.
package bits

import "math/bits"

// ByteCount returns the number of bytes needed to hold bitCount bits.
func ByteCount(bitCount uint) int {
	return int((bitCount + 7) / 8)
}

// BitWidth returns ceil(log2(n+1)), the number of bits required to represent
// every value in [0, n] (the rule spec.md uses for both dictionary indices
// and repetition/definition levels).
func BitWidth(n uint64) int {
	return bits.Len64(n)
}

// MaxLen32 returns the number of bits required to represent the largest
// value (by magnitude, already cast to unsigned) in data.
func MaxLen32(data []uint32) int {
	max := 0
	for _, v := range data {
		if n := bits.Len32(v); n > max {
			max = n
		}
	}
	return max
}

// MaxLen64 is the 64 bits equivalent of MaxLen32.
func MaxLen64(data []uint64) int {
	max := 0
	for _, v := range data {
		if n := bits.Len64(v); n > max {
			max = n
		}
	}
	return max
}

// MinInt32 returns the smallest value in data, or 0 if data is empty.
func MinInt32(data []int32) int32 {
	min := int32(0)
	if len(data) > 0 {
		min = data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
		}
	}
	return min
}

// MinInt64 is the 64 bits equivalent of MinInt32.
func MinInt64(data []int64) int64 {
	min := int64(0)
	if len(data) > 0 {
		min = data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
		}
	}
	return min
}

// SubInt32 subtracts d from every element of data, in place, using wrapping
// two's-complement arithmetic.
func SubInt32(data []int32, d int32) {
	for i, v := range data {
		data[i] = v - d
	}
}

// SubInt64 is the 64 bits equivalent of SubInt32.
func SubInt64(data []int64, d int64) {
	for i, v := range data {
		data[i] = v - d
	}
}

// AddInt64 adds d to every element of data, in place, using wrapping
// two's-complement arithmetic.
func AddInt64(data []int64, d int64) {
	for i, v := range data {
		data[i] = v + d
	}
}
