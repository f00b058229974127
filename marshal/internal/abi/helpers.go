package abi

import "math"

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// MaxAlign returns the larger of two alignments.
func MaxAlign(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
