// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample format conversions shared by the decoders and
// writers.
package utils

// Int16Scale is the divisor mapping 16-bit PCM onto [-1, 1).
const Int16Scale = 32768

// Int16ToFloat32 converts a 16-bit PCM sample to float32 in [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / Int16Scale
}

// Float32ToInt16 is the inverse of Int16ToFloat32. Values outside [-1, 1)
// are clamped, so 1.0 maps to 32767.
func Float32ToInt16(x float32) int16 {
	v := x * Int16Scale
	switch {
	case v >= 32767:
		return 32767
	case v <= -32768:
		return -32768
	}

	return int16(v)
}

// Float32ToInt16Slice converts src into dst and returns the number of
// samples converted, min(len(dst), len(src)).
func Float32ToInt16Slice(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}
