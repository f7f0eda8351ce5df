// Package distance is the external scalar-kernel contract: inner
// product and squared L2 distance between two equal-length float32
// rows, and the squared L2 norm of one row. These are pure, side
// effect free, and safe to call concurrently on disjoint arguments.
// All three are backed by internal/simd.
package distance

import "github.com/flatvec/flatvec/internal/simd"

// InnerProduct returns the dot product of a and b.
//
// Assumes len(a) == len(b); the caller is responsible for matching
// dimensions (the search kernels slice every row of X and Y with the
// same d, so lengths always match there).
func InnerProduct(a, b []float32) float32 {
	return simd.Dot(a, b)
}

// L2Sqr returns the squared Euclidean distance between a and b.
//
// Assumes len(a) == len(b).
func L2Sqr(a, b []float32) float32 {
	return simd.SquaredL2(a, b)
}

// NormL2Sqr returns the squared L2 norm of a, i.e. InnerProduct(a, a).
// Guaranteed >= 0.
func NormL2Sqr(a []float32) float32 {
	return simd.Dot(a, a)
}
