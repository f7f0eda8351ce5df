// Package simd provides the scalar distance kernels used by the search
// engine: dot product and squared L2 distance of two float32 vectors,
// plus batch variants over a flattened set of rows.
//
// CPU feature detection (internal/simd/capability.go) runs at init time
// on amd64 and arm64 and is exposed through ActiveISA for diagnostics.
// Kernel bodies themselves are portable Go; see the package's
// history for why no assembly backend is bundled here.
package simd
