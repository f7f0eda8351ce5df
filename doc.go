// Package flatvec implements a brute-force dense vector search core: given
// a query batch X (nx vectors of dimension d) and a database Y (ny vectors
// of dimension d), it computes either the k nearest neighbors of each
// query or all database entries within a distance radius, under squared
// Euclidean distance (L2²) and inner-product similarity (IP).
//
// Two numerical strategies are selected automatically based on query
// count: a direct scalar-loop path for small batches, and a GEMM-tiled
// path that reformulates distance computation as a blocked matrix multiply
// for large batches. Both feed the same pair of result-handler
// abstractions (search.TopKHandler, search.RadiusHandler) so the two
// strategies are interchangeable from the caller's perspective.
//
// flatvec does not build or maintain an index: every call scans the full
// database. There is no approximate search, no vector compression, no
// on-disk persistence, and no mutation of X or Y: a Searcher holds no
// database of its own and only reads the slices passed to each call.
package flatvec
