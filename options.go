package flatvec

import (
	"log/slog"
	"runtime"
)

// Default tunables, matching the reference distance-compute thresholds
// named in spec: distance_compute_blas_threshold,
// distance_compute_blas_query_bs, distance_compute_blas_database_bs.
const (
	defaultBlasThreshold = 20
	defaultQueryBS       = 4096
	defaultDatabaseBS    = 1024
)

type options struct {
	blasThreshold int
	queryBS       int
	databaseBS    int
	workers       int
	logger        *Logger
}

// Option configures a Searcher constructed by New.
//
// Options are resolved once per Searcher; there is no process-wide mutable
// global, so two Searchers in the same process may run with different
// tunables concurrently.
type Option func(*options)

// WithBlasThreshold sets distance_compute_blas_threshold: queries below
// this count use the direct scalar-loop path; at or above it, the
// GEMM-tiled path is used. Values <= 0 disable the direct path entirely.
func WithBlasThreshold(threshold int) Option {
	return func(o *options) {
		o.blasThreshold = threshold
	}
}

// WithQueryBlockSize sets distance_compute_blas_query_bs, the query tile
// width (bs_x) used by the GEMM-tiled path.
func WithQueryBlockSize(bs int) Option {
	return func(o *options) {
		if bs > 0 {
			o.queryBS = bs
		}
	}
}

// WithDatabaseBlockSize sets distance_compute_blas_database_bs, the
// database tile width (bs_y) used by the GEMM-tiled path.
func WithDatabaseBlockSize(bs int) Option {
	return func(o *options) {
		if bs > 0 {
			o.databaseBS = bs
		}
	}
}

// WithWorkers sets the number of goroutines the direct path fans queries
// out across. Values <= 0 fall back to runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithLogger configures structured logging for search calls. Pass nil (or
// don't call WithLogger) to use a no-op logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel is a convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		blasThreshold: defaultBlasThreshold,
		queryBS:       defaultQueryBS,
		databaseBS:    defaultDatabaseBS,
		workers:       runtime.GOMAXPROCS(0),
		logger:        NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
