package flatvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with flatvec-specific context. It provides
// structured logging with consistent field names for the per-call log
// lines this package emits.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses the default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs. level
// sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithBatch adds query-count and database-size fields to the logger.
func (l *Logger) WithBatch(nx, ny int) *Logger {
	return &Logger{
		Logger: l.Logger.With("nx", nx, "ny", ny),
	}
}

// LogSearch logs a knn_inner_product/knn_l2sqr call. path identifies which
// strategy served the call ("direct" or "gemm", or "noop" for an empty
// batch).
func (l *Logger) LogSearch(ctx context.Context, path string, k, nx, ny int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"path", path,
			"k", k,
			"nx", nx,
			"ny", ny,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"path", path,
		"k", k,
		"nx", nx,
		"ny", ny,
	)
}

// LogRangeSearch logs a range_search_inner_product/range_search_l2sqr call.
func (l *Logger) LogRangeSearch(ctx context.Context, path string, radius float32, nx, ny, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "range search failed",
			"path", path,
			"radius", radius,
			"nx", nx,
			"ny", ny,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "range search completed",
		"path", path,
		"radius", radius,
		"nx", nx,
		"ny", ny,
		"results", results,
	)
}
