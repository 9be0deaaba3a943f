package fit

import "io"

// Config defines configuration for a Solver.
type Config struct {
	// RootSolver picks the critical-point extraction backend.
	RootSolver RootSolver
	// Trace receives a line-oriented log of the assembled objective and
	// candidate filtering when non-nil.
	Trace io.Writer
	// NumericStarts is the number of multi-start points for SolveNumeric.
	NumericStarts int
	// NumericMin and NumericMax bound the divider search range of
	// SolveNumeric.
	NumericMin float64
	NumericMax float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RootSolver:    RootSolverDurandKerner,
		NumericStarts: 8,
		NumericMin:    1e-3,
		NumericMax:    1e3,
	}
}

// WithRootSolver selects the root-finding backend.
func WithRootSolver(rs RootSolver) Option {
	return func(cfg *Config) {
		cfg.RootSolver = rs
	}
}

// WithTrace directs a diagnostic trace of the solve to w.
func WithTrace(w io.Writer) Option {
	return func(cfg *Config) {
		cfg.Trace = w
	}
}

// WithNumericRange bounds the numeric divider search to [lo, hi].
func WithNumericRange(lo, hi float64) Option {
	return func(cfg *Config) {
		if lo > 0 && hi > lo {
			cfg.NumericMin = lo
			cfg.NumericMax = hi
		}
	}
}

// WithNumericStarts sets the number of numeric multi-start points.
func WithNumericStarts(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.NumericStarts = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
