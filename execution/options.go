package execution

import (
	"log/slog"
	"time"

	"github.com/ajroetker/go-pstl/par"
)

// Backend names a built-in scheduler.
type Backend string

const (
	// BackendPool runs parallel work on a persistent workerpool.Pool.
	BackendPool Backend = "pool"
	// BackendGoroutine forks goroutines on demand, bounded by Workers.
	BackendGoroutine Backend = "goroutine"
)

type config struct {
	caps        *Capabilities
	sched       par.Scheduler
	backend     Backend
	workers     int
	grain       int
	logger      *slog.Logger
	maskBudget  int64
	adviceEvery time.Duration
}

// Option configures a Runtime.
type Option func(*config)

// WithCapabilities replaces the detected capability descriptor.
func WithCapabilities(c Capabilities) Option {
	return func(cfg *config) {
		cfg.caps = &c
	}
}

// WithScheduler runs parallel work on s instead of a built-in backend.
// The runtime does not close s.
func WithScheduler(s par.Scheduler) Option {
	return func(cfg *config) {
		cfg.sched = s
	}
}

// WithBackend selects a built-in scheduler. Defaults to BackendPool.
func WithBackend(b Backend) Option {
	return func(cfg *config) {
		cfg.backend = b
	}
}

// WithWorkers overrides the capability descriptor's worker count.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.workers = n
	}
}

// WithGrainSize sets the minimum number of elements per leaf.
func WithGrainSize(n int) Option {
	return func(cfg *config) {
		cfg.grain = n
	}
}

// WithLogger sets the logger used for degradation advisories.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMaskBudget caps the bytes of mask buffers held at once.
// Filtering algorithms that cannot reserve a buffer run serially.
func WithMaskBudget(bytes int64) Option {
	return func(cfg *config) {
		cfg.maskBudget = bytes
	}
}

// WithAdviceInterval sets the minimum spacing between repeated advisory
// log lines. Counters in Diagnostics are always exact.
func WithAdviceInterval(d time.Duration) Option {
	return func(cfg *config) {
		cfg.adviceEvery = d
	}
}
