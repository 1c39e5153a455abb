// Copyright 2025 go-pstl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package execution

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ajroetker/go-pstl/internal/maskbuf"
	"github.com/ajroetker/go-pstl/par"
	"github.com/ajroetker/go-pstl/workerpool"
)

// Runtime carries the state shared by algorithm invocations. It is safe for
// concurrent use.
type Runtime struct {
	caps   Capabilities
	cfg    config
	masks  *maskbuf.Allocator
	logger *slog.Logger
	advice *rate.Limiter

	// The backend starts on the first parallel run.
	execOnce sync.Once
	exec     *par.Executor
	closer   func()
	started  atomic.Bool

	diagMu sync.Mutex
	diag   map[diagKey]*atomic.Int64
}

// NewRuntime builds a runtime from detected capabilities and opts.
func NewRuntime(opts ...Option) *Runtime {
	cfg := config{
		backend:     BackendPool,
		adviceEvery: time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	caps := DetectCapabilities()
	if cfg.caps != nil {
		caps = *cfg.caps
	}
	if cfg.workers > 0 {
		caps.Workers = cfg.workers
	}
	if caps.Workers <= 0 {
		caps.Workers = 1
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevelEnv(),
		}))
	}

	return &Runtime{
		caps:   caps,
		cfg:    cfg,
		masks:  maskbuf.New(cfg.maskBudget),
		logger: cfg.logger,
		advice: rate.NewLimiter(rate.Every(cfg.adviceEvery), 1),
		closer: func() {},
		diag:   make(map[diagKey]*atomic.Int64),
	}
}

// startBackend builds the executor over the configured scheduler.
func (rt *Runtime) startBackend() {
	sched := rt.cfg.sched
	switch {
	case sched != nil:
	case !rt.caps.Parallel || rt.caps.Workers == 1:
		sched = par.Serial
	case rt.cfg.backend == BackendGoroutine:
		sched = par.NewGoroutines(rt.caps.Workers)
	default:
		pool := workerpool.New(rt.caps.Workers)
		rt.closer = pool.Close
		sched = pool
	}
	rt.exec = par.NewExecutor(sched, rt.cfg.grain)
	rt.started.Store(true)

	rt.logger.Debug("pstl backend started",
		"capabilities", rt.caps.String(),
		"backend", string(rt.cfg.backend),
		"workers", rt.exec.Workers(),
		"grain", rt.exec.Grain(),
		"mask_budget", rt.cfg.maskBudget,
	)
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide runtime, configured from the
// environment on first use: PSTL_BACKEND (pool or goroutine), PSTL_GRAIN,
// PSTL_MASK_BUDGET and the variables read by DetectCapabilities.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = NewRuntime(envOptions()...)
	})
	return defaultRuntime
}

func envOptions() []Option {
	var opts []Option
	if v := os.Getenv("PSTL_BACKEND"); v != "" {
		switch b := Backend(strings.ToLower(v)); b {
		case BackendPool, BackendGoroutine:
			opts = append(opts, WithBackend(b))
		default:
			slog.Warn("ignoring unknown PSTL_BACKEND", "value", v, "using", string(BackendPool))
		}
	}
	if n, ok := envInt("PSTL_GRAIN"); ok {
		opts = append(opts, WithGrainSize(n))
	}
	if v := os.Getenv("PSTL_MASK_BUDGET"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts = append(opts, WithMaskBudget(n))
		}
	}
	return opts
}

// logLevelEnv reads PSTL_LOG_LEVEL (debug, info, warn, error). Defaults to info.
func logLevelEnv() slog.Level {
	var level slog.Level
	if v := os.Getenv("PSTL_LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}

// Close releases the runtime's built-in backend. Policies bound to a
// closed runtime keep working serially.
func (rt *Runtime) Close() {
	rt.execOnce.Do(rt.startBackend)
	rt.closer()
}

// Capabilities returns the capability descriptor.
func (rt *Runtime) Capabilities() Capabilities { return rt.caps }

// Executor returns the executor parallel paths run on.
func (rt *Runtime) Executor() *par.Executor {
	rt.execOnce.Do(rt.startBackend)
	return rt.exec
}

// Started reports whether the backend has been built.
func (rt *Runtime) Started() bool {
	return rt.started.Load()
}

// Masks returns the mask buffer allocator.
func (rt *Runtime) Masks() *maskbuf.Allocator { return rt.masks }

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }
