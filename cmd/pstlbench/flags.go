package main

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/ajroetker/go-pstl/execution"
)

// runtimeFlags are the flags shared by the commands that build a runtime.
type runtimeFlags struct {
	threads    int
	backend    string
	grain      int
	maskBudget int64
	verbose    bool
}

func (f *runtimeFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.threads, "threads", "t", 0, "worker count (0: GOMAXPROCS or PSTL_NUM_THREADS)")
	fs.StringVar(&f.backend, "backend", string(execution.BackendPool), "scheduler backend: pool or goroutine")
	fs.IntVar(&f.grain, "grain", 0, "minimum elements per parallel leaf (0: default)")
	fs.Int64Var(&f.maskBudget, "mask-budget", 0, "byte budget for filter mask buffers (0: unlimited)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log degradation advisories")
}

func (f *runtimeFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (f *runtimeFlags) newRuntime() *execution.Runtime {
	return execution.NewRuntime(
		execution.WithWorkers(f.threads),
		execution.WithBackend(execution.Backend(f.backend)),
		execution.WithGrainSize(f.grain),
		execution.WithMaskBudget(f.maskBudget),
		execution.WithLogger(f.logger()),
	)
}
