package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-pstl/execution"
)

// benchFlags select the input and repetition of a benchmark.
type benchFlags struct {
	n      int
	repeat int
	seed   int64
}

func (f *benchFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.n, "n", 1_000_000, "number of elements")
	fs.IntVar(&f.repeat, "repeat", 5, "runs per measurement; the fastest is reported")
	fs.Int64Var(&f.seed, "seed", 1, "random seed for the input")
}

func (f *benchFlags) input() *input {
	rng := rand.New(rand.NewSource(f.seed))
	in := &input{
		src:   make([]int64, f.n),
		other: make([]int64, f.n),
	}
	for i := range in.src {
		in.src[i] = rng.Int63n(1000)
	}
	copy(in.other, in.src)
	if f.n > 0 {
		in.other[f.n-1]++
	}
	in.sorted = slices.Clone(in.src)
	slices.Sort(in.sorted)
	return in
}

// result is one measured benchmark in one mode.
type result struct {
	algo     string
	mode     execution.Mode
	best     time.Duration
	ok       bool
	degraded []execution.Diagnostic
}

// measure runs b in mode repeat times and checks the last outcome against
// want. When want is nil the outcome is returned as the new reference.
func measure(rt *execution.Runtime, b benchmark, mode execution.Mode, in *input, repeat int, want any) (result, any) {
	rt.ResetDiagnostics()
	k := kernelsFor(mode, rt)
	r := result{algo: b.name, mode: mode, best: time.Duration(math.MaxInt64)}
	var got any
	for range max(repeat, 1) {
		start := time.Now()
		got = b.run(k, in)
		r.best = min(r.best, time.Since(start))
	}
	r.ok = want == nil || cmp.Equal(want, got)
	for _, d := range rt.Diagnostics() {
		if d.Algorithm == b.name {
			r.degraded = append(r.degraded, d)
		}
	}
	return r, got
}

// compare measures b in each of modes, using the sequential mode as the
// reference and as the speedup baseline.
func compare(rt *execution.Runtime, b benchmark, modes []execution.Mode, in *input, repeat int) []result {
	base, want := measure(rt, b, execution.SerialScalar, in, repeat, nil)
	results := []result{base}
	for _, m := range modes {
		if m == execution.SerialScalar {
			continue
		}
		r, _ := measure(rt, b, m, in, repeat, want)
		results = append(results, r)
	}
	return results
}

func printResults(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tMODE\tTIME\tSPEEDUP\tCHECK\tDEGRADED")
	var base time.Duration
	for _, r := range results {
		if r.mode == execution.SerialScalar {
			base = r.best
		}
		check := "ok"
		if !r.ok {
			check = "MISMATCH"
		}
		speedup := float64(base) / float64(max(r.best, 1))
		var degraded []string
		for _, d := range r.degraded {
			degraded = append(degraded, fmt.Sprintf("%s:%s", d.Axis, d.Reason))
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%.2fx\t%s\t%s\n",
			r.algo, r.mode, r.best.Round(time.Microsecond), speedup, check, strings.Join(degraded, ","))
	}
	return tw.Flush()
}

func mismatches(results []result) error {
	var bad []string
	for _, r := range results {
		if !r.ok {
			bad = append(bad, r.algo+"/"+r.mode.String())
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("results differ from seq: %s", strings.Join(bad, ", "))
	}
	return nil
}

func newRunCmd() *cobra.Command {
	var (
		rtFlags    runtimeFlags
		bFlags     benchFlags
		algoName   string
		modeString string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one algorithm in one mode and compare it with seq",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, ok := findBenchmark(algoName)
			if !ok {
				return fmt.Errorf("unknown algorithm %q (known: %s)", algoName, strings.Join(benchmarkNames(), ", "))
			}
			mode, err := execution.ParseMode(modeString)
			if err != nil {
				return err
			}
			if err := checkBackend(rtFlags.backend); err != nil {
				return err
			}

			rt := rtFlags.newRuntime()
			defer rt.Close()
			rt.Logger().Info("running", "algorithm", b.name, "mode", mode.String(), "n", bFlags.n,
				"workers", rt.Executor().Workers())

			results := compare(rt, b, []execution.Mode{mode}, bFlags.input(), bFlags.repeat)
			if err := printResults(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			return mismatches(results)
		},
	}
	fs := cmd.Flags()
	rtFlags.register(fs)
	bFlags.register(fs)
	fs.StringVarP(&algoName, "algo", "a", "copy_if", "algorithm to run")
	fs.StringVarP(&modeString, "mode", "m", "par_unseq", "execution policy: seq, unseq, par or par_unseq")
	return cmd
}

func newAllCmd() *cobra.Command {
	var (
		rtFlags runtimeFlags
		bFlags  benchFlags
	)
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Run every algorithm in all four modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkBackend(rtFlags.backend); err != nil {
				return err
			}
			rt := rtFlags.newRuntime()
			defer rt.Close()
			rt.Logger().Info("running all algorithms", "n", bFlags.n, "workers", rt.Executor().Workers())

			in := bFlags.input()
			var all []result
			for _, b := range benchmarks {
				all = append(all, compare(rt, b, execution.Modes, in, bFlags.repeat)...)
			}
			if err := printResults(cmd.OutOrStdout(), all); err != nil {
				return err
			}
			return mismatches(all)
		},
	}
	rtFlags.register(cmd.Flags())
	bFlags.register(cmd.Flags())
	return cmd
}

func benchmarkNames() []string {
	names := make([]string, len(benchmarks))
	for i, b := range benchmarks {
		names[i] = b.name
	}
	return names
}

func checkBackend(b string) error {
	switch execution.Backend(b) {
	case execution.BackendPool, execution.BackendGoroutine:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want %s or %s)", b, execution.BackendPool, execution.BackendGoroutine)
}
