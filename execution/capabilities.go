package execution

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/ajroetker/go-pstl/simd"
)

// Capabilities describes what the running build and machine can do. It is
// fixed when a Runtime is created.
type Capabilities struct {
	// SIMD is the detected instruction set level.
	SIMD simd.Level

	// Width is the register width in bytes batches are sized for.
	Width int

	// Vector enables vectorized bricks.
	Vector bool

	// Parallel enables parallel decomposition.
	Parallel bool

	// Workers is the concurrency parallel runs are sized for.
	Workers int

	// Monotonic enables vectorized stream compaction (copy_if,
	// unique_copy, partition_copy and the mask bricks).
	Monotonic bool

	// EarlyExit enables vectorized searches that stop at the first match.
	EarlyExit bool
}

// DetectCapabilities returns the capabilities of the current process,
// honoring the PSTL_NO_SIMD, PSTL_NO_PARALLEL and PSTL_NUM_THREADS
// environment variables.
func DetectCapabilities() Capabilities {
	c := Capabilities{
		SIMD:      simd.CurrentLevel(),
		Width:     simd.CurrentWidth(),
		Vector:    true,
		Parallel:  true,
		Workers:   runtime.GOMAXPROCS(0),
		Monotonic: true,
		EarlyExit: true,
	}
	if simd.NoSimdEnv() {
		c.Vector = false
		c.Monotonic = false
		c.EarlyExit = false
	}
	if envBool("PSTL_NO_PARALLEL") {
		c.Parallel = false
	}
	if n, ok := envInt("PSTL_NUM_THREADS"); ok && n > 0 {
		c.Workers = n
	}
	return c
}

func (c Capabilities) String() string {
	return fmt.Sprintf("simd=%s width=%d vector=%t parallel=%t workers=%d monotonic=%t early_exit=%t",
		c.SIMD, c.Width, c.Vector, c.Parallel, c.Workers, c.Monotonic, c.EarlyExit)
}

// envBool reads a boolean environment variable. Any non-empty value that
// does not parse as a bool counts as true.
func envBool(name string) bool {
	val := os.Getenv(name)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func envInt(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}
