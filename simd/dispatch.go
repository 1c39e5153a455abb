package simd

import (
	"os"
	"strconv"
	"unsafe"
)

// Level represents the SIMD instruction set the batch primitives are sized for.
type Level int

const (
	// Scalar indicates no SIMD, plain per-element loops.
	Scalar Level = iota

	// SSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	SSE2

	// AVX2 indicates AVX2 instructions (256-bit).
	AVX2

	// AVX512 indicates AVX-512 instructions (512-bit).
	AVX512

	// NEON indicates ARM NEON instructions (128-bit).
	NEON

	// SVE indicates ARM SVE instructions (scalable vector).
	SVE
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case SSE2:
		return "sse2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	case SVE:
		return "sve"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel Level

// currentWidth is the register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the SIMD instruction set detected at startup.
func CurrentLevel() Level {
	return currentLevel
}

// CurrentWidth returns the register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv checks if the PSTL_NO_SIMD environment variable is set.
// When set, detection reports Scalar regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("PSTL_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxBlock is the largest batch a primitive processes at once. It matches the
// bit width of Mask.
const MaxBlock = 64

// Lanes returns the batch size for elements of type T at the current width.
//
// For example, with AVX2 (32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//
// Types wider than a register get a single lane.
func Lanes[T any]() int {
	var dummy T
	return lanesFor(int(unsafe.Sizeof(dummy)), currentWidth)
}

func lanesFor(elementSize, width int) int {
	if elementSize == 0 {
		return MaxBlock
	}
	return min(max(width/elementSize, 1), MaxBlock)
}

func setScalarMode() {
	currentLevel = Scalar
	currentWidth = 16 // Use 16-byte batches even in scalar mode for consistency
}
