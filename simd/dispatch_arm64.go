//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	// Check for PSTL_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	if cpu.ARM64.HasASIMD {
		currentLevel = NEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
	} else {
		setScalarMode()
	}

	// SVE vector length is implementation defined; batch at the 128-bit
	// minimum so block sizes stay the same as NEON.
	if cpu.ARM64.HasSVE {
		currentLevel = SVE
		currentWidth = 16
	}
}
