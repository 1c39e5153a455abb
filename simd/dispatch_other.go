//go:build !amd64 && !arm64

package simd

func init() {
	// Other architectures fall back to scalar mode for now.
	setScalarMode()
}
