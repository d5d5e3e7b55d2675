//go:build !amd64 && !arm64

package tiling

func init() {
	// Other architectures plan at 16-byte alignment for now.
	setScalarHost()
}
