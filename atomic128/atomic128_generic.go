//go:build !amd64

package atomic128

// Native reports whether the operations are lock-free hardware atomics.
// This host has no double-width atomic instruction exposed here, so the
// package runs in the degraded lock-based mode.
func Native() bool { return false }

// Load reads the full 128 bits as one indivisible unit.
func Load(p *V128) V128 { return loadFallback(p) }

// Store writes the full 128 bits as one indivisible unit.
func Store(p *V128, v V128) { storeFallback(p, v) }

// CompareAndSwap replaces *p with desired if it equals *expected and
// reports success; on mismatch the observed value is written back into
// *expected.
func CompareAndSwap(p *V128, expected *V128, desired V128) bool {
	return casFallback(p, expected, desired)
}
