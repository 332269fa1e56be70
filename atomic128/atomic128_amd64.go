package atomic128

import "golang.org/x/sys/cpu"

// Virtually all amd64 hardware has CMPXCHG16B; the capability still gates
// the native path explicitly rather than by build target alone.
var hasCX16 = cpu.X86.HasCX16

// Native reports whether the operations are lock-free hardware atomics.
func Native() bool { return hasCX16 }

// Load reads the full 128 bits as one indivisible unit.
func Load(p *V128) V128 {
	if !hasCX16 {
		return loadFallback(p)
	}
	mustAligned(p)
	lo, hi := load16(p)
	return V128{Lo: lo, Hi: hi}
}

// Store writes the full 128 bits as one indivisible unit.
func Store(p *V128, v V128) {
	if !hasCX16 {
		storeFallback(p, v)
		return
	}
	mustAligned(p)
	store16(p, v.Lo, v.Hi)
}

// CompareAndSwap replaces *p with desired if it equals *expected and
// reports success. On mismatch it writes the observed value back into
// *expected, so a retry loop needs no second load. Mismatch is a normal
// control-flow outcome, not an error.
func CompareAndSwap(p *V128, expected *V128, desired V128) bool {
	if !hasCX16 {
		return casFallback(p, expected, desired)
	}
	mustAligned(p)
	obsLo, obsHi, ok := cas16(p, expected.Lo, expected.Hi, desired.Lo, desired.Hi)
	if !ok {
		expected.Lo, expected.Hi = obsLo, obsHi
	}
	return ok
}

//go:noescape
func load16(p *V128) (lo, hi uint64)

//go:noescape
func store16(p *V128, lo, hi uint64)

//go:noescape
func cas16(p *V128, oldLo, oldHi, newLo, newHi uint64) (obsLo, obsHi uint64, ok bool)
