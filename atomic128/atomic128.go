// Package atomic128 provides double-width (128-bit) atomic load, store,
// and compare-and-swap for wide register and state values shared between
// an emulated core and surrounding control code.
//
// On amd64 hosts with the CX16 capability, all three operations use
// LOCK CMPXCHG16B and carry a full memory barrier. Everywhere else the
// package runs in a degraded mode built on striped mutexes: linearizable,
// but lock-based rather than lock-free. The degraded mode is announced by
// a warning log at init and is visible through Native; it is never
// substituted silently.
//
// Each operation is sequentially consistent in isolation and nothing more:
// this is not a lock, and multi-step critical sections must be built from
// CompareAndSwap retry loops.
package atomic128

import (
	"sync"
	"unsafe"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// V128 is a 128-bit value. Operands of the atomic operations must be
// 16-byte aligned; the native path checks and panics on misaligned
// addresses, which would otherwise fault in hardware.
type V128 struct {
	Lo, Hi uint64
}

func init() {
	if !Native() {
		ethlog.Warn("atomic128 running in degraded lock-based mode; 128-bit operations are not lock-free on this host")
	}
}

// NewAligned allocates a V128 at a 16-byte-aligned address, independent of
// how the Go allocator would align the surrounding object.
func NewAligned() *V128 {
	buf := make([]byte, int(unsafe.Sizeof(V128{}))+15)
	off := (16 - uintptr(unsafe.Pointer(&buf[0]))&15) & 15
	return (*V128)(unsafe.Pointer(&buf[off]))
}

func mustAligned(p *V128) {
	if uintptr(unsafe.Pointer(p))&15 != 0 {
		panic("atomic128: operand not 16-byte aligned")
	}
}

// Striped locks for the degraded mode. The stripe is picked by address, so
// distinct locations contend only on hash collisions.
const stripeCount = 64

var stripes [stripeCount]sync.Mutex

func stripeFor(p *V128) *sync.Mutex {
	idx := (uintptr(unsafe.Pointer(p)) >> 4) % stripeCount
	return &stripes[idx]
}

func loadFallback(p *V128) V128 {
	mu := stripeFor(p)
	mu.Lock()
	v := *p
	mu.Unlock()
	return v
}

func storeFallback(p *V128, v V128) {
	mu := stripeFor(p)
	mu.Lock()
	*p = v
	mu.Unlock()
}

func casFallback(p *V128, expected *V128, desired V128) bool {
	mu := stripeFor(p)
	mu.Lock()
	defer mu.Unlock()
	if *p == *expected {
		*p = desired
		return true
	}
	*expected = *p
	return false
}
