// Package compiler implements the just-in-time translation engine for the
// Cell SPU: big-endian 32-bit instruction streams are cut into basic
// blocks, lowered through a register-based intermediate representation, and
// emitted as host machine code held in a byte-budgeted, address-keyed code
// cache with debugger breakpoint support.
package compiler

import (
	"errors"
	"sync"

	"github.com/darkace1998/oxidized-cell/gopool"
)

// DefaultCacheSize is the default code cache byte budget.
const DefaultCacheSize = 64 << 20

var (
	// ErrInvalidInput rejects nil instances, closed instances, and code
	// windows shorter than one instruction. No state is mutated.
	ErrInvalidInput = errors.New("spu jit: invalid input")
	// ErrDisabled rejects compilation while the instance is suspended;
	// cached state is untouched so a host can fall back to interpretation
	// and resume later.
	ErrDisabled = errors.New("spu jit: compilation disabled")
)

// Config carries construction-time options for a compiler instance.
type Config struct {
	// CacheSize is the code cache byte budget; DefaultCacheSize when zero.
	CacheSize uint64
	// Backend selects the code generation strategy: BackendAuto (default),
	// BackendNative, or BackendStub.
	Backend string
	// Workers bounds the background pre-compilation pool; host CPU count
	// when zero.
	Workers int
}

// SPUJit is one compiler instance: one code cache, one breakpoint set, an
// enabled flag gating compilation, and a background pool. Exactly one
// instance serves one emulated core context; instances share nothing.
//
// Mutations on the same instance are serialized by an internal mutex, which
// also covers the background pool's compiles.
type SPUJit struct {
	mu          sync.Mutex
	cache       *CodeCache
	breakpoints *BreakpointSet
	backend     Backend
	pool        *gopool.Pool
	enabled     bool
	closed      bool
}

// New creates an enabled compiler instance.
func New(cfg Config) *SPUJit {
	size := cfg.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	j := &SPUJit{
		cache:       newCodeCache(size),
		breakpoints: newBreakpointSet(),
		backend:     selectBackend(cfg.Backend),
		pool:        gopool.New(cfg.Workers),
		enabled:     true,
	}
	JitDebugInfo("spu jit created", "backend", j.backend.Name(), "cacheSize", size)
	return j
}

// Close releases every cached block's code buffer and shuts the instance
// down. Safe on a nil instance and idempotent.
func (j *SPUJit) Close() {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.closed = true
	j.pool.Release()
	j.cache.Clear()
	j.breakpoints.Clear()
}

// Compile builds, lowers, and caches the basic block starting at address.
// An already compiled address is a success, not a recompilation: the
// resident block is never mutated. Code must hold at least one full
// instruction; a trailing partial instruction is dropped.
func (j *SPUJit) Compile(address uint32, code []byte) error {
	if j == nil || len(code) < instrWidth {
		return ErrInvalidInput
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.compileLocked(address, code)
}

func (j *SPUJit) compileLocked(address uint32, code []byte) error {
	if j.closed {
		return ErrInvalidInput
	}
	if !j.enabled {
		return ErrDisabled
	}
	if j.cache.Find(address) != nil {
		return nil
	}

	block := buildBasicBlock(address, code)
	generate(block, j.backend)
	j.cache.Insert(address, block)
	compiledCounter.Inc(1)

	if shouldLog() {
		JitDebugInfo("compiled spu block",
			"addr", block.startAddress, "end", block.endAddress,
			"instructions", block.Size(), "codeSize", block.codeSize,
			"backend", j.backend.Name())
	}
	return nil
}

// CompileQueued schedules Compile on the instance's background pool, for
// pre-warming addresses the execution thread is expected to reach. Errors
// are absorbed: a queued miss simply leaves the address uncompiled.
func (j *SPUJit) CompileQueued(address uint32, code []byte) {
	if j == nil || len(code) < instrWidth {
		return
	}
	dup := append([]byte(nil), code...)
	err := j.pool.Submit(func() {
		if err := j.Compile(address, dup); err != nil {
			JitDebugWarn("queued compile rejected", "addr", address, "err", err)
		}
	})
	if err != nil {
		JitDebugWarn("queued compile not scheduled", "addr", address, "err", err)
	}
}

// GetCompiled returns the compiled-code handle cached at address, or nil.
func (j *SPUJit) GetCompiled(address uint32) *CodeBuffer {
	if j == nil {
		return nil
	}
	block := j.cache.Find(address)
	if block == nil {
		cacheMissCounter.Inc(1)
		return nil
	}
	cacheHitCounter.Inc(1)
	return block.code
}

// Invalidate evicts and releases the one entry at address; no-op if absent.
func (j *SPUJit) Invalidate(address uint32) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cache.Invalidate(address)
	invalidatedCounter.Inc(1)
}

// ClearCache evicts and releases everything.
func (j *SPUJit) ClearCache() {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cache.Clear()
}

// AddBreakpoint records the address and unconditionally invalidates any
// cached block there, so execution cannot continue in stale, uninstrumented
// compiled code.
func (j *SPUJit) AddBreakpoint(address uint32) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.breakpoints.Add(address)
	j.cache.Invalidate(address)
	invalidatedCounter.Inc(1)
}

// RemoveBreakpoint only removes the record; the address stays uncompiled
// until next requested.
func (j *SPUJit) RemoveBreakpoint(address uint32) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.breakpoints.Remove(address)
}

// HasBreakpoint is a pure membership query.
func (j *SPUJit) HasBreakpoint(address uint32) bool {
	if j == nil {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.breakpoints.Has(address)
}

// Enable resumes compilation after Disable.
func (j *SPUJit) Enable() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.enabled = true
}

// Disable suspends compilation without destroying cached state, for hosts
// that fall back to pure interpretation.
func (j *SPUJit) Disable() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.enabled = false
}

func (j *SPUJit) Enabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enabled
}

// CacheLen returns the number of resident compiled blocks.
func (j *SPUJit) CacheLen() int { return j.cache.Len() }

// CacheSize returns the running byte total of resident compiled code.
func (j *SPUJit) CacheSize() uint64 { return j.cache.TotalSize() }
