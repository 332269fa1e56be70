package compiler

import "unsafe"

// Backend is the code generation strategy. Two implementations exist: the
// native lowering backend, available on amd64 unix hosts, and the stub
// backend, which emits a degenerate callable buffer and lets the cache,
// invalidation, and breakpoint machinery run without native support.
type Backend interface {
	Name() string
	Compile(block *BasicBlock) (*CodeBuffer, error)
}

// Backend selection values for Config.Backend.
const (
	BackendAuto   = "auto"
	BackendNative = "native"
	BackendStub   = "stub"
)

// selectBackend resolves a configured backend name. Asking for the native
// backend on a host that lacks it degrades to the stub with a warning
// rather than failing construction.
func selectBackend(name string) Backend {
	switch name {
	case "", BackendAuto:
		if nativeAvailable() {
			return newNativeBackend()
		}
		return stubBackend{}
	case BackendNative:
		if nativeAvailable() {
			return newNativeBackend()
		}
		JitDebugWarn("native backend unavailable on this host, using stub", "requested", name)
		return stubBackend{}
	default:
		return stubBackend{}
	}
}

// generate populates the block's compiled-code buffer. Lowering failures
// are absorbed by the stub path: once a block is built, code generation
// never fails outright.
func generate(block *BasicBlock, backend Backend) {
	buf, err := backend.Compile(block)
	if err != nil {
		JitDebugWarn("backend failed, falling back to stub",
			"backend", backend.Name(), "addr", block.startAddress, "err", err)
		fallbackCounter.Inc(1)
		buf, _ = stubBackend{}.Compile(block)
	}
	block.attachCode(buf)
}

// CodeBuffer owns a compiled machine-code buffer. Executable buffers live
// in an anonymous mapping and are released back to the host on invalidation
// or eviction; non-executable buffers are ordinary heap memory.
type CodeBuffer struct {
	b    []byte
	exec bool
}

func (c *CodeBuffer) Len() int { return len(c.b) }

func (c *CodeBuffer) Bytes() []byte { return c.b }

// Executable reports whether the buffer may be entered on this host.
func (c *CodeBuffer) Executable() bool { return c.exec }

// Entry returns the entry point address of the compiled code.
func (c *CodeBuffer) Entry() uintptr {
	if len(c.b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&c.b[0]))
}

// Invoke enters the compiled code with the emulated-processor state and
// local-store pointers. It reports whether the code was actually entered;
// non-executable buffers are a no-op.
func (c *CodeBuffer) Invoke(state, lstore unsafe.Pointer) bool {
	if c == nil || !c.exec {
		return false
	}
	invokeBuffer(c, state, lstore)
	return true
}

func (c *CodeBuffer) release() {
	releaseBuffer(c)
	c.b = nil
}
