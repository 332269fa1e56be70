package compiler

// retEncoding is the x86-64 near-return opcode used to fill stub buffers so
// every byte is a valid entry point.
const retEncoding = 0xC3

// stubCodeBytes is the per-instruction buffer sizing used by the stub
// backend, matching the reference emitter's estimate.
const stubCodeBytes = 16

// stubBackend allocates a buffer sized by the block's instruction count and
// fills it with the return encoding. The result performs no emulated work
// but is a valid degenerate callable unit, which keeps the cache and
// invalidation machinery exercisable on hosts without the native backend.
type stubBackend struct{}

func (stubBackend) Name() string { return BackendStub }

func (stubBackend) Compile(block *BasicBlock) (*CodeBuffer, error) {
	code := make([]byte, block.Size()*stubCodeBytes)
	for i := range code {
		code[i] = retEncoding
	}

	// Stub code is only meaningful to enter on hosts where a return
	// encoding is a return; elsewhere keep it as plain memory.
	if nativeAvailable() {
		if buf, err := newExecBuffer(code); err == nil {
			return buf, nil
		}
	}
	return &CodeBuffer{b: code}, nil
}
