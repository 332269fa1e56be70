//go:build linux || darwin

package compiler

import "golang.org/x/sys/unix"

// newExecBuffer copies code into an anonymous mapping and remaps it
// read-execute. The returned buffer owns the mapping.
func newExecBuffer(code []byte) (*CodeBuffer, error) {
	mem, err := unix.Mmap(-1, 0, len(code),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, err
	}
	return &CodeBuffer{b: mem, exec: true}, nil
}

func releaseBuffer(c *CodeBuffer) {
	if c.exec && c.b != nil {
		_ = unix.Munmap(c.b)
	}
}
