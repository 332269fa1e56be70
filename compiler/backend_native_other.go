//go:build !amd64 || (!linux && !darwin)

package compiler

import "unsafe"

func nativeAvailable() bool { return false }

func newNativeBackend() Backend { return stubBackend{} }

func invokeBuffer(c *CodeBuffer, state, lstore unsafe.Pointer) {}
