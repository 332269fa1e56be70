//go:build !linux && !darwin

package compiler

import "errors"

var errExecUnsupported = errors.New("executable memory not supported on this host")

func newExecBuffer(code []byte) (*CodeBuffer, error) {
	return nil, errExecUnsupported
}

func releaseBuffer(c *CodeBuffer) {}
