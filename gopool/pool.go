// Package gopool provides bounded goroutine pools for background JIT work
// such as pre-compilation of hot SPU addresses.
package gopool

import (
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
)

const workerExpiry = 10 * time.Second

// Pool is a bounded goroutine pool. Each compiler instance owns one, sized
// from its configuration, so background work on one emulated core cannot
// starve another.
type Pool struct {
	inner *ants.Pool
}

// New creates a pool with at most size concurrent workers. A non-positive
// size falls back to the host CPU count.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	inner, _ := ants.NewPool(size, ants.WithExpiryDuration(workerExpiry))
	return &Pool{inner: inner}
}

// Submit schedules a task on the pool.
func (p *Pool) Submit(task func()) error {
	return p.inner.Submit(task)
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.inner.Running()
}

// Cap returns the worker capacity.
func (p *Pool) Cap() int {
	return p.inner.Cap()
}

// Free returns the number of idle worker slots.
func (p *Pool) Free() int {
	return p.inner.Free()
}

// Release shuts the pool down. Pending tasks are dropped.
func (p *Pool) Release() {
	p.inner.Release()
}
