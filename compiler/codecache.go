package compiler

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// CodeCache is a bounded, address-keyed store of compiled blocks. It owns
// the resident blocks' code buffers: whatever leaves the cache, by explicit
// invalidation, replacement, eviction, or clear, has its buffer released on
// the way out. Inserting past the byte budget evicts least-recently-used
// blocks until the total fits again; recency is refreshed on lookup hits,
// so hot addresses stay resident.
type CodeCache struct {
	mu        sync.Mutex
	blocks    *simplelru.LRU
	totalSize uint64
	maxSize   uint64
}

func newCodeCache(maxSize uint64) *CodeCache {
	c := &CodeCache{maxSize: maxSize}

	// Entry bound for the recency list; the byte budget below is the real
	// limit, this only has to be unreachable before it.
	entryCap := int(maxSize / instrWidth)
	if entryCap < 1 {
		entryCap = 1
	}
	c.blocks, _ = simplelru.NewLRU(entryCap, func(key, value interface{}) {
		block := value.(*BasicBlock)
		c.totalSize -= uint64(block.codeSize)
		block.release()
	})
	return c
}

// Find returns the resident block at address, or nil.
func (c *CodeCache) Find(address uint32) *BasicBlock {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.blocks.Get(address); ok {
		return v.(*BasicBlock)
	}
	return nil
}

// Insert takes ownership of the block, replacing any prior entry at the
// same address, and enforces the byte budget.
func (c *CodeCache) Insert(address uint32, block *BasicBlock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Replace, not merge: the prior entry's buffer goes away first.
	c.blocks.Remove(address)

	c.blocks.Add(address, block)
	c.totalSize += uint64(block.codeSize)

	for c.totalSize > c.maxSize && c.blocks.Len() > 1 {
		c.blocks.RemoveOldest()
		cacheEvictCounter.Inc(1)
	}
}

// Invalidate releases the entry at address; no-op when absent.
func (c *CodeCache) Invalidate(address uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks.Remove(address)
}

// Clear releases every resident block and resets the running total.
func (c *CodeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks.Purge()
}

func (c *CodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks.Len()
}

// TotalSize is the running byte total of resident compiled code.
func (c *CodeCache) TotalSize() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSize
}

func (c *CodeCache) MaxSize() uint64 { return c.maxSize }
