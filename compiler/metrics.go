package compiler

import "github.com/ethereum/go-ethereum/metrics"

var (
	compiledCounter    = metrics.NewRegisteredCounter("spu/jit/compiled", nil)
	fallbackCounter    = metrics.NewRegisteredCounter("spu/jit/fallback", nil)
	cacheHitCounter    = metrics.NewRegisteredCounter("spu/jit/cache/hit", nil)
	cacheMissCounter   = metrics.NewRegisteredCounter("spu/jit/cache/miss", nil)
	cacheEvictCounter  = metrics.NewRegisteredCounter("spu/jit/cache/evict", nil)
	invalidatedCounter = metrics.NewRegisteredCounter("spu/jit/invalidated", nil)
)
