package atomic128

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadStoreRoundTrip(t *testing.T) {
	p := NewAligned()

	Store(p, V128{Lo: 0x1122334455667788, Hi: 0x99AABBCCDDEEFF00})
	got := Load(p)
	require.Equal(t, V128{Lo: 0x1122334455667788, Hi: 0x99AABBCCDDEEFF00}, got)
}

func TestCompareAndSwapSuccess(t *testing.T) {
	p := NewAligned()
	Store(p, V128{Lo: 1, Hi: 2})

	expected := V128{Lo: 1, Hi: 2}
	require.True(t, CompareAndSwap(p, &expected, V128{Lo: 3, Hi: 4}))
	require.Equal(t, V128{Lo: 3, Hi: 4}, Load(p))
}

func TestCompareAndSwapMismatchWritesBack(t *testing.T) {
	p := NewAligned()
	Store(p, V128{Lo: 10, Hi: 20})

	// Failure is a normal outcome: the observed value lands in expected so
	// a retry loop needs no second load.
	expected := V128{Lo: 1, Hi: 2}
	require.False(t, CompareAndSwap(p, &expected, V128{Lo: 3, Hi: 4}))
	require.Equal(t, V128{Lo: 10, Hi: 20}, expected)
	require.Equal(t, V128{Lo: 10, Hi: 20}, Load(p))
}

func TestCompareAndSwapRace(t *testing.T) {
	const (
		writers    = 8
		increments = 2000
	)

	p := NewAligned()
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				expected := Load(p)
				for {
					// Both halves move together; observing Lo != Hi
					// anywhere would be a torn read.
					if expected.Lo != expected.Hi {
						panic("torn 128-bit read")
					}
					desired := V128{Lo: expected.Lo + 1, Hi: expected.Hi + 1}
					if CompareAndSwap(p, &expected, desired) {
						break
					}
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, V128{Lo: writers * increments, Hi: writers * increments}, Load(p))
}

func TestStoreIndivisible(t *testing.T) {
	const iterations = 5000

	p := NewAligned()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < iterations; i++ {
			if i%2 == 0 {
				Store(p, V128{Lo: ^uint64(0), Hi: ^uint64(0)})
			} else {
				Store(p, V128{})
			}
		}
	}()

	for i := 0; i < iterations; i++ {
		v := Load(p)
		require.Equal(t, v.Lo, v.Hi, "torn read: %#x vs %#x", v.Lo, v.Hi)
	}
	<-done
}
