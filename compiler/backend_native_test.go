//go:build amd64 && (linux || darwin)

package compiler

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// spuState is a flat register file image: register r occupies the 16 bytes
// at offset 16*r, four little-endian 32-bit lanes on this host.
type spuState [registerCount * 16]byte

func (s *spuState) setLanes(reg uint8, lanes [4]uint32) {
	for i, v := range lanes {
		binary.LittleEndian.PutUint32(s[int(reg)*16+i*4:], v)
	}
}

func (s *spuState) lanes(reg uint8) [4]uint32 {
	var out [4]uint32
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(s[int(reg)*16+i*4:])
	}
	return out
}

func (s *spuState) setFloatLanes(reg uint8, lanes [4]float32) {
	var bits [4]uint32
	for i, v := range lanes {
		bits[i] = math.Float32bits(v)
	}
	s.setLanes(reg, bits)
}

func compileNative(t *testing.T, ws ...uint32) *CodeBuffer {
	t.Helper()
	j := New(Config{Backend: BackendNative})
	t.Cleanup(j.Close)

	require.NoError(t, j.Compile(0x1000, words(ws...)))
	buf := j.GetCompiled(0x1000)
	require.NotNil(t, buf)
	require.True(t, buf.Executable())
	return buf
}

func TestNativeAddWord(t *testing.T) {
	buf := compileNative(t,
		encRR(opA, 1, 2, 3),
		encRR(opBI, 0, 0, 0),
	)

	var state spuState
	state.setLanes(2, [4]uint32{1, 2, 3, 4})
	state.setLanes(3, [4]uint32{10, 20, 30, 40})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))
	require.Equal(t, [4]uint32{11, 22, 33, 44}, state.lanes(1))
}

func TestNativeSubtractFrom(t *testing.T) {
	// sf computes rb - ra.
	buf := compileNative(t,
		encRR(opSF, 1, 2, 3),
		encRR(opBI, 0, 0, 0),
	)

	var state spuState
	state.setLanes(2, [4]uint32{1, 1, 1, 1})
	state.setLanes(3, [4]uint32{10, 20, 30, 40})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))
	require.Equal(t, [4]uint32{9, 19, 29, 39}, state.lanes(1))
}

func TestNativeAddImmediate(t *testing.T) {
	buf := compileNative(t,
		encRI10(opAI, 7, 2, 5),
		encRI10(opAI, 8, 2, -1),
		encRR(opBI, 0, 0, 0),
	)

	var state spuState
	state.setLanes(2, [4]uint32{100, 200, 300, 400})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))
	require.Equal(t, [4]uint32{105, 205, 305, 405}, state.lanes(7))
	require.Equal(t, [4]uint32{99, 199, 299, 399}, state.lanes(8))
}

func TestNativeBitwise(t *testing.T) {
	// xor shares its primary class with the branch family and therefore
	// terminates the block, so it goes last.
	buf := compileNative(t,
		encRR(opAND, 1, 2, 3),
		encRR(opOR, 4, 2, 3),
		encRI10(opORI, 6, 2, 0xF),
		encRR(opXOR, 5, 2, 3),
	)

	var state spuState
	state.setLanes(2, [4]uint32{0xF0F0, 0xFF00, 0x1234, 0})
	state.setLanes(3, [4]uint32{0x0FF0, 0x00FF, 0x1234, 0})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))
	require.Equal(t, [4]uint32{0x00F0, 0x0000, 0x1234, 0}, state.lanes(1))
	require.Equal(t, [4]uint32{0xFFF0, 0xFFFF, 0x1234, 0}, state.lanes(4))
	require.Equal(t, [4]uint32{0xFF00, 0xFFFF, 0x0000, 0}, state.lanes(5))
	require.Equal(t, [4]uint32{0xF0FF, 0xFF0F, 0x123F, 0xF}, state.lanes(6))
}

func TestNativeFloatingLanes(t *testing.T) {
	buf := compileNative(t,
		encRR(opFA, 1, 2, 3),
		encRR(opFM, 4, 2, 3),
		encRR(opBI, 0, 0, 0),
	)

	var state spuState
	state.setFloatLanes(2, [4]float32{1.5, 2.5, -1, 0})
	state.setFloatLanes(3, [4]float32{0.5, 0.5, 2, 8})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))

	sum := state.lanes(1)
	require.Equal(t, math.Float32bits(2.0), sum[0])
	require.Equal(t, math.Float32bits(3.0), sum[1])
	require.Equal(t, math.Float32bits(1.0), sum[2])
	require.Equal(t, math.Float32bits(8.0), sum[3])

	prod := state.lanes(4)
	require.Equal(t, math.Float32bits(0.75), prod[0])
	require.Equal(t, math.Float32bits(1.25), prod[1])
	require.Equal(t, math.Float32bits(-2.0), prod[2])
	require.Equal(t, math.Float32bits(0.0), prod[3])
}

func TestNativeDeadStoreStillProducesFinalValue(t *testing.T) {
	// The first store to $1 is dead; the emitted code must land only the
	// second value.
	buf := compileNative(t,
		encRI10(opAI, 1, 2, 1),
		encRI10(opAI, 1, 3, 2),
		encRR(opBI, 0, 0, 0),
	)

	var state spuState
	state.setLanes(2, [4]uint32{100, 100, 100, 100})
	state.setLanes(3, [4]uint32{50, 50, 50, 50})

	require.True(t, buf.Invoke(unsafe.Pointer(&state), nil))
	require.Equal(t, [4]uint32{52, 52, 52, 52}, state.lanes(1))
}
