//go:build amd64 && (linux || darwin)

package compiler

import (
	"errors"
	"unsafe"
)

func nativeAvailable() bool { return true }

func newNativeBackend() Backend { return nativeBackend{} }

// callCode enters compiled code with the System-V argument registers
// carrying the state and local-store pointers. Implemented in assembly.
func callCode(entry uintptr, state, lstore unsafe.Pointer)

func invokeBuffer(c *CodeBuffer, state, lstore unsafe.Pointer) {
	callCode(c.Entry(), state, lstore)
}

var errBadProgram = errors.New("native lowering produced an invalid body")

// nativeBackend lowers a block to MIR, optimizes it, and emits SSE machine
// code. The register file lives in the emulated state memory: register r is
// the 16 bytes at state+16*r, so values persist across blocks. The entry
// point is a System-V function taking (state, local store) and returning
// nothing.
type nativeBackend struct{}

func (nativeBackend) Name() string { return BackendNative }

func (nativeBackend) Compile(block *BasicBlock) (*CodeBuffer, error) {
	prog := optimizeMIR(lowerBlock(block))
	code, err := emitAmd64(prog)
	if err != nil {
		return nil, err
	}
	return newExecBuffer(code)
}

// amd64 SSE opcode bytes for the packed operations, all with a 0x0F escape.
const (
	aluPADDD = 0xFE
	aluPSUBD = 0xFA
	aluPAND  = 0xDB
	aluPOR   = 0xEB
	aluPXOR  = 0xEF
	fpADDPS  = 0x58
	fpSUBPS  = 0x5C
	fpMULPS  = 0x59
)

func emitAmd64(prog []MIR) ([]byte, error) {
	if err := validateProgram(prog); err != nil {
		return nil, err
	}

	e := &amd64Emitter{}
	for i := range prog {
		m := &prog[i]
		switch m.op {
		case mirAdd:
			e.binaryRR(aluPADDD, true, m.rt, m.ra, m.rb)
		case mirSub:
			// sf computes rb - ra
			e.binaryRR(aluPSUBD, true, m.rt, m.rb, m.ra)
		case mirAnd:
			e.binaryRR(aluPAND, true, m.rt, m.ra, m.rb)
		case mirOr:
			e.binaryRR(aluPOR, true, m.rt, m.ra, m.rb)
		case mirXor:
			e.binaryRR(aluPXOR, true, m.rt, m.ra, m.rb)
		case mirFAdd:
			e.binaryRR(fpADDPS, false, m.rt, m.ra, m.rb)
		case mirFSub:
			e.binaryRR(fpSUBPS, false, m.rt, m.ra, m.rb)
		case mirFMul:
			e.binaryRR(fpMULPS, false, m.rt, m.ra, m.rb)
		case mirAddImm:
			e.loadReg(0, m.ra)
			e.splat(1, uint32(m.imm))
			e.alu(aluPADDD, true, 0, 1)
			e.storeReg(0, m.rt)
		case mirSubFromImm:
			e.splat(0, uint32(m.imm))
			e.loadReg(1, m.ra)
			e.alu(aluPSUBD, true, 0, 1)
			e.storeReg(0, m.rt)
		case mirAndImm:
			e.binaryRI(aluPAND, m.rt, m.ra, uint32(m.imm))
		case mirOrImm:
			e.binaryRI(aluPOR, m.rt, m.ra, uint32(m.imm))
		case mirXorImm:
			e.binaryRI(aluPXOR, m.rt, m.ra, uint32(m.imm))
		default:
			return nil, errBadProgram
		}
	}
	e.ret()
	return e.code, nil
}

// validateProgram is the counterpart of the reference verifier step: a body
// that fails it is discarded so the caller can fall back to the stub.
func validateProgram(prog []MIR) error {
	for i := range prog {
		m := &prog[i]
		if m.rt >= registerCount || m.ra >= registerCount || m.rb >= registerCount {
			return errBadProgram
		}
	}
	return nil
}

type amd64Emitter struct {
	code []byte
}

func (e *amd64Emitter) emit(b ...byte) {
	e.code = append(e.code, b...)
}

func (e *amd64Emitter) emitU32(v uint32) {
	e.emit(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// loadReg emits movdqu xmmN, [rdi + 16*reg].
func (e *amd64Emitter) loadReg(xmm, reg uint8) {
	e.emit(0xF3, 0x0F, 0x6F, 0x80|xmm<<3|0x07)
	e.emitU32(uint32(reg) * 16)
}

// storeReg emits movdqu [rdi + 16*reg], xmmN.
func (e *amd64Emitter) storeReg(xmm, reg uint8) {
	e.emit(0xF3, 0x0F, 0x7F, 0x80|xmm<<3|0x07)
	e.emitU32(uint32(reg) * 16)
}

// splat broadcasts a 32-bit immediate across the four lanes of xmmN:
// mov eax, imm; movd xmmN, eax; pshufd xmmN, xmmN, 0.
func (e *amd64Emitter) splat(xmm uint8, imm uint32) {
	e.emit(0xB8)
	e.emitU32(imm)
	e.emit(0x66, 0x0F, 0x6E, 0xC0|xmm<<3)
	e.emit(0x66, 0x0F, 0x70, 0xC0|xmm<<3|xmm, 0x00)
}

// alu emits a packed xmm-to-xmm operation, dst op= src. Integer forms carry
// the 0x66 operand-size prefix; single-precision forms do not.
func (e *amd64Emitter) alu(op byte, prefix66 bool, dst, src uint8) {
	if prefix66 {
		e.emit(0x66)
	}
	e.emit(0x0F, op, 0xC0|dst<<3|src)
}

func (e *amd64Emitter) binaryRR(op byte, prefix66 bool, rt, lhs, rhs uint8) {
	e.loadReg(0, lhs)
	e.loadReg(1, rhs)
	e.alu(op, prefix66, 0, 1)
	e.storeReg(0, rt)
}

func (e *amd64Emitter) binaryRI(op byte, rt, ra uint8, imm uint32) {
	e.loadReg(0, ra)
	e.splat(1, imm)
	e.alu(op, true, 0, 1)
	e.storeReg(0, rt)
}

func (e *amd64Emitter) ret() {
	e.emit(retEncoding)
}
