package compiler

// registerCount is the size of the SPU general-purpose register file.
const registerCount = 128

// MIR is the register-based intermediate representation the native backend
// consumes. Each operation addresses the 128-slot virtual register file of
// 4x32-bit lanes that mirrors the SPU's uniform wide-register model.
type MIR struct {
	op  mirOp
	rt  uint8
	ra  uint8
	rb  uint8
	imm int32
	pc  uint32
}

type mirOp uint8

const (
	mirNop mirOp = iota

	// word lanes
	mirAdd        // rt = ra + rb
	mirSub        // rt = rb - ra
	mirAddImm     // rt = ra + imm
	mirSubFromImm // rt = imm - ra

	// bitwise lanes
	mirAnd    // rt = ra & rb
	mirOr     // rt = ra | rb
	mirXor    // rt = ra ^ rb
	mirAndImm // rt = ra & imm
	mirOrImm  // rt = ra | imm
	mirXorImm // rt = ra ^ imm

	// single-precision lanes
	mirFAdd // rt = ra + rb
	mirFSub // rt = ra - rb
	mirFMul // rt = ra * rb
)

// dest returns the written register, if any.
func (m *MIR) dest() (uint8, bool) {
	if m.op == mirNop {
		return 0, false
	}
	return m.rt, true
}

// sources appends the read registers to dst and returns it.
func (m *MIR) sources(dst []uint8) []uint8 {
	switch m.op {
	case mirNop:
	case mirAddImm, mirSubFromImm, mirAndImm, mirOrImm, mirXorImm:
		dst = append(dst, m.ra)
	default:
		dst = append(dst, m.ra, m.rb)
	}
	return dst
}
