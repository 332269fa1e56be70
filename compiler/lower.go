package compiler

// lowerBlock translates a built basic block into MIR, one operation per
// instruction word. Instructions outside the modeled subset, including the
// terminator families, lower to a no-op; opcode coverage grows here without
// touching the rest of the pipeline.
func lowerBlock(b *BasicBlock) []MIR {
	prog := make([]MIR, 0, b.Size())
	pc := b.startAddress
	for _, word := range b.instructions {
		prog = append(prog, lowerInstr(Decode(word), pc))
		pc += instrWidth
	}
	return prog
}

func lowerInstr(in Instr, pc uint32) MIR {
	m := MIR{rt: in.RT, ra: in.RA, rb: in.RB, pc: pc}

	switch in.Op {
	case OpAI:
		m.op = mirAddImm
		m.imm = in.SI10
	case OpSFI:
		m.op = mirSubFromImm
		m.imm = in.SI10
	case OpANDI:
		m.op = mirAndImm
		m.imm = int32(in.UI10)
	case OpORI:
		m.op = mirOrImm
		m.imm = int32(in.UI10)
	case OpXORI:
		m.op = mirXorImm
		m.imm = int32(in.UI10)
	case OpA:
		m.op = mirAdd
	case OpSF:
		m.op = mirSub
	case OpAND:
		m.op = mirAnd
	case OpOR:
		m.op = mirOr
	case OpXOR:
		m.op = mirXor
	case OpFA:
		m.op = mirFAdd
	case OpFS:
		m.op = mirFSub
	case OpFM:
		m.op = mirFMul
	default:
		m.op = mirNop
	}
	return m
}
