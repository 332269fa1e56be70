package compiler

import "fmt"

// Disassemble renders a single instruction word in SPU assembly syntax.
// Words outside the modeled subset render as raw data. Used by the gated
// debug logging and by the debugger surface of the host.
func Disassemble(word uint32) string {
	in := Decode(word)

	switch in.Op {
	case OpAI:
		return fmt.Sprintf("ai $%d,$%d,%d", in.RT, in.RA, in.SI10)
	case OpSFI:
		return fmt.Sprintf("sfi $%d,$%d,%d", in.RT, in.RA, in.SI10)
	case OpANDI:
		return fmt.Sprintf("andi $%d,$%d,%d", in.RT, in.RA, in.UI10)
	case OpORI:
		return fmt.Sprintf("ori $%d,$%d,%d", in.RT, in.RA, in.UI10)
	case OpXORI:
		return fmt.Sprintf("xori $%d,$%d,%d", in.RT, in.RA, in.UI10)
	case OpA:
		return rrString("a", in)
	case OpSF:
		return rrString("sf", in)
	case OpAND:
		return rrString("and", in)
	case OpOR:
		return rrString("or", in)
	case OpXOR:
		return rrString("xor", in)
	case OpFA:
		return rrString("fa", in)
	case OpFS:
		return rrString("fs", in)
	case OpFM:
		return rrString("fm", in)
	case OpBR:
		return fmt.Sprintf("br %d", int16(in.I16))
	case OpBRA:
		return fmt.Sprintf("bra %d", int16(in.I16))
	case OpBI:
		return fmt.Sprintf("bi $%d", in.RA)
	case OpBISL:
		return fmt.Sprintf("bisl $%d,$%d", in.RT, in.RA)
	case OpBRZ:
		return fmt.Sprintf("brz $%d,%d", in.RT, int16(in.I16))
	case OpBRNZ:
		return fmt.Sprintf("brnz $%d,%d", in.RT, int16(in.I16))
	case OpBRHZ:
		return fmt.Sprintf("brhz $%d,%d", in.RT, int16(in.I16))
	case OpBRHNZ:
		return fmt.Sprintf("brhnz $%d,%d", in.RT, int16(in.I16))
	case OpSTOP:
		return fmt.Sprintf("stop 0x%x", word&0x3FFF)
	default:
		return fmt.Sprintf(".long 0x%08x", word)
	}
}

func rrString(mnemonic string, in Instr) string {
	return fmt.Sprintf("%s $%d,$%d,$%d", mnemonic, in.RT, in.RA, in.RB)
}

// DisassembleBlock renders every instruction of a built block, one line per
// instruction, prefixed with its address.
func DisassembleBlock(b *BasicBlock) []string {
	out := make([]string, 0, b.Size())
	addr := b.startAddress
	for _, word := range b.instructions {
		out = append(out, fmt.Sprintf("0x%05x: %s", addr, Disassemble(word)))
		addr += instrWidth
	}
	return out
}
