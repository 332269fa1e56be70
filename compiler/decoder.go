package compiler

// The SPU front end deals in 32-bit big-endian words. Opcode bits live at
// the top of the word: a 4-bit primary class, an 11-bit secondary opcode,
// and an 8-bit opcode for the RI10 immediate forms (the low three bits of
// the 11-bit field overlap the immediate there). Operand fields are seven
// bits wide at fixed offsets.

// Opcode identifies the decoded instruction class. Every 32-bit word maps
// to some Opcode; words outside the modeled subset decode to OpUnknown and
// lower to a no-op.
type Opcode uint8

const (
	OpUnknown Opcode = iota

	// RI10 immediate forms
	OpAI   // add word immediate
	OpSFI  // subtract from word immediate
	OpANDI // and word immediate
	OpORI  // or word immediate
	OpXORI // xor word immediate

	// RR forms
	OpA   // add word
	OpSF  // subtract from word
	OpAND // and
	OpOR  // or
	OpXOR // xor
	OpFA  // floating add
	OpFS  // floating subtract
	OpFM  // floating multiply

	// Control transfer
	OpBR    // relative branch family (br, brsl)
	OpBRA   // absolute branch family (bra, brasl)
	OpBI    // branch indirect (including return through $lr)
	OpBISL  // branch indirect and set link
	OpBRZ   // branch if zero word
	OpBRNZ  // branch if not zero word
	OpBRHZ  // branch if zero halfword
	OpBRHNZ // branch if not zero halfword
	OpSTOP  // stop and signal
)

// 11-bit secondary opcode values, word >> 21.
const (
	opA     = 0b00011000000
	opSF    = 0b00001000000
	opAND   = 0b00011000001
	opOR    = 0b00001000001
	opXOR   = 0b01001000001
	opFA    = 0b01011000100
	opFS    = 0b01011000101
	opFM    = 0b01011000110
	opBI    = 0b00110101000
	opBISL  = 0b00110101001
	opBRZ   = 0b00100000000
	opBRNZ  = 0b00100001000
	opBRHZ  = 0b00100010000
	opBRHNZ = 0b00100011000
)

// 8-bit RI10 opcode values, word >> 24.
const (
	opAI   = 0x1C
	opSFI  = 0x0C
	opANDI = 0x14
	opORI  = 0x04
	opXORI = 0x44
)

// Primary-class values of the branch-and-link terminator family.
const (
	op4BranchRel = 0b0100
	op4BranchAbs = 0b1100
)

// Instr is a fully decoded instruction word. Decoding is a pure, total
// function: there is no failure mode, only OpUnknown.
type Instr struct {
	Word uint32
	Op   Opcode

	RT, RA, RB, RC uint8

	SI10 int32  // sign-extended 10-bit immediate
	UI10 uint32 // zero-extended 10-bit immediate, used by the bitwise forms
	I16  uint16
}

// Decode classifies a byte-order-normalized instruction word and extracts
// its operand fields.
func Decode(word uint32) Instr {
	in := Instr{
		Word: word,
		Op:   classify(word),
		RT:   uint8(word & 0x7F),
		RA:   uint8((word >> 7) & 0x7F),
		RB:   uint8((word >> 14) & 0x7F),
		RC:   uint8((word >> 21) & 0x7F),
		UI10: (word >> 14) & 0x3FF,
		I16:  uint16((word >> 7) & 0xFFFF),
	}
	in.SI10 = signExtend10(in.UI10)
	return in
}

func classify(word uint32) Opcode {
	op11 := word >> 21

	// stop has an all-zero secondary opcode and a zero channel field
	if op11 == 0 && (word>>18)&0x7 == 0 {
		return OpSTOP
	}

	switch op11 {
	case opA:
		return OpA
	case opSF:
		return OpSF
	case opAND:
		return OpAND
	case opOR:
		return OpOR
	case opXOR:
		return OpXOR
	case opFA:
		return OpFA
	case opFS:
		return OpFS
	case opFM:
		return OpFM
	case opBI:
		return OpBI
	case opBISL:
		return OpBISL
	case opBRZ:
		return OpBRZ
	case opBRNZ:
		return OpBRNZ
	case opBRHZ:
		return OpBRHZ
	case opBRHNZ:
		return OpBRHNZ
	}

	switch word >> 24 {
	case opAI:
		return OpAI
	case opSFI:
		return OpSFI
	case opANDI:
		return OpANDI
	case opORI:
		return OpORI
	case opXORI:
		return OpXORI
	}

	switch word >> 28 {
	case op4BranchRel:
		return OpBR
	case op4BranchAbs:
		return OpBRA
	}

	return OpUnknown
}

// IsTerminator reports whether the word ends a basic block. The three
// terminator families are the relative/absolute branch-and-link forms,
// the indirect and conditional register branches, and the stop encoding.
func IsTerminator(word uint32) bool {
	op4 := word >> 28
	if op4 == op4BranchRel || op4 == op4BranchAbs {
		return true
	}

	switch word >> 21 {
	case opBI, opBISL, opBRZ, opBRNZ, opBRHZ, opBRHNZ:
		return true
	case 0:
		return (word>>18)&0x7 == 0
	}
	return false
}

func signExtend10(v uint32) int32 {
	if v&0x200 != 0 {
		v |= ^uint32(0x3FF)
	}
	return int32(v)
}
