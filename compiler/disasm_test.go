package compiler

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	cases := []struct {
		word uint32
		want string
	}{
		{encRR(opA, 1, 2, 3), "a $1,$2,$3"},
		{encRR(opSF, 4, 5, 6), "sf $4,$5,$6"},
		{encRR(opFM, 7, 8, 9), "fm $7,$8,$9"},
		{encRI10(opAI, 1, 2, -3), "ai $1,$2,-3"},
		{encRI10(opANDI, 1, 2, 0xFF), "andi $1,$2,255"},
		{encRR(opBI, 0, 5, 0), "bi $5"},
		{0x00000000, "stop 0x0"},
	}
	for _, c := range cases {
		if got := Disassemble(c.word); got != c.want {
			t.Errorf("Disassemble(%#08x) = %q, want %q", c.word, got, c.want)
		}
	}
}

func TestDisassembleUnknown(t *testing.T) {
	got := Disassemble(0x7FFF0000)
	if !strings.HasPrefix(got, ".long") {
		t.Errorf("unknown word rendered as %q, want raw data", got)
	}
}

func TestDisassembleBlock(t *testing.T) {
	block := buildBasicBlock(0x1000, words(
		encRR(opA, 1, 2, 3),
		encRR(opBI, 0, 0, 0),
	))
	lines := DisassembleBlock(block)
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0x01000:") {
		t.Errorf("first line %q lacks address prefix", lines[0])
	}
}
