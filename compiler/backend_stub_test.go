package compiler

import "testing"

func TestStubBufferShape(t *testing.T) {
	block := buildBasicBlock(0, words(
		encRR(opA, 1, 2, 3),
		encRR(opFA, 4, 5, 6),
		encRR(opBI, 0, 0, 0),
	))

	buf, err := stubBackend{}.Compile(block)
	if err != nil {
		t.Fatalf("stub compile: %v", err)
	}
	if buf.Len() != 3*stubCodeBytes {
		t.Fatalf("stub buffer len = %d, want %d", buf.Len(), 3*stubCodeBytes)
	}
	for i, b := range buf.Bytes() {
		if b != retEncoding {
			t.Fatalf("byte %d = %#x, want return encoding", i, b)
		}
	}
}

func TestStubBufferEntryNonZero(t *testing.T) {
	block := buildBasicBlock(0, words(encRR(opBI, 0, 0, 0)))
	buf, err := stubBackend{}.Compile(block)
	if err != nil {
		t.Fatalf("stub compile: %v", err)
	}
	if buf.Entry() == 0 {
		t.Fatal("stub buffer has no entry point")
	}
}
