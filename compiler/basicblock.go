package compiler

import "encoding/binary"

// instrWidth is the fixed SPU instruction width in bytes.
const instrWidth = 4

// BasicBlock is a straight-line run of SPU instructions with one entry and
// one exit. It is immutable after construction except for the compiled-code
// buffer, which the backend populates exactly once. The block owns that
// buffer exclusively; releasing the block releases the buffer.
type BasicBlock struct {
	startAddress uint32
	endAddress   uint32 // exclusive, one past the terminator
	instructions []uint32

	code     *CodeBuffer
	codeSize int
}

func (b *BasicBlock) StartAddress() uint32 { return b.startAddress }

func (b *BasicBlock) EndAddress() uint32 { return b.endAddress }

// Instructions returns the decoded big-endian words in program order.
func (b *BasicBlock) Instructions() []uint32 { return b.instructions }

func (b *BasicBlock) Size() int { return len(b.instructions) }

// CodeSize is the byte size of the compiled buffer, zero until a backend
// has run.
func (b *BasicBlock) CodeSize() int { return b.codeSize }

// Code returns the compiled-code buffer, nil until a backend has run.
func (b *BasicBlock) Code() *CodeBuffer { return b.code }

func (b *BasicBlock) attachCode(buf *CodeBuffer) {
	b.code = buf
	b.codeSize = buf.Len()
}

// release frees the compiled-code buffer. The block must not be used for
// execution afterwards.
func (b *BasicBlock) release() {
	if b.code != nil {
		b.code.release()
		b.code = nil
	}
}

// buildBasicBlock scans code in 4-byte strides from start, byte-swapping
// each big-endian word, and stops immediately after the first terminator.
// A trailing partial instruction is dropped rather than decoded. Exhausting
// the buffer without seeing a terminator is a valid outcome: it means the
// caller supplied a code window shorter than one control-flow unit.
func buildBasicBlock(start uint32, code []byte) *BasicBlock {
	block := &BasicBlock{
		startAddress: start,
		endAddress:   start,
	}

	for offset := 0; offset+instrWidth <= len(code); offset += instrWidth {
		word := binary.BigEndian.Uint32(code[offset:])
		block.instructions = append(block.instructions, word)
		block.endAddress = start + uint32(offset) + instrWidth

		if IsTerminator(word) {
			break
		}
	}
	return block
}
