package compiler

// optimizeMIR runs the block-local pipeline: no-op pruning followed by
// dead-store elimination. The register file persists in SPU state memory
// across blocks, so a store is dead only when a later operation in the same
// block overwrites the register without reading it first.
func optimizeMIR(prog []MIR) []MIR {
	prog = pruneNops(prog)
	return eliminateDeadStores(prog)
}

func pruneNops(prog []MIR) []MIR {
	out := prog[:0]
	for _, m := range prog {
		if m.op != mirNop {
			out = append(out, m)
		}
	}
	return out
}

func eliminateDeadStores(prog []MIR) []MIR {
	var overwritten [registerCount]bool
	keep := make([]bool, len(prog))
	var srcs []uint8

	for i := len(prog) - 1; i >= 0; i-- {
		m := &prog[i]
		rt, writes := m.dest()
		if writes && overwritten[rt] {
			continue
		}
		keep[i] = true
		if writes {
			overwritten[rt] = true
		}
		srcs = m.sources(srcs[:0])
		for _, r := range srcs {
			overwritten[r] = false
		}
	}

	out := prog[:0]
	for i, m := range prog {
		if keep[i] {
			out = append(out, m)
		}
	}
	return out
}
