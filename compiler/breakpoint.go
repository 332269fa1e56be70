package compiler

// BreakpointSet records addresses flagged for debugger interception.
// Membership is independent of cache residency: a breakpoint can exist at
// an address with no compiled block and vice versa. Cache invalidation on
// insertion is the owning instance's job, not the set's.
type BreakpointSet struct {
	addrs map[uint32]struct{}
}

func newBreakpointSet() *BreakpointSet {
	return &BreakpointSet{addrs: make(map[uint32]struct{})}
}

func (s *BreakpointSet) Add(address uint32) {
	s.addrs[address] = struct{}{}
}

func (s *BreakpointSet) Remove(address uint32) {
	delete(s.addrs, address)
}

func (s *BreakpointSet) Has(address uint32) bool {
	_, ok := s.addrs[address]
	return ok
}

func (s *BreakpointSet) Clear() {
	s.addrs = make(map[uint32]struct{})
}

func (s *BreakpointSet) Len() int { return len(s.addrs) }
