package session

import "math/rand/v2"

// CommandSource produces raw command codes. Sources are untrusted: any
// integer may be returned and CmdExit may never come.
type CommandSource interface {
	Next() int
}

// CommandSourceFunc adapts a function to CommandSource.
type CommandSourceFunc func() int

func (f CommandSourceFunc) Next() int { return f() }

// Run pulls commands from src and applies them until CmdExit. It returns the
// state the session was in when Exit arrived.
func (m *Machine) Run(src CommandSource) State {
	for {
		cmd := Command(src.Next())
		if cmd == CmdExit {
			m.logger.Debug("session loop exit", "state", m.state.String())
			return m.state
		}
		m.Apply(cmd)
	}
}

// RunCallSessionLoop runs a fresh session against src.
func RunCallSessionLoop(src CommandSource) State {
	return NewMachine().Run(src)
}

// SliceSource replays a fixed command sequence and then returns CmdExit.
type SliceSource struct {
	cmds []int
	pos  int
}

// NewSliceSource returns a source replaying cmds in order.
func NewSliceSource(cmds ...Command) *SliceSource {
	raw := make([]int, len(cmds))
	for i, c := range cmds {
		raw[i] = int(c)
	}
	return &SliceSource{cmds: raw}
}

// Next returns the next queued command, or CmdExit once the queue is drained.
func (s *SliceSource) Next() int {
	if s.pos >= len(s.cmds) {
		return int(CmdExit)
	}
	c := s.cmds[s.pos]
	s.pos++
	return c
}

// RandomSource returns uniformly distributed codes in [lo, hi] from a seeded
// generator, so a run is reproducible from its seed.
type RandomSource struct {
	rng  *rand.Rand
	lo   int
	span uint64 // number of values in [lo, hi]; 0 means every int
}

// NewRandomSource returns a source over [lo, hi]. Bounds given in the wrong
// order are swapped. Any pair of ints is accepted, including the full range.
func NewRandomSource(seed uint64, lo, hi int) *RandomSource {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &RandomSource{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		lo:   lo,
		span: uint64(hi) - uint64(lo) + 1,
	}
}

// Next draws the next code.
func (s *RandomSource) Next() int {
	var off uint64
	if s.span == 0 {
		off = s.rng.Uint64()
	} else {
		off = s.rng.Uint64N(s.span)
	}
	// Wrapping addition keeps lo+off inside [lo, hi].
	return s.lo + int(off)
}
