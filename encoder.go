package imgselect

// PositionSource exposes the free-running count of a quadrature encoder.
// Increasing counts are forward rotation. Only differences between reads are
// used, so the count may wrap.
type PositionSource interface {
	Position() int32
}

// Step is the motion decoded from one encoder delta.
type Step int

const (
	NoStep Step = iota
	Forward
	Backward
)

func (s Step) String() string {
	switch s {
	case NoStep:
		return "none"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// StepFor decodes a delta. A delta of -1, 0 or 1 is edge jitter and yields
// NoStep; anything larger is exactly one step regardless of magnitude.
func StepFor(delta int32) Step {
	switch {
	case delta > 1:
		return Forward
	case delta < -1:
		return Backward
	default:
		return NoStep
	}
}

// scanEncoder compares the position against the last acted-upon position.
// The reference only moves when a step is taken, so motion below the
// threshold accumulates across ticks.
func (s *Selector) scanEncoder() {
	pos := s.enc.Position()
	delta := pos - s.last

	switch StepFor(delta) {
	case Forward:
		s.log.Info("rotate forward", "delta", delta)
		s.last = pos
		s.set((s.index + 1) % ImageCount)
	case Backward:
		s.log.Info("rotate backward", "delta", delta)
		s.last = pos
		s.set((s.index + ImageCount - 1) % ImageCount)
	}
}
