package anim

// ManualClock is a Clock whose time only moves when told to.
type ManualClock struct {
	now float64
}

// Now implements Clock.
func (c *ManualClock) Now() float64 {
	return c.now
}

// Advance moves the clock forward by ms and returns the new time.
func (c *ManualClock) Advance(ms float64) float64 {
	c.now += ms
	return c.now
}

// ManualScheduler is a Scheduler that fires frames only on Step. It holds at
// most one pending frame.
type ManualScheduler struct {
	Clock *ManualClock

	next    Handle
	pending FrameFunc
	handle  Handle
	fired   int
}

// NewManualScheduler returns a scheduler driven by its own ManualClock.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{Clock: &ManualClock{}}
}

// RequestFrame implements Scheduler.
func (s *ManualScheduler) RequestFrame(fn FrameFunc) Handle {
	s.next++
	s.pending = fn
	s.handle = s.next
	return s.handle
}

// CancelFrame implements Scheduler.
func (s *ManualScheduler) CancelFrame(h Handle) {
	if s.pending != nil && h == s.handle {
		s.pending = nil
	}
}

// Pending reports whether a frame is waiting to fire.
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}

// Fired returns how many frames have been delivered.
func (s *ManualScheduler) Fired() int {
	return s.fired
}

// Step advances the clock by ms and fires the pending frame, if any.
// It reports whether a frame fired.
func (s *ManualScheduler) Step(ms float64) bool {
	ts := s.Clock.Advance(ms)
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	s.fired++
	fn(ts)
	return true
}
