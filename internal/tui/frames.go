package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fourstroke/internal/anim"
)

// frameMsg delivers a scheduled animation frame.
type frameMsg struct {
	handle anim.Handle
	at     time.Time
}

// frameScheduler adapts tea.Tick to anim.Scheduler and anim.Clock.
// Timestamps are milliseconds since the scheduler was created. A cancelled
// frame still arrives as a message but is dropped because its handle no
// longer matches.
type frameScheduler struct {
	epoch    time.Time
	interval time.Duration
	now      func() time.Time

	next    anim.Handle
	handle  anim.Handle
	pending anim.FrameFunc
	cmd     tea.Cmd
}

func newFrameScheduler(fps int) *frameScheduler {
	if fps <= 0 {
		fps = defaultFPS
	}
	return &frameScheduler{
		epoch:    time.Now(),
		interval: time.Second / time.Duration(fps),
		now:      time.Now,
	}
}

// RequestFrame implements anim.Scheduler.
func (s *frameScheduler) RequestFrame(fn anim.FrameFunc) anim.Handle {
	s.next++
	h := s.next
	s.handle = h
	s.pending = fn
	s.cmd = tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return frameMsg{handle: h, at: t}
	})
	return h
}

// CancelFrame implements anim.Scheduler.
func (s *frameScheduler) CancelFrame(h anim.Handle) {
	if h != s.handle {
		return
	}
	s.pending = nil
	s.cmd = nil
}

// Now implements anim.Clock.
func (s *frameScheduler) Now() float64 {
	return s.millis(s.now())
}

func (s *frameScheduler) millis(t time.Time) float64 {
	return float64(t.Sub(s.epoch)) / float64(time.Millisecond)
}

// deliver runs the pending callback if msg belongs to it.
func (s *frameScheduler) deliver(msg frameMsg) bool {
	if s.pending == nil || msg.handle != s.handle {
		return false
	}
	fn := s.pending
	s.pending = nil
	fn(s.millis(msg.at))
	return true
}

// takeCmd returns the tick command for the most recent request, once.
func (s *frameScheduler) takeCmd() tea.Cmd {
	cmd := s.cmd
	s.cmd = nil
	return cmd
}
