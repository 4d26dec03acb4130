// Package anim drives the cycle progress from frame callbacks.
package anim

import (
	"github.com/verte-zerg/fourstroke/internal/stage"
)

// CycleDuration is the length of one full cycle in milliseconds.
const CycleDuration = 8000.0

// StageDuration is the length of one stage in milliseconds.
const StageDuration = CycleDuration / stage.Count

// Handle identifies a scheduled frame.
type Handle uint64

// FrameFunc is called with the frame timestamp in milliseconds.
type FrameFunc func(timestamp float64)

// Scheduler runs a callback before the next frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) Handle
	CancelFrame(h Handle)
}

// Clock returns a monotonically non-decreasing timestamp in milliseconds,
// in the same units as the scheduler's timestamps.
type Clock interface {
	Now() float64
}

// Renderer draws the scene for a progress value.
type Renderer interface {
	Render(progress float64)
}

// State is the complete animation state.
type State struct {
	Running       bool
	LastTimestamp float64
	HasLast       bool
	Progress      float64
	Handle        Handle
	HasHandle     bool
}

// Driver owns the play/pause/reset state machine.
type Driver struct {
	state    State
	sched    Scheduler
	clock    Clock
	renderer Renderer
	cycle    float64
}

// Option configures a Driver.
type Option func(*Driver)

// WithCycleDuration overrides the cycle length in milliseconds.
func WithCycleDuration(ms float64) Option {
	return func(d *Driver) {
		if ms > 0 {
			d.cycle = ms
		}
	}
}

// New creates an idle driver at progress 0.
func New(sched Scheduler, clock Clock, renderer Renderer, opts ...Option) *Driver {
	d := &Driver{
		sched:    sched,
		clock:    clock,
		renderer: renderer,
		cycle:    CycleDuration,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns a copy of the current state.
func (d *Driver) State() State {
	return d.state
}

// Running reports whether the animation is playing.
func (d *Driver) Running() bool {
	return d.state.Running
}

// Progress returns the current cycle progress in [0,4).
func (d *Driver) Progress() float64 {
	return d.state.Progress
}

// Start begins playback from the current progress. The first tick runs
// immediately with zero elapsed time.
func (d *Driver) Start() {
	if d.state.Running {
		return
	}
	d.state.Running = true
	d.state.HasLast = false
	d.Tick(d.clock.Now())
}

// Tick advances progress by the time elapsed since the previous tick,
// renders, and schedules the next frame. It does nothing when paused.
func (d *Driver) Tick(timestamp float64) {
	if !d.state.Running {
		return
	}
	d.state.HasHandle = false
	if !d.state.HasLast {
		d.state.LastTimestamp = timestamp
		d.state.HasLast = true
	}
	elapsed := timestamp - d.state.LastTimestamp
	d.state.LastTimestamp = timestamp

	d.state.Progress = Advance(d.state.Progress, elapsed, d.cycle)
	d.renderer.Render(d.state.Progress)

	d.state.Handle = d.sched.RequestFrame(d.Tick)
	d.state.HasHandle = true
}

// Pause stops playback and cancels the pending frame.
func (d *Driver) Pause() {
	d.state.Running = false
	if d.state.HasHandle {
		d.sched.CancelFrame(d.state.Handle)
		d.state.HasHandle = false
	}
}

// Reset pauses, rewinds to progress 0 and renders once.
func (d *Driver) Reset() {
	d.Pause()
	d.state.Progress = 0
	d.renderer.Render(0)
}

// Toggle starts a paused driver and pauses a running one.
func (d *Driver) Toggle() {
	if d.state.Running {
		d.Pause()
		return
	}
	d.Start()
}

// Redraw renders the current progress without advancing it.
func (d *Driver) Redraw() {
	d.renderer.Render(d.state.Progress)
}

// Advance moves progress forward by elapsed milliseconds of a cycle that
// lasts cycle milliseconds, wrapping into [0,4).
func Advance(progress, elapsed, cycle float64) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	progress += elapsed / cycle * stage.Count
	if progress >= stage.Count {
		progress -= stage.Count
	}
	return stage.Normalize(progress)
}
