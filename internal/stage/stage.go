// Package stage describes the four strokes of the engine cycle.
package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/verte-zerg/fourstroke/internal/locale"
)

// Index identifies a stage of the cycle.
type Index int

// The four strokes, in cycle order.
const (
	Intake Index = iota
	Compression
	Combustion
	Exhaust
)

// Count is the number of stages in one cycle.
const Count = 4

// ErrInvalidStage is returned for indexes outside 0..3.
var ErrInvalidStage = errors.New("invalid stage")

// Motion is the direction the piston travels during a stage.
type Motion int

// Piston motions.
const (
	Down Motion = iota
	Up
)

// Stage and valve colours.
const (
	ColorIntake      = "#22c55e"
	ColorCompression = "#3b82f6"
	ColorCombustion  = "#facc15"
	ColorExhaust     = "#ef4444"

	ColorOpen   = "#22c55e"
	ColorClosed = "#ef4444"
)

// Behavior is the language-independent part of a stage.
type Behavior struct {
	Motion      Motion
	IntakeOpen  bool
	ExhaustOpen bool
	CrankFrom   int
	CrankTo     int
	Spark       bool
	Color       string
}

var table = [Count]Behavior{
	Intake:      {Motion: Down, IntakeOpen: true, CrankFrom: 0, CrankTo: 180, Color: ColorIntake},
	Compression: {Motion: Up, CrankFrom: 180, CrankTo: 360, Color: ColorCompression},
	Combustion:  {Motion: Down, CrankFrom: 360, CrankTo: 540, Spark: true, Color: ColorCombustion},
	Exhaust:     {Motion: Up, ExhaustOpen: true, CrankFrom: 540, CrankTo: 720, Color: ColorExhaust},
}

// Descriptor combines a stage's behaviour with its localized text.
type Descriptor struct {
	Index Index
	Behavior
	Text locale.StageText
}

// Valid reports whether i names one of the four stages.
func (i Index) Valid() bool {
	return i >= 0 && i < Count
}

// BehaviorOf returns the behaviour row for i.
func BehaviorOf(i Index) (Behavior, error) {
	if !i.Valid() {
		return Behavior{}, fmt.Errorf("%w: %d", ErrInvalidStage, int(i))
	}
	return table[i], nil
}

// Lookup returns the descriptor for stage index i in the given locale.
func Lookup(loc locale.Locale, i int) (Descriptor, error) {
	idx := Index(i)
	b, err := BehaviorOf(idx)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Index: idx, Behavior: b, Text: loc.Stages[i]}, nil
}

// Split breaks a cycle progress value in [0,4) into the stage index and the
// fraction of that stage already elapsed.
func Split(progress float64) (Index, float64) {
	whole := math.Floor(progress)
	return Index(whole), progress - whole
}

// SparkVisible reports whether the spark is drawn at this point of the stage.
// The spark only fires during the first half of a sparking stage.
func (b Behavior) SparkVisible(fraction float64) bool {
	return b.Spark && fraction < 0.5
}

// PistonPosition interpolates the piston's vertical position between top
// and bottom for the given stage fraction.
func (b Behavior) PistonPosition(top, bottom, fraction float64) float64 {
	travel := bottom - top
	if b.Motion == Down {
		return top + travel*fraction
	}
	return bottom - travel*fraction
}

// ValveColor returns the fill colour for a valve in the given state.
func ValveColor(open bool) string {
	if open {
		return ColorOpen
	}
	return ColorClosed
}

// Normalize wraps any progress value into [0,4).
func Normalize(progress float64) float64 {
	if progress >= 0 && progress < Count {
		return progress
	}
	p := math.Mod(progress, Count)
	if p < 0 {
		p += Count
	}
	if p >= Count {
		p = 0
	}
	return p
}
