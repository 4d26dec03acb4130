package scene

import (
	"fmt"
	"math"

	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/stage"
)

// Frame is everything derived from one progress value, before drawing.
type Frame struct {
	Progress float64
	Stage    stage.Descriptor
	Fraction float64

	PistonY      float64
	IntakeColor  string
	ExhaustColor string

	Spark  bool
	SparkX float64
	SparkY float64

	// CrankAngle is in radians; CrankDegrees is the unwrapped display value.
	CrankAngle   float64
	CrankDegrees int
	CrankEndX    float64
	CrankEndY    float64

	Legend      []string
	Label       string
	Explanation Explanation
}

// CrankDegrees returns the legend's crank angle for progress. The value is
// not wrapped at 360.
func CrankDegrees(progress float64) int {
	return int(math.Round(progress / stage.Count * 360))
}

// ComputeFrame derives a Frame for progress, which is wrapped into [0,4).
func ComputeFrame(loc locale.Locale, l geometry.Layout, progress float64) Frame {
	progress = stage.Normalize(progress)
	idx, fraction := stage.Split(progress)
	desc, err := stage.Lookup(loc, int(idx))
	if err != nil {
		// Unreachable: Normalize keeps the index in range.
		panic(err)
	}

	pistonY := desc.PistonPosition(l.PistonTop, l.PistonBottom, fraction)
	angle := progress / stage.Count * 2 * math.Pi

	f := Frame{
		Progress:     progress,
		Stage:        desc,
		Fraction:     fraction,
		PistonY:      pistonY,
		IntakeColor:  stage.ValveColor(desc.IntakeOpen),
		ExhaustColor: stage.ValveColor(desc.ExhaustOpen),
		Spark:        desc.SparkVisible(fraction),
		SparkX:       l.Cylinder.X + l.Cylinder.W/2,
		SparkY:       pistonY - geometry.SparkLift,
		CrankAngle:   angle,
		CrankDegrees: CrankDegrees(progress),
		CrankEndX:    l.CrankX + l.CrankRadius*math.Cos(angle),
		CrankEndY:    l.CrankY + l.CrankRadius*math.Sin(angle),
		Label:        loc.StageLabelText(int(idx)),
	}
	f.Legend = legendLines(loc, desc, f.CrankDegrees)
	f.Explanation = explanationFor(loc, desc)
	return f
}

func legendLines(loc locale.Locale, desc stage.Descriptor, degrees int) []string {
	lg := loc.Legend
	direction := lg.Up
	if desc.Motion == stage.Down {
		direction = lg.Down
	}
	return []string{
		fmt.Sprintf("%s: %s", lg.Piston, direction),
		fmt.Sprintf("%s: %s", lg.Intake, openWord(lg, desc.IntakeOpen)),
		fmt.Sprintf("%s: %s", lg.Exhaust, openWord(lg, desc.ExhaustOpen)),
		fmt.Sprintf("%s: %d°", lg.Crank, degrees),
		desc.Text.Short,
	}
}

func openWord(lg locale.LegendText, open bool) string {
	if open {
		return lg.Open
	}
	return lg.Closed
}

func explanationFor(loc locale.Locale, desc stage.Descriptor) Explanation {
	return Explanation{
		Title: desc.Text.Name,
		Facts: []Fact{
			{Label: loc.Facts.Piston, Text: desc.Text.Piston},
			{Label: loc.Facts.Valves, Text: desc.Text.Valves},
			{Label: loc.Facts.Crank, Text: desc.Text.Crank},
			{Label: loc.Facts.Effect, Text: desc.Text.Effect},
		},
	}
}
