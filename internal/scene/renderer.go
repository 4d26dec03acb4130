package scene

import (
	"math"

	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/locale"
)

const (
	colorCylinder   = "#d1d5db"
	colorPiston     = "#4b5e73"
	colorCrank      = "#1f2937"
	colorSpark      = "#facc15"
	colorLegendFill = "#ffffffe6"

	crankLineWidth  = 2
	legendLineWidth = 1.5
	legendPadX      = 10
	legendFirstY    = 35
	legendLineStep  = 20
)

var legendFont = Font{Size: 12, Bold: true}

// Renderer draws frames onto a Surface and keeps the label and panel in
// sync with the active stage.
type Renderer struct {
	surface Surface
	label   Label
	panel   Panel
	loc     locale.Locale
	layout  geometry.Layout
	last    Frame
}

// NewRenderer constructs a renderer. The layout is computed from the
// surface's current width.
func NewRenderer(surface Surface, label Label, panel Panel, loc locale.Locale) *Renderer {
	r := &Renderer{
		surface: surface,
		label:   label,
		panel:   panel,
		loc:     loc,
	}
	r.Resize()
	return r
}

// Resize recomputes the layout from the surface width. Call it whenever
// the surface changes size, before the next Render.
func (r *Renderer) Resize() {
	width, _ := r.surface.Size()
	r.layout = geometry.Compute(width)
}

// Layout returns the current layout.
func (r *Renderer) Layout() geometry.Layout {
	return r.layout
}

// LastFrame returns the most recently rendered frame.
func (r *Renderer) LastFrame() Frame {
	return r.last
}

// Render clears the surface and draws the whole diagram for progress.
func (r *Renderer) Render(progress float64) {
	f := ComputeFrame(r.loc, r.layout, progress)
	s := r.surface
	l := r.layout

	s.Clear()

	s.SetFillColor(colorCylinder)
	s.FillRect(l.Cylinder.X, l.Cylinder.Y, l.Cylinder.W, l.Cylinder.H)

	s.SetFillColor(colorPiston)
	s.FillRect(l.Cylinder.X+geometry.PistonInset, f.PistonY, l.Cylinder.W-2*geometry.PistonInset, l.PistonHeight)

	fillCircle(s, l.IntakeValveX, l.ValveY, l.ValveRadius, f.IntakeColor)
	fillCircle(s, l.ExhaustValveX, l.ValveY, l.ValveRadius, f.ExhaustColor)

	if f.Spark {
		fillCircle(s, f.SparkX, f.SparkY, geometry.SparkRadius, colorSpark)
	}

	s.SetStrokeColor(colorCrank)
	s.SetLineWidth(crankLineWidth)
	s.BeginPath()
	s.Arc(l.CrankX, l.CrankY, l.CrankRadius, 0, 2*math.Pi)
	s.Stroke()
	s.BeginPath()
	s.MoveTo(l.CrankX, l.CrankY)
	s.LineTo(f.CrankEndX, f.CrankEndY)
	s.Stroke()

	r.drawLegend(f)

	if r.label != nil {
		r.label.SetText(f.Label)
		r.label.SetBackground(f.Stage.Color)
	}
	if r.panel != nil {
		r.panel.SetExplanation(f.Explanation)
	}
	r.last = f
}

func (r *Renderer) drawLegend(f Frame) {
	s := r.surface
	box := r.layout.Legend
	color := f.Stage.Color

	s.SetFillColor(colorLegendFill)
	RoundedRectPath(s, box.X, box.Y, box.W, box.H, r.layout.LegendRadius)
	s.Fill()
	s.SetStrokeColor(color)
	s.SetLineWidth(legendLineWidth)
	s.Stroke()

	s.SetFillColor(color)
	s.SetFont(legendFont)
	s.SetTextAlign(AlignLeft)
	y := float64(legendFirstY)
	for _, line := range f.Legend {
		s.FillText(line, box.X+legendPadX, y)
		y += legendLineStep
	}
}

func fillCircle(s Surface, x, y, radius float64, color string) {
	s.SetFillColor(color)
	s.BeginPath()
	s.Arc(x, y, radius, 0, 2*math.Pi)
	s.Fill()
}
