// Package geometry computes the pixel layout of the engine diagram.
package geometry

// The diagram keeps a fixed 550:350 aspect ratio.
const (
	AspectWidth  = 550.0
	AspectHeight = 350.0
)

// Fixed pixel offsets that do not scale with the canvas.
const (
	PistonInset        = 8.0
	IntakeValveOffset  = 25.0
	ExhaustValveOffset = 65.0
	SparkRadius        = 4.0
	SparkLift          = 8.0
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Layout holds every derived position and size used when drawing.
type Layout struct {
	Width  float64
	Height float64

	Cylinder     Rect
	PistonHeight float64
	PistonTop    float64
	PistonBottom float64

	ValveY        float64
	ValveRadius   float64
	IntakeValveX  float64
	ExhaustValveX float64

	CrankX      float64
	CrankY      float64
	CrankRadius float64

	Legend       Rect
	LegendRadius float64
}

// HeightFor returns the canvas height that keeps the aspect ratio for width.
func HeightFor(width float64) float64 {
	return width * AspectHeight / AspectWidth
}

// Compute derives the layout for a canvas of the given width.
func Compute(width float64) Layout {
	if width < 0 {
		width = 0
	}
	height := HeightFor(width)
	cyl := Rect{
		X: width * 0.22,
		Y: height * 0.11,
		W: width * 0.16,
		H: height * 0.71,
	}
	pistonHeight := height * 0.11
	return Layout{
		Width:         width,
		Height:        height,
		Cylinder:      cyl,
		PistonHeight:  pistonHeight,
		PistonTop:     cyl.Y,
		PistonBottom:  cyl.Y + cyl.H - pistonHeight,
		ValveY:        height * 0.11,
		ValveRadius:   width * 0.015,
		IntakeValveX:  cyl.X + IntakeValveOffset,
		ExhaustValveX: cyl.X + ExhaustValveOffset,
		CrankX:        width * 0.3,
		CrankY:        height * 0.89,
		CrankRadius:   width * 0.045,
		Legend:        Rect{X: 250, Y: 20, W: 270, H: 130},
		LegendRadius:  8,
	}
}

// PistonTravel is the distance the piston moves in one stroke.
func (l Layout) PistonTravel() float64 {
	return l.PistonBottom - l.PistonTop
}
