// Package scene draws the engine diagram for a point in the cycle.
package scene

// Align is the horizontal anchor used by FillText.
type Align int

// Text alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font selects the text size in pixels and weight.
type Font struct {
	Size float64
	Bold bool
}

// Surface is a 2D drawing target with canvas-style path operations.
// Colours are hex strings ("#rrggbb" or "#rrggbbaa"). Fill and Stroke keep
// the current path; BeginPath discards it.
type Surface interface {
	Size() (width, height float64)
	Clear()

	SetFillColor(hex string)
	SetStrokeColor(hex string)
	SetLineWidth(width float64)
	SetFont(font Font)
	SetTextAlign(align Align)

	FillRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	Arc(cx, cy, r, startAngle, endAngle float64)
	ClosePath()
	Fill()
	Stroke()

	FillText(s string, x, y float64)
}

// Label is the short stage indicator.
type Label interface {
	SetText(text string)
	SetBackground(hex string)
}

// Fact is one labeled line of an explanation.
type Fact struct {
	Label string
	Text  string
}

// Explanation is the structured text shown in the explanation panel.
type Explanation struct {
	Title string
	Facts []Fact
}

// Panel receives the explanation for the active stage.
type Panel interface {
	SetExplanation(e Explanation)
}

// RoundedRectPath replaces the current path with a rounded rectangle built
// from lines and quadratic corners.
func RoundedRectPath(s Surface, x, y, w, h, r float64) {
	s.BeginPath()
	s.MoveTo(x+r, y)
	s.LineTo(x+w-r, y)
	s.QuadraticTo(x+w, y, x+w, y+r)
	s.LineTo(x+w, y+h-r)
	s.QuadraticTo(x+w, y+h, x+w-r, y+h)
	s.LineTo(x+r, y+h)
	s.QuadraticTo(x, y+h, x, y+h-r)
	s.LineTo(x, y+r)
	s.QuadraticTo(x, y, x+r, y)
	s.ClosePath()
}

// TextLabel is a Label that only remembers what it was given.
type TextLabel struct {
	Text       string
	Background string
}

// SetText implements Label.
func (l *TextLabel) SetText(text string) { l.Text = text }

// SetBackground implements Label.
func (l *TextLabel) SetBackground(hex string) { l.Background = hex }

// TextPanel is a Panel that only remembers the last explanation.
type TextPanel struct {
	Explanation Explanation
}

// SetExplanation implements Panel.
func (p *TextPanel) SetExplanation(e Explanation) { p.Explanation = e }
