package canvas

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/scene"
)

func TestGridFillRectCoversCellCentres(t *testing.T) {
	g := NewGrid(10, 5, 100)
	_, h := g.Size()
	g.SetFillColor("#000000")
	g.FillRect(0, 0, 50, h)
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			filled := g.At(col, row).BG != ""
			if filled != (col < 5) {
				t.Fatalf("cell %d,%d filled=%v", col, row, filled)
			}
		}
	}
}

func TestGridTinyShapeStillMarksCell(t *testing.T) {
	g := NewGrid(10, 5, 100)
	g.SetFillColor("#22c55e")
	g.BeginPath()
	g.Arc(33, 20, 1, 0, 2*math.Pi)
	g.Fill()
	if got := g.At(3, 1).BG; got != "#22c55e" {
		t.Fatalf("expected tiny circle to mark cell 3,1, got %q", got)
	}
}

func TestGridStrokeHorizontalLine(t *testing.T) {
	g := NewGrid(10, 5, 100)
	g.SetStrokeColor("#1f2937")
	g.BeginPath()
	g.MoveTo(5, 30)
	g.LineTo(95, 30)
	g.Stroke()
	row := int(30 / (g.height / 5))
	for col := 0; col < 10; col++ {
		if g.At(col, row).BG != "#1f2937" {
			t.Fatalf("expected stroke at %d,%d", col, row)
		}
	}
}

func TestGridFillTextAlignment(t *testing.T) {
	g := NewGrid(20, 5, 200)
	g.SetFillColor("#ef4444")
	g.SetFont(scene.Font{Size: 12})
	g.SetTextAlign(scene.AlignLeft)
	g.FillText("abc", 50, 30)
	if g.At(5, 1).Rune != 'a' || g.At(7, 1).Rune != 'c' {
		t.Fatalf("left aligned text misplaced: %q", g.String())
	}
	if g.At(5, 1).FG != "#ef4444" {
		t.Fatalf("text should use fill colour")
	}

	g.Clear()
	g.SetTextAlign(scene.AlignRight)
	g.FillText("abc", 50, 30)
	if g.At(2, 1).Rune != 'a' || g.At(4, 1).Rune != 'c' {
		t.Fatalf("right aligned text misplaced: %q", g.String())
	}
}

func TestGridClearResetsCells(t *testing.T) {
	g := NewGrid(4, 2, 40)
	g.SetFillColor("#000000")
	g.FillRect(0, 0, 40, 40)
	g.Clear()
	if strings.TrimSpace(g.String()) != "" {
		t.Fatalf("expected blank grid after clear, got %q", g.String())
	}
}

func TestShade(t *testing.T) {
	cases := map[string]rune{
		"#ffffff":   ' ',
		"#ffffffe6": ' ',
		"#d1d5db":   '░',
		"#4b5e73":   '▒',
		"#1f2937":   '▓',
		"#000000":   '█',
	}
	for hex, want := range cases {
		if got := Shade(hex); got != want {
			t.Fatalf("Shade(%s) = %q, want %q", hex, got, want)
		}
	}
}

func TestGridRendersDiagram(t *testing.T) {
	g := NewGrid(80, 25, 560)
	r := scene.NewRenderer(g, nil, nil, locale.MustGet("en"))
	r.Render(0)

	out := g.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 25 {
		t.Fatalf("expected 25 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 80 {
			t.Fatalf("line %d has %d runes", i, n)
		}
	}
	for _, want := range []string{"Piston: Down", "Intake: Open", "Exhaust: Closed", "Crankshaft: 0°", "Draws in the mixture."} {
		if !strings.Contains(out, want) {
			t.Fatalf("diagram missing %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, '░') || !strings.ContainsRune(out, '▒') {
		t.Fatalf("expected cylinder and piston shading:\n%s", out)
	}
	if styled := g.Render(); len(strings.Split(styled, "\n")) != 25 {
		t.Fatalf("styled render should keep row count")
	}
}
