// Package canvas provides drawing surfaces for the engine diagram.
package canvas

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/scene"
)

const curveSegments = 8

// Cell is one terminal character cell.
type Cell struct {
	Rune rune
	FG   string
	BG   string
}

type point struct {
	x, y float64
}

type subpath struct {
	points []point
	closed bool
}

// Grid is a scene.Surface backed by a grid of terminal cells. The grid
// covers a logical pixel canvas; every cell samples the shapes at its
// centre.
type Grid struct {
	cols   int
	rows   int
	width  float64
	height float64
	cells  []Cell

	fill      string
	stroke    string
	lineWidth float64
	font      scene.Font
	align     scene.Align

	paths []subpath
}

var _ scene.Surface = (*Grid)(nil)

// NewGrid creates a grid of cols×rows cells covering a canvas of the given
// logical width. The canvas height follows the diagram's aspect ratio.
func NewGrid(cols, rows int, width float64) *Grid {
	g := &Grid{}
	g.Resize(cols, rows, width)
	return g
}

// Resize changes the cell count and logical width and clears the grid.
func (g *Grid) Resize(cols, rows int, width float64) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g.cols = cols
	g.rows = rows
	g.width = width
	g.height = geometry.HeightFor(width)
	g.cells = make([]Cell, cols*rows)
	g.Clear()
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// At returns the cell at col, row.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return Cell{}
	}
	return g.cells[row*g.cols+col]
}

// Size implements scene.Surface.
func (g *Grid) Size() (float64, float64) {
	return g.width, g.height
}

// Clear implements scene.Surface.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
	g.paths = nil
}

// SetFillColor implements scene.Surface.
func (g *Grid) SetFillColor(hex string) { g.fill = hex }

// SetStrokeColor implements scene.Surface.
func (g *Grid) SetStrokeColor(hex string) { g.stroke = hex }

// SetLineWidth implements scene.Surface. Strokes are always one cell wide.
func (g *Grid) SetLineWidth(width float64) { g.lineWidth = width }

// SetFont implements scene.Surface. Text is always one cell per column.
func (g *Grid) SetFont(font scene.Font) { g.font = font }

// SetTextAlign implements scene.Surface.
func (g *Grid) SetTextAlign(align scene.Align) { g.align = align }

func (g *Grid) cellSize() (float64, float64) {
	return g.width / float64(g.cols), g.height / float64(g.rows)
}

// FillRect implements scene.Surface.
func (g *Grid) FillRect(x, y, w, h float64) {
	poly := []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	g.fillPolygons([][]point{poly}, g.fill)
}

// BeginPath implements scene.Surface.
func (g *Grid) BeginPath() {
	g.paths = nil
}

// MoveTo implements scene.Surface.
func (g *Grid) MoveTo(x, y float64) {
	g.paths = append(g.paths, subpath{points: []point{{x, y}}})
}

// LineTo implements scene.Surface.
func (g *Grid) LineTo(x, y float64) {
	if len(g.paths) == 0 || g.current().closed {
		g.MoveTo(x, y)
		return
	}
	sp := g.current()
	sp.points = append(sp.points, point{x, y})
}

// QuadraticTo implements scene.Surface.
func (g *Grid) QuadraticTo(cx, cy, x, y float64) {
	if len(g.paths) == 0 || g.current().closed {
		g.MoveTo(cx, cy)
	}
	sp := g.current()
	start := sp.points[len(sp.points)-1]
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		mt := 1 - t
		sp.points = append(sp.points, point{
			x: mt*mt*start.x + 2*mt*t*cx + t*t*x,
			y: mt*mt*start.y + 2*mt*t*cy + t*t*y,
		})
	}
}

// Arc implements scene.Surface. Angles are in radians, clockwise on screen.
func (g *Grid) Arc(cx, cy, r, startAngle, endAngle float64) {
	for endAngle < startAngle {
		endAngle += 2 * math.Pi
	}
	sweep := endAngle - startAngle
	n := int(math.Ceil(sweep / (math.Pi / 16)))
	if n < curveSegments {
		n = curveSegments
	}
	first := point{cx + r*math.Cos(startAngle), cy + r*math.Sin(startAngle)}
	if len(g.paths) == 0 || g.current().closed {
		g.MoveTo(first.x, first.y)
	} else {
		g.LineTo(first.x, first.y)
	}
	sp := g.current()
	for i := 1; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		sp.points = append(sp.points, point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
}

// ClosePath implements scene.Surface.
func (g *Grid) ClosePath() {
	if len(g.paths) == 0 {
		return
	}
	g.current().closed = true
}

func (g *Grid) current() *subpath {
	return &g.paths[len(g.paths)-1]
}

// Fill implements scene.Surface.
func (g *Grid) Fill() {
	polys := make([][]point, 0, len(g.paths))
	for _, sp := range g.paths {
		if len(sp.points) >= 3 {
			polys = append(polys, sp.points)
		}
	}
	g.fillPolygons(polys, g.fill)
}

// Stroke implements scene.Surface.
func (g *Grid) Stroke() {
	for _, sp := range g.paths {
		pts := sp.points
		for i := 1; i < len(pts); i++ {
			g.strokeSegment(pts[i-1], pts[i])
		}
		if sp.closed && len(pts) > 2 {
			g.strokeSegment(pts[len(pts)-1], pts[0])
		}
	}
}

// FillText implements scene.Surface. y is the text baseline.
func (g *Grid) FillText(s string, x, y float64) {
	cw, ch := g.cellSize()
	size := g.font.Size
	if size <= 0 {
		size = ch
	}
	row := int(math.Floor((y - size*0.35) / ch))
	if row < 0 || row >= g.rows {
		return
	}
	col := int(math.Floor(x / cw))
	width := runewidth.StringWidth(s)
	switch g.align {
	case scene.AlignCenter:
		col -= width / 2
	case scene.AlignRight:
		col -= width
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= g.cols {
			idx := row*g.cols + col
			g.cells[idx].Rune = r
			g.cells[idx].FG = g.fill
			for k := 1; k < w; k++ {
				g.cells[idx+k].Rune = 0
			}
		}
		col += w
	}
}

func (g *Grid) fillPolygons(polys [][]point, color string) {
	if len(polys) == 0 {
		return
	}
	cw, ch := g.cellSize()
	minX, minY, maxX, maxY := bounds(polys)
	painted := false
	rowFrom := clampInt(int(math.Floor(minY/ch)), 0, g.rows-1)
	rowTo := clampInt(int(math.Ceil(maxY/ch)), 0, g.rows-1)
	for row := rowFrom; row <= rowTo; row++ {
		cy := (float64(row) + 0.5) * ch
		xs := crossings(polys, cy)
		for i := 0; i+1 < len(xs); i += 2 {
			colFrom := clampInt(int(math.Ceil(xs[i]/cw-0.5)), 0, g.cols)
			colTo := clampInt(int(math.Floor(xs[i+1]/cw-0.5)), -1, g.cols-1)
			for col := colFrom; col <= colTo; col++ {
				g.paint(col, row, color)
				painted = true
			}
		}
	}
	if !painted {
		// Shapes smaller than a cell still mark the cell they sit in.
		col := int(math.Floor((minX + maxX) / 2 / cw))
		row := int(math.Floor((minY + maxY) / 2 / ch))
		g.paint(col, row, color)
	}
}

func (g *Grid) strokeSegment(a, b point) {
	cw, ch := g.cellSize()
	steps := int(math.Ceil(math.Max(math.Abs(b.x-a.x)/cw, math.Abs(b.y-a.y)/ch)*2)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := a.x + (b.x-a.x)*t
		y := a.y + (b.y-a.y)*t
		g.paint(int(math.Floor(x/cw)), int(math.Floor(y/ch)), g.stroke)
	}
}

func (g *Grid) paint(col, row int, color string) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row*g.cols+col] = Cell{Rune: ' ', BG: color}
}

// crossings returns the sorted x positions where the horizontal line at y
// crosses the polygon edges (even-odd rule).
func crossings(polys [][]point, y float64) []float64 {
	var xs []float64
	for _, poly := range polys {
		n := len(poly)
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if (a.y <= y) == (b.y <= y) {
				continue
			}
			xs = append(xs, a.x+(y-a.y)*(b.x-a.x)/(b.y-a.y))
		}
	}
	sort.Float64s(xs)
	return xs
}

func bounds(polys [][]point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.x)
			minY = math.Min(minY, p.y)
			maxX = math.Max(maxX, p.x)
			maxY = math.Max(maxY, p.y)
		}
	}
	return minX, minY, maxX, maxY
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// String renders the grid as plain text: letters as-is, filled cells as
// shade characters chosen by colour brightness.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			switch {
			case cell.Rune == 0:
			case cell.Rune != ' ':
				b.WriteRune(cell.Rune)
			case cell.BG != "":
				b.WriteRune(Shade(cell.BG))
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// Render renders the grid with lipgloss colours, one line per row.
func (g *Grid) Render() string {
	lines := make([]string, g.rows)
	for row := 0; row < g.rows; row++ {
		var b strings.Builder
		var run strings.Builder
		var runFG, runBG string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cellStyle(runFG, runBG).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			if cell.Rune == 0 {
				continue
			}
			if cell.FG != runFG || cell.BG != runBG {
				flush()
				runFG, runBG = cell.FG, cell.BG
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(fg, bg string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg != "" {
		style = style.Foreground(lipgloss.Color(opaque(fg))).Bold(true)
	}
	if bg != "" {
		style = style.Background(lipgloss.Color(opaque(bg)))
	}
	return style
}

// opaque drops the alpha component of a #rrggbbaa colour.
func opaque(hex string) string {
	if len(hex) == 9 && hex[0] == '#' {
		return hex[:7]
	}
	return hex
}

// Shade maps a colour to a block character by perceived brightness.
func Shade(hex string) rune {
	l := luminance(hex)
	switch {
	case l >= 0.9:
		return ' '
	case l >= 0.6:
		return '░'
	case l >= 0.35:
		return '▒'
	case l >= 0.15:
		return '▓'
	default:
		return '█'
	}
}

func luminance(hex string) float64 {
	hex = strings.TrimPrefix(opaque(hex), "#")
	if len(hex) != 6 {
		return 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0
	}
	r := float64((v>>16)&0xff) / 255
	gr := float64((v>>8)&0xff) / 255
	b := float64(v&0xff) / 255
	return 0.299*r + 0.587*gr + 0.114*b
}
