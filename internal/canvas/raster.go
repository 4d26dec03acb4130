package canvas

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/verte-zerg/fourstroke/internal/geometry"
	"github.com/verte-zerg/fourstroke/internal/scene"
)

const defaultBackground = "#ffffff"

// Raster is a scene.Surface that draws into an image with gg.
type Raster struct {
	dc         *gg.Context
	regular    *text.FontSource
	bold       *text.FontSource
	faces      map[scene.Font]text.Face
	background string

	fill      string
	stroke    string
	lineWidth float64
	font      scene.Font
	align     scene.Align

	err error
}

var _ scene.Surface = (*Raster)(nil)

// RasterOption configures a Raster.
type RasterOption func(*rasterOptions)

type rasterOptions struct {
	fontPath   string
	background string
}

// WithFontFile uses a TTF/OTF file for all text instead of the Go fonts.
func WithFontFile(path string) RasterOption {
	return func(o *rasterOptions) { o.fontPath = path }
}

// WithBackground sets the colour used by Clear.
func WithBackground(hex string) RasterOption {
	return func(o *rasterOptions) { o.background = hex }
}

// NewRaster creates a raster surface of the given pixel width. The height
// follows the diagram's aspect ratio.
func NewRaster(width int, opts ...RasterOption) (*Raster, error) {
	if width <= 0 {
		return nil, fmt.Errorf("raster width must be > 0, got %d", width)
	}
	o := rasterOptions{background: defaultBackground}
	for _, opt := range opts {
		opt(&o)
	}
	regular, bold, err := loadFonts(o.fontPath)
	if err != nil {
		return nil, err
	}
	height := int(math.Round(geometry.HeightFor(float64(width))))
	r := &Raster{
		dc:         gg.NewContext(width, height),
		regular:    regular,
		bold:       bold,
		faces:      map[scene.Font]text.Face{},
		background: o.background,
		lineWidth:  1,
	}
	r.Clear()
	return r, nil
}

func loadFonts(path string) (*text.FontSource, *text.FontSource, error) {
	if path != "" {
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load font %s: %w", path, err)
		}
		return src, src, nil
	}
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return regular, bold, nil
}

// Close releases the drawing context and fonts.
func (r *Raster) Close() error {
	var first error
	if err := r.dc.Close(); err != nil {
		first = err
	}
	if err := r.regular.Close(); err != nil && first == nil {
		first = err
	}
	if r.bold != r.regular {
		if err := r.bold.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Err returns the first drawing error, if any.
func (r *Raster) Err() error {
	return r.err
}

func (r *Raster) record(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

// Size implements scene.Surface.
func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

// Clear implements scene.Surface.
func (r *Raster) Clear() {
	r.dc.ClearPath()
	r.dc.ClearWithColor(gg.Hex(r.background))
}

// SetFillColor implements scene.Surface.
func (r *Raster) SetFillColor(hex string) { r.fill = hex }

// SetStrokeColor implements scene.Surface.
func (r *Raster) SetStrokeColor(hex string) { r.stroke = hex }

// SetLineWidth implements scene.Surface.
func (r *Raster) SetLineWidth(width float64) { r.lineWidth = width }

// SetFont implements scene.Surface.
func (r *Raster) SetFont(font scene.Font) { r.font = font }

// SetTextAlign implements scene.Surface.
func (r *Raster) SetTextAlign(align scene.Align) { r.align = align }

// FillRect implements scene.Surface. It discards the current path.
func (r *Raster) FillRect(x, y, w, h float64) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetHexColor(r.fill)
	r.record(r.dc.Fill())
}

// BeginPath implements scene.Surface.
func (r *Raster) BeginPath() { r.dc.ClearPath() }

// MoveTo implements scene.Surface.
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }

// LineTo implements scene.Surface.
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

// QuadraticTo implements scene.Surface.
func (r *Raster) QuadraticTo(cx, cy, x, y float64) { r.dc.QuadraticTo(cx, cy, x, y) }

// ClosePath implements scene.Surface.
func (r *Raster) ClosePath() { r.dc.ClosePath() }

// Arc implements scene.Surface.
func (r *Raster) Arc(cx, cy, radius, startAngle, endAngle float64) {
	if endAngle-startAngle >= 2*math.Pi {
		r.dc.DrawCircle(cx, cy, radius)
		return
	}
	r.dc.DrawArc(cx, cy, radius, startAngle, endAngle)
}

// Fill implements scene.Surface.
func (r *Raster) Fill() {
	r.dc.SetHexColor(r.fill)
	r.record(r.dc.FillPreserve())
}

// Stroke implements scene.Surface.
func (r *Raster) Stroke() {
	r.dc.SetHexColor(r.stroke)
	r.dc.SetLineWidth(r.lineWidth)
	r.record(r.dc.StrokePreserve())
}

// FillText implements scene.Surface. y is the text baseline.
func (r *Raster) FillText(s string, x, y float64) {
	r.dc.SetFont(r.face(r.font))
	r.dc.SetHexColor(r.fill)
	switch r.align {
	case scene.AlignCenter:
		w, _ := r.dc.MeasureString(s)
		x -= w / 2
	case scene.AlignRight:
		w, _ := r.dc.MeasureString(s)
		x -= w
	}
	r.dc.DrawString(s, x, y)
}

func (r *Raster) face(font scene.Font) text.Face {
	size := font.Size
	if size <= 0 {
		size = 12
		font.Size = size
	}
	if face, ok := r.faces[font]; ok {
		return face
	}
	src := r.regular
	if font.Bold {
		src = r.bold
	}
	face := src.Face(size)
	r.faces[font] = face
	return face
}

// SavePNG writes the current image to path.
func (r *Raster) SavePNG(path string) error {
	if r.err != nil {
		return fmt.Errorf("failed to draw frame: %w", r.err)
	}
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save png: %w", err)
	}
	return nil
}

// EncodePNG writes the current image as PNG to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return fmt.Errorf("failed to draw frame: %w", r.err)
	}
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
