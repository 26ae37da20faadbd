// Package raster implements plot.Surface on an in-memory RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/verte-zerg/canvasplot/internal/plot"
	"github.com/verte-zerg/canvasplot/internal/style"
)

var black = style.MustParse("#000")

// Surface draws through a gg context. It is not safe for concurrent use.
type Surface struct {
	dc         *gg.Context
	background color.NRGBA

	stroke   color.NRGBA
	fill     color.NRGBA
	align    plot.TextAlign
	baseline plot.TextBaseline
}

// Option customizes a Surface.
type Option func(*Surface)

// WithBackground sets the color Clear paints. The default is transparent.
func WithBackground(c color.NRGBA) Option {
	return func(s *Surface) {
		s.background = c
	}
}

// WithFace replaces the default 7x13 bitmap face.
func WithFace(face font.Face) Option {
	return func(s *Surface) {
		s.dc.SetFontFace(face)
	}
}

// New returns a width x height surface.
func New(width, height int, opts ...Option) *Surface {
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineWidth(1)
	s := &Surface{dc: dc, stroke: black, fill: black}
	for _, opt := range opts {
		opt(s)
	}
	s.applyPatterns()
	return s
}

func (s *Surface) applyPatterns() {
	s.dc.SetStrokeStyle(gg.NewSolidPattern(s.stroke))
	s.dc.SetFillStyle(gg.NewSolidPattern(s.fill))
}

// Width implements plot.Surface.
func (s *Surface) Width() int {
	return s.dc.Width()
}

// Height implements plot.Surface.
func (s *Surface) Height() int {
	return s.dc.Height()
}

// Clear paints the whole image with the background color.
func (s *Surface) Clear() {
	s.dc.SetColor(s.background)
	s.dc.Clear()
	s.applyPatterns()
}

// SetStrokeColor implements plot.Surface. Unparseable styles are ignored.
func (s *Surface) SetStrokeColor(value string) {
	c, err := style.Parse(value)
	if err != nil {
		return
	}
	s.stroke = c
	s.dc.SetStrokeStyle(gg.NewSolidPattern(c))
}

// SetFillColor implements plot.Surface. Unparseable styles are ignored.
func (s *Surface) SetFillColor(value string) {
	c, err := style.Parse(value)
	if err != nil {
		return
	}
	s.fill = c
	s.dc.SetFillStyle(gg.NewSolidPattern(c))
}

// BeginPath implements plot.Surface.
func (s *Surface) BeginPath() {
	s.dc.ClearPath()
}

// MoveTo implements plot.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.dc.MoveTo(x, y)
}

// LineTo implements plot.Surface.
func (s *Surface) LineTo(x, y float64) {
	s.dc.LineTo(x, y)
}

// Stroke draws the current path and keeps it, like a canvas.
func (s *Surface) Stroke() {
	s.dc.StrokePreserve()
}

// FillRect paints an axis-aligned rectangle without touching the current path.
func (s *Surface) FillRect(x, y, w, h float64) {
	dst, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	draw.Draw(dst, r, image.NewUniform(s.fill), image.Point{}, draw.Over)
}

// SetTextAlign implements plot.Surface.
func (s *Surface) SetTextAlign(align plot.TextAlign) {
	s.align = align
}

// SetTextBaseline implements plot.Surface.
func (s *Surface) SetTextBaseline(baseline plot.TextBaseline) {
	s.baseline = baseline
}

// FillText draws text anchored at (x, y) in the fill color.
func (s *Surface) FillText(text string, x, y float64) {
	ax := 0.0
	if s.align == plot.AlignRight {
		ax = 1
	}
	ay := 0.0
	switch s.baseline {
	case plot.BaselineTop:
		ay = 1
	case plot.BaselineMiddle:
		ay = 0.5
	}
	// gg draws text with the context color, which also resets both patterns.
	s.dc.SetColor(s.fill)
	s.dc.DrawStringAnchored(text, x, y, ax, ay)
	s.applyPatterns()
}

// MeasureText implements plot.Surface.
func (s *Surface) MeasureText(text string) float64 {
	w, _ := s.dc.MeasureString(text)
	return w
}

// Image returns the backing image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the image as a PNG file.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save png: %w", err)
	}
	return nil
}

var _ plot.Surface = (*Surface)(nil)
