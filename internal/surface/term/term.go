// Package term implements plot.Surface as a grid of braille cells. Every cell
// holds 2x4 dots, so a cols x rows grid is a (2*cols) x (4*rows) pixel surface.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/canvasplot/internal/plot"
	"github.com/verte-zerg/canvasplot/internal/style"
)

const (
	dotsPerCol = 2
	dotsPerRow = 4
)

type cell struct {
	mask      uint8
	dotColor  string
	text      rune
	textColor string
	// cont marks the right half of a double-width rune.
	cont bool
}

type point struct {
	x, y float64
}

// Surface is a braille canvas. It is not safe for concurrent use.
type Surface struct {
	cols  int
	rows  int
	cells [][]cell

	stroke   string
	fill     string
	align    plot.TextAlign
	baseline plot.TextBaseline
	path     [][]point
}

// New returns a surface of cols x rows terminal cells.
func New(cols, rows int) *Surface {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := &Surface{cols: cols, rows: rows}
	s.cells = makeCells(rows, cols)
	return s
}

func makeCells(rows, cols int) [][]cell {
	cells := make([][]cell, rows)
	for y := 0; y < rows; y++ {
		cells[y] = make([]cell, cols)
	}
	return cells
}

// Width implements plot.Surface.
func (s *Surface) Width() int {
	return s.cols * dotsPerCol
}

// Height implements plot.Surface.
func (s *Surface) Height() int {
	return s.rows * dotsPerRow
}

// Clear implements plot.Surface.
func (s *Surface) Clear() {
	s.cells = makeCells(s.rows, s.cols)
}

// SetStrokeColor implements plot.Surface. Unparseable styles are ignored.
func (s *Surface) SetStrokeColor(value string) {
	if c, err := style.Parse(value); err == nil {
		s.stroke = style.Hex(c)
	}
}

// SetFillColor implements plot.Surface. Unparseable styles are ignored.
func (s *Surface) SetFillColor(value string) {
	if c, err := style.Parse(value); err == nil {
		s.fill = style.Hex(c)
	}
}

// BeginPath implements plot.Surface.
func (s *Surface) BeginPath() {
	s.path = nil
}

// MoveTo implements plot.Surface.
func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, []point{{x: x, y: y}})
}

// LineTo implements plot.Surface.
func (s *Surface) LineTo(x, y float64) {
	if len(s.path) == 0 {
		s.MoveTo(x, y)
		return
	}
	last := len(s.path) - 1
	s.path[last] = append(s.path[last], point{x: x, y: y})
}

// Stroke rasterizes every segment of the current path.
func (s *Surface) Stroke() {
	for _, sub := range s.path {
		for i := 1; i < len(sub); i++ {
			a, b, ok := s.clip(sub[i-1], sub[i])
			if !ok {
				continue
			}
			x0, y0 := dot(a)
			x1, y1 := dot(b)
			drawLine(x0, y0, x1, y1, func(x, y int) {
				s.setDot(x, y, s.stroke)
			})
		}
	}
}

// FillRect sets every dot the rectangle covers.
func (s *Surface) FillRect(x, y, w, h float64) {
	if !finite(x) || !finite(y) || !finite(w) || !finite(h) {
		return
	}
	x0 := int(math.Max(0, math.Floor(x)))
	y0 := int(math.Max(0, math.Floor(y)))
	x1 := int(math.Min(float64(s.Width()), math.Ceil(x+w)))
	y1 := int(math.Min(float64(s.Height()), math.Ceil(y+h)))
	for dy := y0; dy < y1; dy++ {
		for dx := x0; dx < x1; dx++ {
			s.setDot(dx, dy, s.fill)
		}
	}
}

// SetTextAlign implements plot.Surface.
func (s *Surface) SetTextAlign(align plot.TextAlign) {
	s.align = align
}

// SetTextBaseline implements plot.Surface.
func (s *Surface) SetTextBaseline(baseline plot.TextBaseline) {
	s.baseline = baseline
}

// FillText writes text into whole cells, replacing any dots there.
func (s *Surface) FillText(text string, x, y float64) {
	var row int
	switch s.baseline {
	case plot.BaselineTop:
		row = int(math.Ceil(y / dotsPerRow))
	case plot.BaselineBottom:
		row = int(math.Ceil(y/dotsPerRow)) - 1
	default:
		row = int(math.Floor(y / dotsPerRow))
	}
	if row < 0 || row >= s.rows {
		return
	}
	col := int(math.Floor(x / dotsPerCol))
	if s.align == plot.AlignRight {
		col = int(math.Round(x/dotsPerCol)) - runewidth.StringWidth(text)
	}
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= 0 && col+rw <= s.cols {
			s.cells[row][col] = cell{text: r, textColor: s.fill}
			if rw == 2 {
				s.cells[row][col+1] = cell{cont: true}
			}
		}
		col += rw
	}
}

// MeasureText returns the display width of text in dots.
func (s *Surface) MeasureText(text string) float64 {
	return float64(runewidth.StringWidth(text) * dotsPerCol)
}

func (s *Surface) setDot(x, y int, color string) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / dotsPerRow
	cellX := x / dotsPerCol
	if cellY >= s.rows || cellX >= s.cols {
		return
	}
	c := &s.cells[cellY][cellX]
	if c.text != 0 || c.cont {
		return
	}
	c.mask |= brailleDotMask(x%dotsPerCol, y%dotsPerRow)
	c.dotColor = color
}

// Render returns the grid as lines of text. Cells are colored through r when
// it is non-nil.
func (s *Surface) Render(r *lipgloss.Renderer) string {
	styles := map[string]lipgloss.Style{}
	paint := func(color string, text string) string {
		if r == nil || color == "" {
			return text
		}
		st, ok := styles[color]
		if !ok {
			st = r.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = st
		}
		return st.Render(text)
	}

	lines := make([]string, 0, s.rows)
	for y := 0; y < s.rows; y++ {
		var row strings.Builder
		for x := 0; x < s.cols; x++ {
			c := s.cells[y][x]
			switch {
			case c.cont:
				continue
			case c.text != 0:
				row.WriteString(paint(c.textColor, string(c.text)))
			default:
				row.WriteString(paint(c.dotColor, string(brailleFromMask(c.mask))))
			}
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

// clip trims the segment a-b to the dot grid with Liang-Barsky. It reports
// false when nothing of the segment is on the grid or an end is not finite.
func (s *Surface) clip(a, b point) (point, point, bool) {
	if !finite(a.x) || !finite(a.y) || !finite(b.x) || !finite(b.y) {
		return a, b, false
	}
	maxX := float64(s.Width() - 1)
	maxY := float64(s.Height() - 1)
	dx := b.x - a.x
	dy := b.y - a.y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.x},
		{dx, maxX - a.x},
		{-dy, a.y},
		{dy, maxY - a.y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return point{x: a.x + t0*dx, y: a.y + t0*dy}, point{x: a.x + t1*dx, y: a.y + t1*dy}, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func dot(p point) (int, int) {
	return int(math.Round(p.x)), int(math.Round(p.y))
}

func drawLine(x0, y0, x1, y1 int, set func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

var _ plot.Surface = (*Surface)(nil)
