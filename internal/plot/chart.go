package plot

import (
	"math"
	"sort"
)

const (
	defaultStroke   = "#000"
	defaultFill     = "#000"
	defaultCalStyle = "red"
	targetColor     = "#090"
	markerSize      = 3
)

// Line strokes xy as one connected path, or each of opt.Data in its own
// stroke color when datasets are given.
func Line(s Surface, xy []Point, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	datasets := datasetsOrFlat(xy, opt)
	m, err := NewMapper(s, datasets, opt)
	if err != nil {
		return err
	}
	s.Clear()
	for _, ds := range datasets {
		s.SetStrokeColor(orDefault(ds.StrokeColor, defaultStroke))
		strokePath(s, m, ds.Points)
	}
	DrawAxes(s, m, opt, opt.Data)
	return nil
}

// MultiLine strokes every series of data as its own path. Series are drawn
// in name order; unstyled ones take the next color of the palette.
func MultiLine(s Surface, data map[string]Series, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	series := StyleSeries(data, opt.Palette)
	m, err := NewMapper(s, series, opt)
	if err != nil {
		return err
	}
	s.Clear()
	for _, ds := range series {
		s.SetStrokeColor(ds.StrokeColor)
		strokePath(s, m, ds.Points)
	}
	DrawAxes(s, m, opt, series)
	return nil
}

// Scatter draws a 3x3 square centered on every point.
func Scatter(s Surface, xy []Point, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	datasets := datasetsOrFlat(xy, opt)
	m, err := NewMapper(s, datasets, opt)
	if err != nil {
		return err
	}
	s.Clear()
	for _, ds := range datasets {
		s.SetStrokeColor(orDefault(ds.StrokeColor, defaultStroke))
		s.SetFillColor(orDefault(ds.FillColor, defaultFill))
		for _, p := range ds.Points {
			s.FillRect(m.PixelX(p.X)-1, m.PixelY(p.Y)-1, markerSize, markerSize)
		}
	}
	s.SetStrokeColor(defaultStroke)
	s.SetFillColor(defaultFill)
	DrawAxes(s, m, opt, opt.Data)
	return nil
}

// Cal draws a vertical tick from the bottom of the plot up to every point,
// after an optional horizontal target line.
func Cal(s Surface, xy []Point, opt *Options) error {
	if opt == nil {
		opt = &Options{}
	}
	m, err := NewMapper(s, []Series{{Points: xy}}, opt)
	if err != nil {
		return err
	}
	s.Clear()
	if opt.Target != nil {
		ty := m.PixelY(*opt.Target)
		s.SetStrokeColor(targetColor)
		s.BeginPath()
		s.MoveTo(m.PixelX(m.Bounds.MinX), ty)
		s.LineTo(m.PixelX(m.Bounds.MaxX), ty)
		s.Stroke()
	}
	s.SetStrokeColor(orDefault(opt.LineStyle, defaultCalStyle))
	base := m.PixelY(m.Bounds.MinY)
	s.BeginPath()
	for _, p := range xy {
		// Whole columns keep the ticks crisp.
		tx := math.Floor(m.PixelX(p.X))
		s.MoveTo(tx, base)
		s.LineTo(tx, m.PixelY(p.Y))
	}
	s.Stroke()
	DrawAxes(s, m, opt, opt.Data)
	return nil
}

func datasetsOrFlat(xy []Point, opt *Options) []Series {
	if len(opt.Data) > 0 {
		return opt.Data
	}
	return []Series{{Points: xy}}
}

// StyleSeries orders data by name and gives every unstyled series the next
// palette color. Unnamed series take their map key as name.
func StyleSeries(data map[string]Series, palette []string) []Series {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Series, 0, len(names))
	next := 0
	for _, name := range names {
		ds := data[name]
		if ds.Name == "" {
			ds.Name = name
		}
		if ds.StrokeColor == "" {
			ds.StrokeColor = palette[next]
			next = (next + 1) % len(palette)
		}
		out = append(out, ds)
	}
	return out
}

func strokePath(s Surface, m *Mapper, points []Point) {
	if len(points) == 0 {
		return
	}
	s.BeginPath()
	s.MoveTo(m.PixelX(points[0].X), m.PixelY(points[0].Y))
	for _, p := range points[1:] {
		s.LineTo(m.PixelX(p.X), m.PixelY(p.Y))
	}
	s.Stroke()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
