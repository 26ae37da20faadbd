package plot

import "math"

const (
	// bottomMargin keeps a row free under the plot for the x tick labels.
	bottomMargin    = 11
	tickLength      = 3
	legendRowHeight = 10
)

// Mapper converts data coordinates to surface pixels for one render.
type Mapper struct {
	Bounds Bounds
	// LastY is the y of the final point of the last series scanned.
	LastY float64

	minYText  string
	maxYText  string
	lastYText string

	labelWidth float64
	insetX     float64
	insetY     float64
	scaleX     float64
	scaleY     float64
}

// NewMapper scans series for bounds, applies the bound overrides in opt and
// derives the pixel scale for s. It returns ErrNoData when no series holds a
// point.
func NewMapper(s Surface, series []Series, opt *Options) (*Mapper, error) {
	if opt == nil {
		opt = &Options{}
	}
	bounds, lastY, err := Extent(series, opt)
	if err != nil {
		return nil, err
	}

	m := &Mapper{Bounds: bounds, LastY: lastY}
	if opt.YLabels != nil {
		m.minYText = opt.YLabels.Min
		m.maxYText = opt.YLabels.Max
		m.lastYText = opt.YLabels.Last
	} else {
		m.minYText = FormatValue(bounds.MinY)
		m.maxYText = FormatValue(bounds.MaxY)
		m.lastYText = FormatValue(lastY)
	}

	m.labelWidth = math.Max(s.MeasureText(m.minYText), math.Max(s.MeasureText(m.maxYText), s.MeasureText(m.lastYText)))
	for _, yl := range opt.ExtraYLabels {
		if w := s.MeasureText(yl.Text); w > m.labelWidth {
			m.labelWidth = w
		}
	}

	plotHeight := float64(s.Height()) - bottomMargin
	m.insetY = plotHeight
	m.scaleX = axisScale(float64(s.Width())-m.labelWidth, bounds.MaxX-bounds.MinX)
	m.scaleY = axisScale(plotHeight, bounds.MaxY-bounds.MinY)
	return m, nil
}

// Extent returns the bounds of series after the overrides in opt, and the
// last y value scanned.
func Extent(series []Series, opt *Options) (Bounds, float64, error) {
	bounds, lastY, ok := scanBounds(series)
	if !ok {
		return Bounds{}, 0, ErrNoData
	}
	if opt == nil {
		return bounds, lastY, nil
	}
	if opt.MinX != nil {
		bounds.MinX = *opt.MinX
	}
	if opt.MaxX != nil {
		bounds.MaxX = *opt.MaxX
	}
	if opt.MinY != nil {
		bounds.MinY = *opt.MinY
	}
	if opt.MaxY != nil {
		bounds.MaxY = *opt.MaxY
	}
	return bounds, lastY, nil
}

func scanBounds(series []Series) (Bounds, float64, bool) {
	var b Bounds
	var lastY float64
	found := false
	for _, s := range series {
		for _, p := range s.Points {
			if !found {
				b = Bounds{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
				found = true
			}
			if p.X < b.MinX {
				b.MinX = p.X
			}
			if p.X > b.MaxX {
				b.MaxX = p.X
			}
			if p.Y < b.MinY {
				b.MinY = p.Y
			}
			if p.Y > b.MaxY {
				b.MaxY = p.Y
			}
			lastY = p.Y
		}
	}
	return b, lastY, found
}

// A zero span maps one data unit to one pixel.
func axisScale(pixels, span float64) float64 {
	if span == 0 {
		return 1
	}
	return pixels / span
}

// PixelX maps a data x to a surface column.
func (m *Mapper) PixelX(x float64) float64 {
	return (x-m.Bounds.MinX)*m.scaleX + m.insetX
}

// PixelY maps a data y to a surface row. Rows grow downward.
func (m *Mapper) PixelY(y float64) float64 {
	return m.insetY - (y-m.Bounds.MinY)*m.scaleY
}

// Scale returns pixels per data unit on each axis.
func (m *Mapper) Scale() (float64, float64) {
	return m.scaleX, m.scaleY
}

// LabelWidth is the pixel width reserved right of the plot for y labels.
func (m *Mapper) LabelWidth() float64 {
	return m.labelWidth
}

// InsetX is the left pixel offset of the plot area.
func (m *Mapper) InsetX() float64 {
	return m.insetX
}
