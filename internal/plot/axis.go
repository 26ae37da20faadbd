package plot

const (
	labelColor  = "#555"
	accentColor = "#900"
	legendColor = "#000"
	markerColor = "rgba(0,0,255,0.5)"
)

// DrawAxes draws ticks, labels, the y title, extra y labels, the last value,
// the legend for legend series and the vertical markers, in that order.
func DrawAxes(s Surface, m *Mapper, opt *Options, legend []Series) {
	if opt == nil {
		opt = &Options{}
	}
	b := m.Bounds
	left := m.PixelX(b.MinX)
	right := m.PixelX(b.MaxX)
	bottom := m.PixelY(b.MinY)
	top := m.PixelY(b.MaxY)

	minXText := FormatValue(b.MinX)
	maxXText := FormatValue(b.MaxX)
	if opt.XLabels != nil {
		minXText = opt.XLabels[0]
		maxXText = opt.XLabels[1]
	}

	s.SetStrokeColor(labelColor)
	s.SetFillColor(labelColor)
	s.BeginPath()
	s.MoveTo(left, bottom)
	s.LineTo(left, bottom+tickLength)
	s.MoveTo(right, bottom)
	s.LineTo(right, bottom+tickLength)
	s.Stroke()
	s.SetTextBaseline(BaselineTop)
	s.SetTextAlign(AlignLeft)
	s.FillText(minXText, left, bottom)
	s.SetTextAlign(AlignRight)
	s.FillText(maxXText, right, bottom)

	s.BeginPath()
	s.MoveTo(right, top)
	s.LineTo(right+tickLength, top)
	s.MoveTo(right, bottom)
	s.LineTo(right+tickLength, bottom)
	s.Stroke()
	s.SetTextAlign(AlignLeft)
	s.SetTextBaseline(BaselineBottom)
	s.FillText(m.minYText, right, bottom)
	s.SetTextBaseline(BaselineTop)
	s.FillText(m.maxYText, right, top)

	if opt.YTitle != "" {
		s.SetFillColor(accentColor)
		s.SetTextAlign(AlignLeft)
		s.SetTextBaseline(BaselineMiddle)
		s.FillText(opt.YTitle, right, m.PixelY((b.MaxY+b.MinY)/2))
	}

	if len(opt.ExtraYLabels) > 0 {
		s.SetFillColor(labelColor)
		s.SetTextAlign(AlignLeft)
		s.SetTextBaseline(BaselineMiddle)
		for _, yl := range opt.ExtraYLabels {
			s.FillText(yl.Text, right, m.PixelY(yl.Value))
		}
	}

	// No collision handling against the min/max labels.
	if m.LastY != b.MinY && m.LastY != b.MaxY && m.lastYText != "" {
		s.SetFillColor(accentColor)
		s.SetTextAlign(AlignLeft)
		s.SetTextBaseline(BaselineMiddle)
		s.FillText(m.lastYText, right, m.PixelY(m.LastY))
	}

	if len(legend) > 0 {
		s.SetTextAlign(AlignLeft)
		s.SetTextBaseline(BaselineTop)
		ly := top
		for _, ds := range legend {
			if ds.Name == "" {
				continue
			}
			ly += legendRowHeight
			s.SetFillColor(legendEntryColor(ds))
			s.FillText(ds.Name, right, ly)
		}
	}

	if len(opt.VLines) > 0 {
		s.SetStrokeColor(markerColor)
		for _, vx := range opt.VLines {
			px := m.PixelX(vx)
			s.BeginPath()
			s.MoveTo(px, bottom)
			s.LineTo(px, top)
			s.Stroke()
		}
	}
}

func legendEntryColor(ds Series) string {
	switch {
	case ds.FillColor != "":
		return ds.FillColor
	case ds.StrokeColor != "":
		return ds.StrokeColor
	default:
		return legendColor
	}
}
