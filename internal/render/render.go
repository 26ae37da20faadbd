// Package render draws resolved charts onto surfaces and summarizes them.
package render

import (
	"fmt"

	"github.com/verte-zerg/canvasplot/internal/chartfile"
	"github.com/verte-zerg/canvasplot/internal/plot"
)

// Defaults fills in what a chart leaves unset.
type Defaults struct {
	Width   int
	Height  int
	Palette []string
}

// Apply returns c with zero sizes and an empty palette replaced by d.
func (d Defaults) Apply(c chartfile.Resolved) chartfile.Resolved {
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if len(c.Options.Palette) == 0 && len(d.Palette) > 0 {
		c.Options.Palette = append([]string(nil), d.Palette...)
	}
	return c
}

// Draw renders c onto s with the chart function its kind names.
func Draw(s plot.Surface, c chartfile.Resolved) error {
	opt := c.Options
	var err error
	switch c.Kind {
	case chartfile.KindLine:
		opt.Data = c.Series
		err = plot.Line(s, c.Points, &opt)
	case chartfile.KindScatter:
		opt.Data = c.Series
		err = plot.Scatter(s, c.Points, &opt)
	case chartfile.KindMultiLine:
		err = plot.MultiLine(s, seriesMap(c.Series), &opt)
	case chartfile.KindCal:
		err = plot.Cal(s, c.Points, &opt)
	default:
		return fmt.Errorf("unknown chart kind %q", c.Kind)
	}
	if err != nil {
		return fmt.Errorf("failed to draw chart %q: %w", c.Name, err)
	}
	return nil
}

// Series returns the series c plots, in drawing order.
func Series(c chartfile.Resolved) []plot.Series {
	switch c.Kind {
	case chartfile.KindMultiLine:
		return plot.StyleSeries(seriesMap(c.Series), c.Options.Palette)
	case chartfile.KindCal:
		return []plot.Series{{Points: c.Points}}
	default:
		if len(c.Series) > 0 {
			return c.Series
		}
		return []plot.Series{{Points: c.Points}}
	}
}

func seriesMap(series []plot.Series) map[string]plot.Series {
	out := make(map[string]plot.Series, len(series))
	for _, s := range series {
		out[s.Name] = s
	}
	return out
}
