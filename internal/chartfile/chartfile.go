// Package chartfile loads chart documents from TOML.
package chartfile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/canvasplot/internal/plot"
)

// Chart kinds.
const (
	KindLine      = "line"
	KindMultiLine = "multiline"
	KindScatter   = "scatter"
	KindCal       = "cal"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid chart document")

// Document is a parsed chart file.
type Document struct {
	DB     string  `toml:"db"`
	Charts []Chart `toml:"chart"`

	// Dir is the directory of the loaded file; relative DB paths resolve
	// against it.
	Dir string `toml:"-"`
}

// Chart is a single [[chart]] table.
type Chart struct {
	Name    string       `toml:"name"`
	Kind    string       `toml:"kind"`
	Width   int          `toml:"width"`
	Height  int          `toml:"height"`
	XY      []float64    `toml:"xy"`
	Query   string       `toml:"query"`
	Options ChartOptions `toml:"options"`
	Series  []SeriesDef  `toml:"series"`
}

// ChartOptions mirrors plot.Options in file form.
type ChartOptions struct {
	XLabels   []string   `toml:"xlabels"`
	YLabels   []string   `toml:"ylabels"`
	YTitle    string     `toml:"ytitle"`
	MinX      *float64   `toml:"minx"`
	MaxX      *float64   `toml:"maxx"`
	MinY      *float64   `toml:"miny"`
	MaxY      *float64   `toml:"maxy"`
	Target    *float64   `toml:"target"`
	LineStyle string     `toml:"line-style"`
	VLines    []float64  `toml:"vlines"`
	Palette   []string   `toml:"palette"`
	YLabel    []LabelDef `toml:"ylabel"`
}

// LabelDef is an extra y label.
type LabelDef struct {
	Value float64 `toml:"value"`
	Text  string  `toml:"text"`
}

// SeriesDef is a [[chart.series]] table. Points come from XY or Query.
type SeriesDef struct {
	Name   string    `toml:"name"`
	Stroke string    `toml:"stroke"`
	Fill   string    `toml:"fill"`
	XY     []float64 `toml:"xy"`
	Query  string    `toml:"query"`
}

// Resolved is a validated chart with its points loaded.
type Resolved struct {
	Name    string
	Kind    string
	Width   int
	Height  int
	Points  []plot.Point
	Series  []plot.Series
	Options plot.Options
}

// PointSource runs series queries.
type PointSource interface {
	Points(ctx context.Context, query string, args ...any) ([]plot.Point, error)
}

// Load reads and validates a chart document.
func Load(path string) (*Document, error) {
	var doc Document
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalid, strings.Join(keys, ", "))
	}
	doc.Dir = filepath.Dir(path)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DBPath returns the database path, resolved against the document directory.
// It is empty when the document names no database.
func (d *Document) DBPath() string {
	if d.DB == "" || filepath.IsAbs(d.DB) {
		return d.DB
	}
	return filepath.Join(d.Dir, d.DB)
}

// NeedsDB reports whether any chart or series reads from a query.
func (d *Document) NeedsDB() bool {
	for _, c := range d.Charts {
		if c.Query != "" {
			return true
		}
		for _, s := range c.Series {
			if s.Query != "" {
				return true
			}
		}
	}
	return false
}

// Validate checks the document without loading any query.
func (d *Document) Validate() error {
	if len(d.Charts) == 0 {
		return fmt.Errorf("%w: no charts", ErrInvalid)
	}
	seen := map[string]bool{}
	for i := range d.Charts {
		c := &d.Charts[i]
		if err := c.validate(); err != nil {
			return fmt.Errorf("%w: chart %d (%q): %v", ErrInvalid, i+1, c.Name, err)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate chart name %q", ErrInvalid, c.Name)
		}
		seen[c.Name] = true
	}
	if d.NeedsDB() && d.DB == "" {
		return fmt.Errorf("%w: queries need a db path", ErrInvalid)
	}
	return nil
}

func (c *Chart) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("name must not contain path separators")
	}
	switch c.Kind {
	case KindLine, KindMultiLine, KindScatter, KindCal:
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size must be positive")
	}
	if len(c.XY)%2 != 0 {
		return fmt.Errorf("xy has an odd number of values")
	}
	if len(c.XY) > 0 && c.Query != "" {
		return fmt.Errorf("xy and query are exclusive")
	}
	if err := checkFinite(c.XY); err != nil {
		return err
	}
	if n := len(c.Options.XLabels); n != 0 && n != 2 {
		return fmt.Errorf("xlabels needs 2 values, got %d", n)
	}
	if n := len(c.Options.YLabels); n != 0 && n != 2 && n != 3 {
		return fmt.Errorf("ylabels needs 2 or 3 values, got %d", n)
	}

	if err := c.Options.checkFinite(); err != nil {
		return err
	}

	names := map[string]bool{}
	for i, s := range c.Series {
		if len(s.XY)%2 != 0 {
			return fmt.Errorf("series %d: xy has an odd number of values", i+1)
		}
		if len(s.XY) > 0 && s.Query != "" {
			return fmt.Errorf("series %d: xy and query are exclusive", i+1)
		}
		if err := checkFinite(s.XY); err != nil {
			return fmt.Errorf("series %d: %w", i+1, err)
		}
		if c.Kind == KindMultiLine {
			if s.Name == "" {
				return fmt.Errorf("series %d: name is required", i+1)
			}
			if names[s.Name] {
				return fmt.Errorf("duplicate series name %q", s.Name)
			}
			names[s.Name] = true
		}
	}

	hasOwn := len(c.XY) > 0 || c.Query != ""
	switch c.Kind {
	case KindMultiLine:
		if len(c.Series) == 0 {
			return fmt.Errorf("multiline needs series")
		}
		if hasOwn {
			return fmt.Errorf("multiline takes points from series only")
		}
	case KindCal:
		if !hasOwn {
			return fmt.Errorf("cal needs xy or query")
		}
		if len(c.Series) > 0 {
			return fmt.Errorf("cal takes no series")
		}
	default:
		if !hasOwn && len(c.Series) == 0 {
			return fmt.Errorf("needs xy, query or series")
		}
		if hasOwn && len(c.Series) > 0 {
			return fmt.Errorf("xy or query and series are exclusive")
		}
	}
	return nil
}

func (o ChartOptions) checkFinite() error {
	named := map[string]*float64{"minx": o.MinX, "maxx": o.MaxX, "miny": o.MinY, "maxy": o.MaxY, "target": o.Target}
	for name, v := range named {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%s is not finite", name)
		}
	}
	values := append([]float64(nil), o.VLines...)
	for _, l := range o.YLabel {
		values = append(values, l.Value)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("vlines and ylabel values must be finite")
		}
	}
	return nil
}

func checkFinite(xy []float64) error {
	for i, v := range xy {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("xy value %d is not finite", i+1)
		}
	}
	return nil
}

// Resolve loads every chart's points. src may be nil when no chart uses a
// query.
func (d *Document) Resolve(ctx context.Context, src PointSource) ([]Resolved, error) {
	out := make([]Resolved, 0, len(d.Charts))
	for _, c := range d.Charts {
		r, err := c.resolve(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve chart %q: %w", c.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (c Chart) resolve(ctx context.Context, src PointSource) (Resolved, error) {
	points, err := loadPoints(ctx, src, c.XY, c.Query)
	if err != nil {
		return Resolved{}, err
	}
	series := make([]plot.Series, 0, len(c.Series))
	for _, s := range c.Series {
		sp, err := loadPoints(ctx, src, s.XY, s.Query)
		if err != nil {
			return Resolved{}, fmt.Errorf("series %q: %w", s.Name, err)
		}
		series = append(series, plot.Series{
			Name:        s.Name,
			Points:      sp,
			StrokeColor: s.Stroke,
			FillColor:   s.Fill,
		})
	}
	return Resolved{
		Name:    c.Name,
		Kind:    c.Kind,
		Width:   c.Width,
		Height:  c.Height,
		Points:  points,
		Series:  series,
		Options: c.Options.toPlot(),
	}, nil
}

func loadPoints(ctx context.Context, src PointSource, xy []float64, query string) ([]plot.Point, error) {
	if query == "" {
		return plot.Flat(xy)
	}
	if src == nil {
		return nil, fmt.Errorf("query without a data source")
	}
	return src.Points(ctx, query)
}

func (o ChartOptions) toPlot() plot.Options {
	opt := plot.Options{
		YTitle:    o.YTitle,
		MinX:      o.MinX,
		MaxX:      o.MaxX,
		MinY:      o.MinY,
		MaxY:      o.MaxY,
		Target:    o.Target,
		LineStyle: o.LineStyle,
		VLines:    o.VLines,
		Palette:   o.Palette,
	}
	if len(o.XLabels) == 2 {
		opt.XLabels = &[2]string{o.XLabels[0], o.XLabels[1]}
	}
	if len(o.YLabels) >= 2 {
		labels := &plot.AxisLabels{Min: o.YLabels[0], Max: o.YLabels[1]}
		if len(o.YLabels) == 3 {
			labels.Last = o.YLabels[2]
		}
		opt.YLabels = labels
	}
	for _, l := range o.YLabel {
		opt.ExtraYLabels = append(opt.ExtraYLabels, plot.YLabel{Value: l.Value, Text: l.Text})
	}
	return opt
}
