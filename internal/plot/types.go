package plot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNoData is returned when there is no point to derive bounds from.
var ErrNoData = errors.New("no data points")

// Point is a single (x, y) sample in data space.
type Point struct {
	X float64
	Y float64
}

// Series is an ordered run of points with optional display attributes.
type Series struct {
	Name        string
	Points      []Point
	StrokeColor string
	FillColor   string
}

// Bounds is the axis-aligned box around the plotted points.
type Bounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// YLabel places text at a data y value on the right edge.
type YLabel struct {
	Value float64
	Text  string
}

// AxisLabels replaces the computed y-axis text.
type AxisLabels struct {
	Min  string
	Max  string
	Last string
}

// Options configures a single chart render. The zero value draws with defaults.
type Options struct {
	// XLabels replaces the min/max x text when non-nil.
	XLabels *[2]string
	// YLabels replaces the min/max/last y text when non-nil. An empty Last
	// hides the last-value annotation.
	YLabels      *AxisLabels
	ExtraYLabels []YLabel
	YTitle       string

	MinX *float64
	MaxX *float64
	MinY *float64
	MaxY *float64

	// Target draws a horizontal reference line on Cal charts.
	Target *float64
	// LineStyle is the tick color on Cal charts.
	LineStyle string

	// Data holds styled datasets for Line and Scatter and feeds the legend.
	Data []Series
	// VLines lists x values that get a full height marker line.
	VLines []float64
	// Palette is the color cycle for unstyled MultiLine series.
	Palette []string
}

// Float returns a pointer to v, for the optional bound fields of Options.
func Float(v float64) *float64 {
	return &v
}

// Flat converts alternating x, y scalars into points. A trailing odd value is
// an error.
func Flat(xy []float64) ([]Point, error) {
	if len(xy)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates: %d", len(xy))
	}
	points := make([]Point, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		points = append(points, Point{X: xy[i], Y: xy[i+1]})
	}
	return points, nil
}

// DefaultPalette returns a fresh copy of the default series color cycle.
func DefaultPalette() []string {
	return []string{"#900", "#00b", "#aa0", "#0aa", "#444"}
}

// FormatValue renders a number as its shortest decimal text.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
