package plot

import (
	"errors"
	"reflect"
	"testing"
)

func TestLineStrokesSinglePath(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Line(s, scenarioPoints(), nil); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if len(s.calls) == 0 || s.calls[0].op != "clear" {
		t.Fatalf("expected clear before drawing, got %+v", s.calls)
	}
	strokes := s.ops("stroke")
	if len(strokes) < 1 {
		t.Fatalf("expected a stroked path")
	}
	want := [][]Point{{{X: 0, Y: 39}, {X: 50, Y: 0}, {X: 100, Y: 39}}}
	if !reflect.DeepEqual(strokes[0].path, want) {
		t.Fatalf("unexpected line path: %+v", strokes[0].path)
	}
	if strokes[0].style != defaultStroke {
		t.Fatalf("expected stroke %q, got %q", defaultStroke, strokes[0].style)
	}
}

func TestLineStrokesEachDataset(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{Data: []Series{
		{Name: "up", StrokeColor: "#00f", Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{Points: []Point{{X: 0, Y: 1}, {X: 1, Y: 0}}},
	}}
	if err := Line(s, nil, opt); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	strokes := s.ops("stroke")
	if strokes[0].style != "#00f" || strokes[1].style != defaultStroke {
		t.Fatalf("unexpected dataset strokes: %q, %q", strokes[0].style, strokes[1].style)
	}
}

func TestMultiLineScenario(t *testing.T) {
	s := newRecorder(100, 50, 0)
	data := map[string]Series{
		"A": {Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		"B": {Points: []Point{{X: 0, Y: 1}, {X: 1, Y: 0}}},
	}
	if err := MultiLine(s, data, nil); err != nil {
		t.Fatalf("MultiLine failed: %v", err)
	}
	m, err := NewMapper(s, []Series{data["A"], data["B"]}, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	if m.Bounds.MinY != 0 || m.Bounds.MaxY != 1 {
		t.Fatalf("expected combined y range 0..1, got %+v", m.Bounds)
	}
	strokes := s.ops("stroke")
	if len(strokes) < 2 {
		t.Fatalf("expected two series paths, got %d strokes", len(strokes))
	}
	wantA := [][]Point{{{X: 0, Y: 39}, {X: 100, Y: 0}}}
	wantB := [][]Point{{{X: 0, Y: 0}, {X: 100, Y: 39}}}
	if !reflect.DeepEqual(strokes[0].path, wantA) {
		t.Fatalf("unexpected path for A: %+v", strokes[0].path)
	}
	if !reflect.DeepEqual(strokes[1].path, wantB) {
		t.Fatalf("unexpected path for B: %+v", strokes[1].path)
	}
	if strokes[0].style == strokes[1].style {
		t.Fatalf("expected distinct default colors, got %q twice", strokes[0].style)
	}
	if _, ok := s.findText("A"); !ok {
		t.Fatalf("expected legend entry for A")
	}
}

func TestMultiLinePaletteSkipsStyledSeries(t *testing.T) {
	s := newRecorder(100, 50, 0)
	data := map[string]Series{
		"a": {Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		"b": {StrokeColor: "#123", Points: []Point{{X: 0, Y: 1}, {X: 1, Y: 2}}},
		"c": {Points: []Point{{X: 0, Y: 2}, {X: 1, Y: 3}}},
	}
	opt := &Options{Palette: []string{"p0", "p1"}}
	if err := MultiLine(s, data, opt); err != nil {
		t.Fatalf("MultiLine failed: %v", err)
	}
	strokes := s.ops("stroke")
	got := []string{strokes[0].style, strokes[1].style, strokes[2].style}
	want := []string{"p0", "#123", "p1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected colors %v, got %v", want, got)
	}
}

func TestMultiLinePaletteWraps(t *testing.T) {
	data := map[string]Series{}
	for _, name := range []string{"a", "b", "c"} {
		data[name] = Series{Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	}
	series := StyleSeries(data, []string{"x", "y"})
	if series[2].StrokeColor != "x" {
		t.Fatalf("expected palette to wrap, got %q", series[2].StrokeColor)
	}
}

func TestScatterDatasetColors(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{Data: []Series{
		{FillColor: "#f00", Points: []Point{{X: 1, Y: 1}}},
		{FillColor: "#0f0", Points: []Point{{X: 2, Y: 2}}},
	}}
	if err := Scatter(s, nil, opt); err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	rects := s.ops("fillRect")
	if len(rects) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(rects))
	}
	for i, want := range []string{"#f00", "#0f0"} {
		if rects[i].style != want {
			t.Fatalf("marker %d: expected fill %q, got %q", i, want, rects[i].style)
		}
		if rects[i].rect[2] != markerSize || rects[i].rect[3] != markerSize {
			t.Fatalf("marker %d: expected 3x3, got %vx%v", i, rects[i].rect[2], rects[i].rect[3])
		}
	}
	if rects[0].rect[0] != -1 || rects[0].rect[1] != 38 {
		t.Fatalf("expected first marker centered on (0, 39), got %+v", rects[0].rect)
	}
}

func TestScatterFlatDefaultsToBlack(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Scatter(s, scenarioPoints(), nil); err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	rects := s.ops("fillRect")
	if len(rects) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(rects))
	}
	for _, r := range rects {
		if r.style != defaultFill {
			t.Fatalf("expected default fill, got %q", r.style)
		}
	}
}

func TestCalTargetBeforeTicks(t *testing.T) {
	s := newRecorder(100, 50, 0)
	xy := []Point{{X: 0, Y: 1}, {X: 1, Y: 5}, {X: 2, Y: 2}}
	if err := Cal(s, xy, &Options{Target: Float(3)}); err != nil {
		t.Fatalf("Cal failed: %v", err)
	}
	m, err := NewMapper(s, []Series{{Points: xy}}, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	strokes := s.ops("stroke")
	target := strokes[0]
	if target.style != targetColor {
		t.Fatalf("expected target color %q, got %q", targetColor, target.style)
	}
	wantTarget := [][]Point{{{X: m.PixelX(0), Y: m.PixelY(3)}, {X: m.PixelX(2), Y: m.PixelY(3)}}}
	if !reflect.DeepEqual(target.path, wantTarget) {
		t.Fatalf("unexpected target path: %+v", target.path)
	}
	ticks := strokes[1]
	if ticks.style != defaultCalStyle {
		t.Fatalf("expected tick color %q, got %q", defaultCalStyle, ticks.style)
	}
	if len(ticks.path) != len(xy) {
		t.Fatalf("expected %d ticks, got %d", len(xy), len(ticks.path))
	}
	for i, sub := range ticks.path {
		if sub[0].X != sub[1].X {
			t.Fatalf("tick %d is not vertical: %+v", i, sub)
		}
		if sub[0].Y != m.PixelY(m.Bounds.MinY) || sub[1].Y != m.PixelY(xy[i].Y) {
			t.Fatalf("tick %d spans wrong rows: %+v", i, sub)
		}
	}
}

func TestCalTicksUseWholeColumns(t *testing.T) {
	s := newRecorder(101, 50, 0)
	xy := []Point{{X: 0, Y: 1}, {X: 1, Y: 5}, {X: 3, Y: 2}}
	if err := Cal(s, xy, &Options{LineStyle: "blue"}); err != nil {
		t.Fatalf("Cal failed: %v", err)
	}
	ticks := s.ops("stroke")[0]
	if ticks.style != "blue" {
		t.Fatalf("expected line style blue, got %q", ticks.style)
	}
	if ticks.path[1][0].X != 33 {
		t.Fatalf("expected floored column 33, got %v", ticks.path[1][0].X)
	}
}

func TestCalZeroTargetIsDrawn(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Cal(s, scenarioPoints(), &Options{Target: Float(0)}); err != nil {
		t.Fatalf("Cal failed: %v", err)
	}
	if got := s.ops("stroke")[0].style; got != targetColor {
		t.Fatalf("expected a target line for target 0, got first stroke %q", got)
	}
}

func TestChartsRejectEmptyData(t *testing.T) {
	renders := map[string]func(Surface) error{
		"line":      func(s Surface) error { return Line(s, nil, nil) },
		"multiline": func(s Surface) error { return MultiLine(s, map[string]Series{"a": {}}, nil) },
		"scatter":   func(s Surface) error { return Scatter(s, []Point{}, nil) },
		"cal":       func(s Surface) error { return Cal(s, nil, &Options{}) },
	}
	for name, render := range renders {
		s := newRecorder(100, 50, 0)
		if err := render(s); !errors.Is(err, ErrNoData) {
			t.Fatalf("%s: expected ErrNoData, got %v", name, err)
		}
		if len(s.calls) != 0 {
			t.Fatalf("%s: expected no drawing on error, got %d calls", name, len(s.calls))
		}
	}
}

func TestChartsAreIdempotent(t *testing.T) {
	opt := &Options{
		YTitle:       "votes",
		Target:       Float(2),
		VLines:       []float64{5},
		ExtraYLabels: []YLabel{{Value: 1, Text: "one"}},
	}
	data := map[string]Series{
		"x": {Points: scenarioPoints()},
		"y": {Points: []Point{{X: 0, Y: 3}, {X: 20, Y: 1}}},
		"z": {Points: []Point{{X: 5, Y: 4}}},
	}
	renders := map[string]func(Surface) error{
		"line":      func(s Surface) error { return Line(s, scenarioPoints(), opt) },
		"multiline": func(s Surface) error { return MultiLine(s, data, opt) },
		"scatter":   func(s Surface) error { return Scatter(s, scenarioPoints(), opt) },
		"cal":       func(s Surface) error { return Cal(s, scenarioPoints(), opt) },
	}
	for name, render := range renders {
		first := newRecorder(120, 60, 6)
		second := newRecorder(120, 60, 6)
		if err := render(first); err != nil {
			t.Fatalf("%s: first render failed: %v", name, err)
		}
		if err := render(second); err != nil {
			t.Fatalf("%s: second render failed: %v", name, err)
		}
		if !reflect.DeepEqual(first.calls, second.calls) {
			t.Fatalf("%s: draw sequences differ between identical renders", name)
		}
	}
}
