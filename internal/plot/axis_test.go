package plot

import (
	"testing"
)

func axisPoints() []Point {
	return []Point{{X: 1, Y: 2}, {X: 3, Y: 8}, {X: 5, Y: 4}}
}

func TestDrawAxesDefaultLabels(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Line(s, axisPoints(), nil); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	cases := []struct {
		text     string
		align    TextAlign
		baseline TextBaseline
		style    string
	}{
		{"1", AlignLeft, BaselineTop, labelColor},
		{"5", AlignRight, BaselineTop, labelColor},
		{"2", AlignLeft, BaselineBottom, labelColor},
		{"8", AlignLeft, BaselineTop, labelColor},
		{"4", AlignLeft, BaselineMiddle, accentColor},
	}
	for _, tc := range cases {
		c, ok := s.findText(tc.text)
		if !ok {
			t.Fatalf("expected label %q", tc.text)
		}
		if c.align != tc.align || c.baseline != tc.baseline || c.style != tc.style {
			t.Fatalf("label %q: got align=%v baseline=%v style=%q", tc.text, c.align, c.baseline, c.style)
		}
	}
	if c, _ := s.findText("4"); c.y != 39-2*39.0/6 {
		t.Fatalf("expected last value at pixelY(4), got %v", c.y)
	}
}

func TestDrawAxesTicks(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Scatter(s, axisPoints(), nil); err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	strokes := s.ops("stroke")
	if len(strokes) != 2 {
		t.Fatalf("expected bottom and right tick strokes, got %d", len(strokes))
	}
	bottom := strokes[0].path
	if len(bottom) != 2 || bottom[0][1].Y-bottom[0][0].Y != tickLength {
		t.Fatalf("unexpected bottom ticks: %+v", bottom)
	}
	right := strokes[1].path
	if len(right) != 2 || right[0][1].X-right[0][0].X != tickLength {
		t.Fatalf("unexpected right ticks: %+v", right)
	}
	if strokes[0].style != labelColor {
		t.Fatalf("expected tick color %q, got %q", labelColor, strokes[0].style)
	}
}

func TestDrawAxesLabelOverrides(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{
		XLabels: &[2]string{"Mon", "Fri"},
		YLabels: &AxisLabels{Min: "lo", Max: "hi"},
	}
	if err := Line(s, axisPoints(), opt); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for _, text := range []string{"Mon", "Fri", "lo", "hi"} {
		if _, ok := s.findText(text); !ok {
			t.Fatalf("expected label %q", text)
		}
	}
	for _, text := range []string{"1", "5", "2", "8", "4"} {
		if _, ok := s.findText(text); ok {
			t.Fatalf("expected computed label %q to be replaced", text)
		}
	}
}

func TestDrawAxesLastValueHiddenAtExtremes(t *testing.T) {
	s := newRecorder(100, 50, 0)
	if err := Line(s, []Point{{X: 0, Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 9}}, nil); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for _, c := range s.ops("text") {
		if c.style == accentColor {
			t.Fatalf("expected no accent text when last value is the max, got %q", c.text)
		}
	}
}

func TestDrawAxesTitleAndExtraLabels(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{
		YTitle:       "votes",
		ExtraYLabels: []YLabel{{Value: 6, Text: "six"}},
	}
	if err := Line(s, axisPoints(), opt); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	m, err := NewMapper(s, []Series{{Points: axisPoints()}}, opt)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	title, ok := s.findText("votes")
	if !ok {
		t.Fatalf("expected y title")
	}
	if title.style != accentColor || title.baseline != BaselineMiddle || title.y != m.PixelY(5) {
		t.Fatalf("unexpected title draw: %+v", title)
	}
	if title.x != m.PixelX(5) {
		t.Fatalf("expected title at right edge %v, got %v", m.PixelX(5), title.x)
	}
	six, ok := s.findText("six")
	if !ok {
		t.Fatalf("expected extra y label")
	}
	if six.style != labelColor || six.y != m.PixelY(6) {
		t.Fatalf("unexpected extra label draw: %+v", six)
	}
}

func TestDrawAxesLegend(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{Data: []Series{
		{Name: "first", FillColor: "#123", Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 4}}},
		{Points: []Point{{X: 0, Y: 1}}},
		{Name: "third", StrokeColor: "#456", Points: []Point{{X: 1, Y: 2}}},
	}}
	if err := Line(s, nil, opt); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	first, ok := s.findText("first")
	if !ok {
		t.Fatalf("expected legend entry for first")
	}
	third, ok := s.findText("third")
	if !ok {
		t.Fatalf("expected legend entry for third")
	}
	if first.style != "#123" || third.style != "#456" {
		t.Fatalf("unexpected legend colors: %q, %q", first.style, third.style)
	}
	if first.y != legendRowHeight || third.y != 2*legendRowHeight {
		t.Fatalf("expected rows at 10 and 20, got %v and %v", first.y, third.y)
	}
	if first.baseline != BaselineTop {
		t.Fatalf("expected top baseline for legend")
	}
}

func TestDrawAxesVerticalMarkers(t *testing.T) {
	s := newRecorder(100, 50, 0)
	opt := &Options{VLines: []float64{2, 4}}
	if err := Scatter(s, axisPoints(), opt); err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	strokes := s.ops("stroke")
	if len(strokes) != 4 {
		t.Fatalf("expected 2 tick strokes and 2 markers, got %d", len(strokes))
	}
	for _, marker := range strokes[2:] {
		if marker.style != markerColor {
			t.Fatalf("expected marker color %q, got %q", markerColor, marker.style)
		}
		seg := marker.path[0]
		if seg[0].X != seg[1].X || seg[0].Y != 39 || seg[1].Y != 0 {
			t.Fatalf("expected full height vertical marker, got %+v", seg)
		}
	}
	if strokes[2].path[0][0].X != 25 {
		t.Fatalf("expected first marker at column 25, got %v", strokes[2].path[0][0].X)
	}
}
