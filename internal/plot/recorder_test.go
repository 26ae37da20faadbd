package plot

import "unicode/utf8"

type drawCall struct {
	op       string
	style    string
	path     [][]Point
	rect     [4]float64
	text     string
	x, y     float64
	align    TextAlign
	baseline TextBaseline
}

// recorder is a Surface that keeps every draw primitive it receives.
type recorder struct {
	width, height int
	charWidth     float64

	stroke   string
	fill     string
	align    TextAlign
	baseline TextBaseline
	path     [][]Point

	calls []drawCall
}

func newRecorder(width, height int, charWidth float64) *recorder {
	return &recorder{width: width, height: height, charWidth: charWidth}
}

func (r *recorder) Width() int  { return r.width }
func (r *recorder) Height() int { return r.height }

func (r *recorder) Clear() {
	r.calls = append(r.calls, drawCall{op: "clear"})
}

func (r *recorder) SetStrokeColor(style string) { r.stroke = style }
func (r *recorder) SetFillColor(style string)   { r.fill = style }

func (r *recorder) BeginPath() { r.path = nil }

func (r *recorder) MoveTo(x, y float64) {
	r.path = append(r.path, []Point{{X: x, Y: y}})
}

func (r *recorder) LineTo(x, y float64) {
	if len(r.path) == 0 {
		r.MoveTo(x, y)
		return
	}
	last := len(r.path) - 1
	r.path[last] = append(r.path[last], Point{X: x, Y: y})
}

func (r *recorder) Stroke() {
	path := make([][]Point, len(r.path))
	for i, sub := range r.path {
		path[i] = append([]Point(nil), sub...)
	}
	r.calls = append(r.calls, drawCall{op: "stroke", style: r.stroke, path: path})
}

func (r *recorder) FillRect(x, y, w, h float64) {
	r.calls = append(r.calls, drawCall{op: "fillRect", style: r.fill, rect: [4]float64{x, y, w, h}})
}

func (r *recorder) SetTextAlign(align TextAlign)          { r.align = align }
func (r *recorder) SetTextBaseline(baseline TextBaseline) { r.baseline = baseline }

func (r *recorder) FillText(text string, x, y float64) {
	r.calls = append(r.calls, drawCall{
		op:       "text",
		style:    r.fill,
		text:     text,
		x:        x,
		y:        y,
		align:    r.align,
		baseline: r.baseline,
	})
}

func (r *recorder) MeasureText(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * r.charWidth
}

func (r *recorder) ops(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) findText(text string) (drawCall, bool) {
	for _, c := range r.calls {
		if c.op == "text" && c.text == text {
			return c, true
		}
	}
	return drawCall{}, false
}
