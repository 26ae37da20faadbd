// Package plot draws line, multi-line, scatter and calendar charts on a Surface.
package plot

// TextAlign selects which end of a string sits at the anchor x.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignRight
)

// TextBaseline selects which edge of a string sits at the anchor y.
type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineBottom
	BaselineMiddle
)

// Surface is a drawable pixel area. Color strings are handed over as given;
// interpreting (or rejecting) them is up to the implementation.
type Surface interface {
	Width() int
	Height() int
	Clear()

	SetStrokeColor(style string)
	SetFillColor(style string)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()

	FillRect(x, y, w, h float64)

	SetTextAlign(align TextAlign)
	SetTextBaseline(baseline TextBaseline)
	FillText(text string, x, y float64)
	// MeasureText returns the width in pixels text would occupy.
	MeasureText(text string) float64
}
