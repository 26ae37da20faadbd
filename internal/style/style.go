// Package style parses canvas-like color strings.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned for strings that name no color.
var ErrUnknownColor = errors.New("unknown color")

// Parse understands #rgb, #rrggbb, CSS color names, rgb(r,g,b) and
// rgba(r,g,b,a). Alpha is a fraction in [0,1]; larger values are read on the
// 0-255 scale.
func Parse(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty", ErrUnknownColor)
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil || (len(s) != 4 && len(s) != 7) {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MustParse is Parse for package-level constants.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	name := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")
	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%w: %q wants %d components", ErrUnknownColor, s, want)
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrUnknownColor, s, err)
		}
		vals[i] = v
	}
	c := color.NRGBA{R: channel(vals[0]), G: channel(vals[1]), B: channel(vals[2]), A: 0xff}
	if want == 4 {
		a := vals[3]
		if a <= 1 {
			a *= 255
		}
		c.A = channel(a)
	}
	return c, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
