package term

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minCols             = 20
	minRows             = 5
	defaultRows         = 12
)

// TerminalWidth reports the stdout width in columns, or 80 when stdout is not
// a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// SizeFor clamps a requested grid to usable bounds. Zero width means the
// terminal width; zero height means the default height.
func SizeFor(cols, rows int) (int, int) {
	if cols <= 0 {
		cols = TerminalWidth()
	}
	if rows <= 0 {
		rows = defaultRows
	}
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	return cols, rows
}

// ShouldUseColor reports whether output to w should carry ANSI colors.
// NO_COLOR always wins; force skips the terminal check.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// NewRenderer returns a lipgloss renderer for w, or nil when w gets no color.
func NewRenderer(w io.Writer, force bool) *lipgloss.Renderer {
	if !ShouldUseColor(w, force) {
		return nil
	}
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}
