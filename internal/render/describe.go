package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/canvasplot/internal/chartfile"
	"github.com/verte-zerg/canvasplot/internal/plot"
)

// Summary describes the data extent of one chart.
type Summary struct {
	Name   string
	Kind   string
	Series int
	Points int
	Bounds plot.Bounds
	LastY  float64
	Empty  bool
}

// Describe summarizes every chart. Charts without points are marked Empty.
func Describe(charts []chartfile.Resolved) ([]Summary, error) {
	out := make([]Summary, 0, len(charts))
	for _, c := range charts {
		series := Series(c)
		sum := Summary{Name: c.Name, Kind: c.Kind, Series: len(series)}
		for _, s := range series {
			sum.Points += len(s.Points)
		}
		opt := c.Options
		bounds, lastY, err := plot.Extent(series, &opt)
		switch {
		case errors.Is(err, plot.ErrNoData):
			sum.Empty = true
		case err != nil:
			return nil, err
		default:
			sum.Bounds = bounds
			sum.LastY = lastY
		}
		out = append(out, sum)
	}
	return out, nil
}

// FormatSummaries lays the summaries out as an aligned text table.
func FormatSummaries(sums []Summary) string {
	headers := []string{"Chart", "Kind", "Series", "Points", "X range", "Y range", "Last"}
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		row := []string{s.Name, s.Kind, strconv.Itoa(s.Series), strconv.Itoa(s.Points)}
		if s.Empty {
			row = append(row, "-", "-", "-")
		} else {
			row = append(row,
				plot.FormatValue(s.Bounds.MinX)+".."+plot.FormatValue(s.Bounds.MaxX),
				plot.FormatValue(s.Bounds.MinY)+".."+plot.FormatValue(s.Bounds.MaxY),
				plot.FormatValue(s.LastY),
			)
		}
		rows = append(rows, row)
	}
	return strings.Join(formatTable(headers, rows, map[int]bool{2: true, 3: true, 6: true}), "\n")
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, rightAlignCols))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if rightAlignCols[i] {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
