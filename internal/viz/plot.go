package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bounds returns the min and max over all finite values in the given series,
// falling back to [0, 1] when nothing is finite.
func Bounds(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 1
	}
	return lo, hi
}

// PlotSeries draws values as a connected line spanning the full canvas
// width, mapping [lo, hi] onto the vertical sub-pixel range with hi at the
// top. Non-finite samples break the line.
func PlotSeries(c *Canvas, values []float64, lo, hi float64) {
	if len(values) == 0 {
		return
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	subW := c.Width * 2
	subH := c.Height * 4

	prevX, prevY := 0, 0
	pen := false
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			pen = false
			continue
		}
		x := 0
		if len(values) > 1 {
			x = i * (subW - 1) / (len(values) - 1)
		}
		y := subH - 1 - int((v-lo)/span*float64(subH-1)+0.5)
		if y < 0 {
			y = 0
		}
		if y > subH-1 {
			y = subH - 1
		}
		if pen {
			c.DrawLine(prevX, prevY, x, y)
		} else {
			c.Set(x, y)
		}
		prevX, prevY, pen = x, y, true
	}
}

// OverlayRender composites two canvases cell by cell: wherever the current
// canvas has dots its rune wins, elsewhere the previous canvas shows
// through. Runs of cells from the same layer are styled together to keep
// the escape sequence count down. A nil prev renders curr alone.
func OverlayRender(curr, prev *Canvas, currStyle, prevStyle lipgloss.Style) string {
	if curr == nil {
		return ""
	}
	var b strings.Builder
	for row := 0; row < curr.Height; row++ {
		run := make([]rune, 0, curr.Width)
		layer := -1 // 0 current, 1 previous, 2 blank
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch layer {
			case 0:
				b.WriteString(currStyle.Render(string(run)))
			case 1:
				b.WriteString(prevStyle.Render(string(run)))
			default:
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for col := 0; col < curr.Width; col++ {
			r := curr.Rune(col, row)
			l := 0
			if r == brailleBase {
				l = 2
				if prev != nil && !prev.Empty(col, row) {
					r = prev.Rune(col, row)
					l = 1
				}
			}
			if l != layer {
				flush()
				layer = l
			}
			run = append(run, r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
