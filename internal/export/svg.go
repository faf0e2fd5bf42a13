package export

import (
	"fmt"
	"strings"
)

// Series is one curve in an SVG plot. Dashed series render with a dash
// pattern, which the overlay uses to tell the closed form from the
// integrated trajectory.
type Series struct {
	Label  string
	Times  []float64
	Values []float64
	Color  string
	Dashed bool
}

// CurveSVG renders time series as polylines on a shared scale with 10%
// padding around the data. Series with fewer than two points are
// skipped; an empty plot returns the empty string.
func CurveSVG(series []Series, width, height int, title string) string {
	drawable := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Times) >= 2 && len(s.Times) == len(s.Values) {
			drawable = append(drawable, s)
		}
	}
	if len(drawable) == 0 {
		return ""
	}

	minT, maxT := drawable[0].Times[0], drawable[0].Times[0]
	minV, maxV := drawable[0].Values[0], drawable[0].Values[0]
	for _, s := range drawable {
		for i := range s.Times {
			if s.Times[i] < minT {
				minT = s.Times[i]
			}
			if s.Times[i] > maxT {
				maxT = s.Times[i]
			}
			if s.Values[i] < minV {
				minV = s.Values[i]
			}
			if s.Values[i] > maxV {
				maxV = s.Values[i]
			}
		}
	}

	rangeT := maxT - minT
	rangeV := maxV - minV
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minT -= rangeT * 0.1
	maxT += rangeT * 0.1
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeT = maxT - minT
	rangeV = maxV - minV

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="20" font-family="monospace" font-size="12" fill="#cccccc">%s</text>
`, title))
	}

	for _, s := range drawable {
		color := s.Color
		if color == "" {
			color = "#00ff00"
		}
		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6 4"`
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, color, dash))
		for i := range s.Times {
			x := (s.Times[i] - minT) / rangeT * float64(width)
			y := float64(height) - (s.Values[i]-minV)/rangeV*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for i, s := range drawable {
		if s.Label == "" {
			continue
		}
		color := s.Color
		if color == "" {
			color = "#00ff00"
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="monospace" font-size="11" fill="%s">%s</text>
`, width-160, 20+14*i, color, s.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
