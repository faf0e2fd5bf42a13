package export

import (
	"strings"
	"testing"
)

func TestCurveSVGRendersSeries(t *testing.T) {
	series := []Series{
		{
			Label:  "integrated",
			Times:  []float64{0, 1, 2, 3},
			Values: []float64{0.01, 0.4, 1.2, 2.0},
			Color:  "#00ff00",
		},
		{
			Label:  "closed form",
			Times:  []float64{0, 1, 2, 3},
			Values: []float64{0.01, 0.41, 1.19, 2.01},
			Color:  "#888888",
			Dashed: true,
		},
	}

	svg := CurveSVG(series, 800, 400, "structure vs time")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("dashed series should carry a dash pattern")
	}
	if !strings.Contains(svg, "structure vs time") {
		t.Error("title missing")
	}
	if !strings.Contains(svg, "closed form") {
		t.Error("legend label missing")
	}
}

func TestCurveSVGEmpty(t *testing.T) {
	if svg := CurveSVG(nil, 800, 400, ""); svg != "" {
		t.Error("expected empty string for no series")
	}

	short := []Series{{Times: []float64{0}, Values: []float64{1}}}
	if svg := CurveSVG(short, 800, 400, ""); svg != "" {
		t.Error("expected empty string for single-point series")
	}
}

func TestCurveSVGFlatSeriesStaysInBounds(t *testing.T) {
	flat := []Series{{
		Times:  []float64{0, 1, 2},
		Values: []float64{5, 5, 5},
	}}

	svg := CurveSVG(flat, 100, 100, "")
	if svg == "" {
		t.Fatal("expected output for a flat series")
	}
	if strings.Contains(svg, "NaN") {
		t.Error("flat series produced NaN coordinates")
	}
}
