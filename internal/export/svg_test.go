package export

import (
	"strings"
	"testing"
)

func TestSeriesToSVG(t *testing.T) {
	days := []float64{0, 1, 2, 3}
	temps := []float64{200, 240, 210, 230}

	svg := SeriesToSVG(days, temps, 800, 400, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `width="800" height="400"`) {
		t.Error("missing dimensions")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	if strings.Count(svg, " L") != len(days)-1 {
		t.Errorf("path has %d segments, want %d", strings.Count(svg, " L"), len(days)-1)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestSeriesToSVGDegenerate(t *testing.T) {
	if svg := SeriesToSVG([]float64{0}, []float64{200}, 100, 100, "red"); svg != "" {
		t.Error("single point should render nothing")
	}
	if svg := SeriesToSVG([]float64{0, 1}, []float64{200}, 100, 100, "red"); svg != "" {
		t.Error("mismatched lengths should render nothing")
	}
	// A flat series still renders, centered by the synthetic range.
	if svg := SeriesToSVG([]float64{0, 1}, []float64{200, 200}, 100, 100, "red"); svg == "" {
		t.Error("flat series should still render")
	}
}
