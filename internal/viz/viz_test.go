package viz

import (
	"strings"
	"testing"
)

func TestRenderHeatmapShape(t *testing.T) {
	v := [][]float64{
		{0, 0, 10},
		{0, 5, 10},
		{0, 0, 10},
	}

	out := RenderHeatmap(v, 6)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows for a 3x3 grid at width 6, got %d", len(lines))
	}

	if RenderHeatmap(nil, 10) != "" {
		t.Error("empty matrix should render empty")
	}
}

func TestRenderHeatmapFlatField(t *testing.T) {
	v := [][]float64{
		{5, 5, 5},
		{5, 5, 5},
		{5, 5, 5},
	}
	// A constant potential has zero span; must not divide by zero.
	out := RenderHeatmap(v, 6)
	if out == "" {
		t.Error("constant matrix should still render")
	}
}

func TestSampleIndexBounds(t *testing.T) {
	for cells := 1; cells <= 5; cells++ {
		for k := 0; k < cells; k++ {
			idx := sampleIndex(k, cells, 50)
			if idx < 0 || idx >= 50 {
				t.Errorf("sampleIndex(%d, %d, 50) = %d out of range", k, cells, idx)
			}
		}
	}
	if sampleIndex(4, 5, 50) != 49 {
		t.Errorf("last cell should map to last source index, got %d", sampleIndex(4, 5, 50))
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	empty := c.String()

	c.DrawLine(0, 0, 19, 19)
	if c.String() == empty {
		t.Error("drawing a line should change the canvas")
	}

	c.Clear()
	if c.String() != empty {
		t.Error("Clear should restore the empty canvas")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(4, 4)
	empty := c.String()

	c.Set(-1, 2)
	c.Set(2, -1)
	c.Set(100, 100)

	if c.String() != empty {
		t.Error("out-of-range Set should be a no-op")
	}
}

func TestRenderFieldZeroField(t *testing.T) {
	n := 5
	ex := make([][]float64, n)
	ey := make([][]float64, n)
	for i := range ex {
		ex[i] = make([]float64, n)
		ey[i] = make([]float64, n)
	}

	out := RenderField(ex, ey, 20, 10)
	if strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("zero field should draw no arrows")
	}
}

func TestRenderFieldUniformField(t *testing.T) {
	n := 8
	ex := make([][]float64, n)
	ey := make([][]float64, n)
	for i := range ex {
		ex[i] = make([]float64, n)
		ey[i] = make([]float64, n)
		for j := range ex[i] {
			ex[i][j] = 1
		}
	}

	out := RenderField(ex, ey, 20, 10)
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("uniform field should draw arrows")
	}
}
