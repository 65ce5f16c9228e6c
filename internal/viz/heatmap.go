// Package viz renders potential and field data in the terminal: an ANSI
// heat map, a braille vector-field sketch, and a live bubbletea view of a
// running solve.
package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avaldes/fieldsim/internal/laplace"
)

// heatRamp is a cold-to-hot ANSI 256 color scale.
var heatRamp = []string{
	"17", "18", "19", "20", "26", "32", "38", "44", "50",
	"49", "48", "47", "46", "82", "118", "154", "190",
	"226", "220", "214", "208", "202", "196",
}

var heatStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(heatRamp))
	for i, c := range heatRamp {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return styles
}()

// RenderHeatmap draws a potential matrix as colored blocks, resampled to
// at most width terminal columns (two columns per cell). The top screen
// row is the top edge of the domain (y = 1).
func RenderHeatmap(v [][]float64, width int) string {
	n := len(v)
	if n == 0 {
		return ""
	}

	min, max := laplace.Range(v)
	span := max - min
	if span == 0 {
		span = 1
	}

	cells := width / 2
	if cells < 1 {
		cells = 1
	}
	if cells > n {
		cells = n
	}

	var sb strings.Builder
	for r := 0; r < cells; r++ {
		i := sampleIndex(cells-1-r, cells, n)
		for c := 0; c < cells; c++ {
			j := sampleIndex(c, cells, n)
			t := (v[i][j] - min) / span
			idx := int(t * float64(len(heatStyles)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(heatStyles) {
				idx = len(heatStyles) - 1
			}
			sb.WriteString(heatStyles[idx].Render("██"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderField sketches the field as braille arrows on a width x height
// character canvas, sampled on a coarse lattice.
func RenderField(ex, ey [][]float64, width, height int) string {
	n := len(ex)
	c := NewCanvas(width, height)
	if n < 2 {
		return c.String()
	}

	_, maxMag := laplace.Range(laplace.Magnitude(ex, ey))
	if maxMag == 0 {
		return c.String()
	}

	px, py := width*2, height*4 // sub-pixel extent
	step := n / 12
	if step < 1 {
		step = 1
	}
	arrow := float64(minInt(px, py)) / 14.0

	for i := 0; i < n; i += step {
		for j := 0; j < n; j += step {
			x0 := j * (px - 1) / (n - 1)
			y0 := (n - 1 - i) * (py - 1) / (n - 1) // screen y grows downward
			dx := int(ex[i][j] / maxMag * arrow)
			dy := int(-ey[i][j] / maxMag * arrow)
			c.DrawLine(x0, y0, x0+dx, y0+dy)
		}
	}
	return c.String()
}

// sampleIndex maps display cell k of cells onto source index 0..n-1.
func sampleIndex(k, cells, n int) int {
	if cells <= 1 {
		return 0
	}
	return k * (n - 1) / (cells - 1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
