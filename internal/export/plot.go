// Package export renders solve results to image files via gonum/plot.
package export

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// potentialGrid adapts a potential matrix to plotter.GridXYZ over the unit
// square. Rows map to y, columns to x.
type potentialGrid struct {
	v [][]float64
	h float64
}

func newPotentialGrid(v [][]float64) potentialGrid {
	h := 0.0
	if len(v) > 1 {
		h = 1.0 / float64(len(v)-1)
	}
	return potentialGrid{v: v, h: h}
}

func (p potentialGrid) Dims() (c, r int)   { return len(p.v), len(p.v) }
func (p potentialGrid) Z(c, r int) float64 { return p.v[r][c] }
func (p potentialGrid) X(c int) float64    { return float64(c) * p.h }
func (p potentialGrid) Y(r int) float64    { return float64(r) * p.h }

// HeatmapPNG writes a heat map of the potential.
func HeatmapPNG(path string, potential [][]float64) error {
	p := plot.New()
	p.Title.Text = "Electric potential V(x,y)"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(newPotentialGrid(potential), palette.Heat(16, 1))
	p.Add(hm)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// fieldGrid adapts (Ex, Ey) samples to plotter.FieldXY, keeping every
// step-th sample so dense grids stay readable.
type fieldGrid struct {
	ex, ey [][]float64
	step   int
	h      float64
}

func newFieldGrid(ex, ey [][]float64, step int) fieldGrid {
	h := 0.0
	if len(ex) > 1 {
		h = 1.0 / float64(len(ex)-1)
	}
	return fieldGrid{ex: ex, ey: ey, step: step, h: h}
}

func (f fieldGrid) Dims() (c, r int) {
	n := (len(f.ex) + f.step - 1) / f.step
	return n, n
}

func (f fieldGrid) Vector(c, r int) plotter.XY {
	return plotter.XY{
		X: f.ex[r*f.step][c*f.step],
		Y: f.ey[r*f.step][c*f.step],
	}
}

func (f fieldGrid) X(c int) float64 { return float64(c*f.step) * f.h }
func (f fieldGrid) Y(r int) float64 { return float64(r*f.step) * f.h }

// FieldPNG writes an arrow plot of the electric field over the unit
// square, downsampled to at most ~20 vectors per axis.
func FieldPNG(path string, ex, ey [][]float64) error {
	p := plot.New()
	p.Title.Text = "Electric field E(x,y)"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	step := len(ex) / 20
	if step < 1 {
		step = 1
	}
	p.Add(plotter.NewField(newFieldGrid(ex, ey, step)))

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
