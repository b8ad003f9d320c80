// Package plots renders the analysis visuals to image files: correlation
// heatmaps, scatterplots with optional smoothed trend overlays, and scree
// plots. Nothing here keeps state; every function draws and saves one file.
package plots

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ardanlabs/stats-training/foundation/smooth"
)

// matrixGrid adapts a matrix to the grid interface the heatmap plotter
// wants. Row 0 of the matrix draws at the top of the image.
type matrixGrid struct {
	m mat.Matrix
}

func (g matrixGrid) Dims() (int, int) {
	r, c := g.m.Dims()
	return c, r
}

func (g matrixGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g matrixGrid) X(c int) float64 { return float64(c) }
func (g matrixGrid) Y(r int) float64 { return float64(r) }

// nameTicks places one tick per variable, labeled with the variable name.
type nameTicks struct {
	names   []string
	reverse bool
}

func (n nameTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick

	for i, name := range n.names {
		v := float64(i)
		if n.reverse {
			v = float64(len(n.names) - 1 - i)
		}
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}

	return ticks
}

// Heatmap renders the matrix as a heatmap with the variable names on both
// axes.
func Heatmap(m mat.Matrix, names []string, title string, filename string) error {
	p := plot.New()
	p.Title.Text = title

	h := plotter.NewHeatMap(matrixGrid{m: m}, palette.Heat(12, 1))
	p.Add(h)

	p.X.Tick.Marker = nameTicks{names: names}
	p.Y.Tick.Marker = nameTicks{names: names, reverse: true}

	return save(p, filename)
}

// Scatter renders a plain scatterplot.
func Scatter(xs, ys []float64, title, xlabel, ylabel string, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	if err := plotutil.AddScatters(p, points(xs, ys)); err != nil {
		return fmt.Errorf("add scatters: %w", err)
	}

	return save(p, filename)
}

// ScatterSmooth renders a scatterplot with a lowess trend line on top.
func ScatterSmooth(xs, ys []float64, span float64, title, xlabel, ylabel string, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	if err := plotutil.AddScatters(p, points(xs, ys)); err != nil {
		return fmt.Errorf("add scatters: %w", err)
	}

	sx, sy, err := smooth.Lowess(xs, ys, span)
	if err != nil {
		return fmt.Errorf("lowess: %w", err)
	}

	if err := plotutil.AddLines(p, "trend", points(sx, sy)); err != nil {
		return fmt.Errorf("add lines: %w", err)
	}

	return save(p, filename)
}

// Scree renders the variance-explained proportion of each component.
func Scree(proportions []float64, title string, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Component"
	p.Y.Label.Text = "Proportion of variance"
	p.Y.Min = 0

	pts := make(plotter.XYs, len(proportions))
	for i, v := range proportions {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}

	if err := plotutil.AddLinePoints(p, "proportion", pts); err != nil {
		return fmt.Errorf("add line points: %w", err)
	}

	return save(p, filename)
}

func points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	return pts
}

func save(p *plot.Plot, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}

	return nil
}
