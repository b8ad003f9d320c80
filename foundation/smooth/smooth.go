// Package smooth provides the lowess smoother the plotting examples overlay
// on scatterplots: a tricube-weighted local linear regression evaluated at
// each observed point.
package smooth

import (
	"fmt"
	"math"
	"sort"
)

// Lowess fits a locally weighted linear regression to the points (xs, ys)
// and returns the smoothed curve sorted by x. The span is the fraction of
// the data used in each local fit, typically between 0.2 and 0.8.
func Lowess(xs, ys []float64, span float64) ([]float64, []float64, error) {
	n := len(xs)
	if n != len(ys) {
		return nil, nil, fmt.Errorf("have %d x values and %d y values", n, len(ys))
	}
	if n < 3 {
		return nil, nil, fmt.Errorf("need at least 3 points, have %d", n)
	}
	if span <= 0 || span > 1 {
		return nil, nil, fmt.Errorf("span %v out of (0, 1]", span)
	}

	window := int(math.Ceil(span * float64(n)))
	if window < 2 {
		window = 2
	}

	// Work on a copy sorted by x.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	sx := make([]float64, n)
	sy := make([]float64, n)
	for i, k := range idx {
		sx[i] = xs[k]
		sy[i] = ys[k]
	}

	fitted := make([]float64, n)

	lo, hi := 0, window
	for i := 0; i < n; i++ {

		// Slide the window so it holds the nearest points to sx[i].
		for hi < n && sx[hi]-sx[i] < sx[i]-sx[lo] {
			lo++
			hi++
		}

		fitted[i] = localFit(sx[lo:hi], sy[lo:hi], sx[i])
	}

	return sx, fitted, nil
}

// localFit solves the tricube-weighted least squares line through the window
// and evaluates it at x0. The normal equations are 2x2 and solved directly.
func localFit(xs, ys []float64, x0 float64) float64 {
	dmax := 0.0
	for _, x := range xs {
		dmax = math.Max(dmax, math.Abs(x-x0))
	}

	var sw, swx, swy, swxx, swxy float64
	for i, x := range xs {
		w := 1.0
		if dmax > 0 {
			u := math.Abs(x-x0) / dmax
			w = math.Pow(1-u*u*u, 3)
		}

		sw += w
		swx += w * x
		swy += w * ys[i]
		swxx += w * x * x
		swxy += w * x * ys[i]
	}

	det := sw*swxx - swx*swx
	if math.Abs(det) < 1e-12 {

		// Degenerate window, all x equal: fall back to the weighted mean.
		return swy / sw
	}

	intercept := (swxx*swy - swx*swxy) / det
	slope := (sw*swxy - swx*swy) / det

	return intercept + slope*x0
}
