// Package cca provides canonical correlation analysis for two variable sets
// observed on the same subjects. The numerical work is gonum's stat.CC; this
// package adds the bookkeeping the examples need: paired loading vectors,
// canonical correlations, and per-subject canonical scores.
package cca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Result holds a fitted canonical correlation analysis. Correlations come
// out in decreasing order. Column m of Left pairs with column m of Right:
// projecting the centered variable sets onto them yields the m-th pair of
// canonical variates, whose correlation is Correlations[m].
type Result struct {
	Correlations []float64
	Left         *mat.Dense
	Right        *mat.Dense
	LeftScores   *mat.Dense
	RightScores  *mat.Dense
}

// Fit runs a canonical correlation analysis of the two data matrices. The
// matrices must have one row per subject with rows matched by subject, which
// the caller guarantees by joining both sets on the subject identifier.
func Fit(x, y *mat.Dense) (*Result, error) {
	xr, _ := x.Dims()
	yr, _ := y.Dims()
	if xr != yr {
		return nil, fmt.Errorf("row mismatch: x has %d rows, y has %d", xr, yr)
	}

	var cc stat.CC
	if err := cc.CanonicalCorrelations(x, y, nil); err != nil {
		return nil, fmt.Errorf("canonical correlations: %w", err)
	}

	corrs := cc.CorrsTo(nil)

	var left, right mat.Dense
	cc.LeftTo(&left, false)
	cc.RightTo(&right, false)

	leftScores := project(x, &left)
	rightScores := project(y, &right)

	return &Result{
		Correlations: corrs,
		Left:         &left,
		Right:        &right,
		LeftScores:   leftScores,
		RightScores:  rightScores,
	}, nil
}

// project centers the data columns and applies the canonical coefficient
// vectors.
func project(m *mat.Dense, coef *mat.Dense) *mat.Dense {
	n, p := m.Dims()

	centered := mat.NewDense(n, p, nil)

	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, m)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}

	var scores mat.Dense
	scores.Mul(centered, coef)

	return &scores
}
