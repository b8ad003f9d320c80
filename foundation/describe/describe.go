// Package describe provides the descriptive statistics used by the
// dimension-reduction examples: per-variable summaries, correlation and
// covariance matrices, and column standardization.
package describe

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the per-variable descriptive statistics of one column.
type Summary struct {
	Name string
	N    int
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Summarize computes a summary for each column of the matrix. The names
// slice provides the variable names and must match the column count.
func Summarize(m mat.Matrix, names []string) ([]Summary, error) {
	n, p := m.Dims()
	if len(names) != p {
		return nil, fmt.Errorf("have %d names for %d columns", len(names), p)
	}

	summaries := make([]Summary, p)

	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, m)

		mean, std := stat.MeanStdDev(col, nil)

		mn, mx := col[0], col[0]
		for _, v := range col {
			mn = math.Min(mn, v)
			mx = math.Max(mx, v)
		}

		summaries[j] = Summary{
			Name: names[j],
			N:    n,
			Mean: mean,
			Std:  std,
			Min:  mn,
			Max:  mx,
		}
	}

	return summaries, nil
}

// CorrelationMatrix computes the sample correlation matrix of the columns.
// The result is symmetric with a unit diagonal and off-diagonal entries
// in [-1, 1].
func CorrelationMatrix(m mat.Matrix) *mat.SymDense {
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, m, nil)

	return &corr
}

// CovarianceMatrix computes the sample covariance matrix of the columns.
func CovarianceMatrix(m mat.Matrix) *mat.SymDense {
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, m, nil)

	return &cov
}

// Standardize returns a copy of the matrix with each column centered on its
// mean and scaled by its sample standard deviation. A zero-variance column
// is an error since it cannot be scaled.
func Standardize(m mat.Matrix) (*mat.Dense, error) {
	n, p := m.Dims()

	z := mat.NewDense(n, p, nil)

	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, m)

		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			return nil, fmt.Errorf("column %d has zero variance", j)
		}

		for i := 0; i < n; i++ {
			z.Set(i, j, (col[i]-mean)/std)
		}
	}

	return z, nil
}
