// Package factor implements factor analysis by iterated principal-axis
// factoring of a correlation matrix. Unlike a principal components
// decomposition this is an approximate model: the loadings and uniquenesses
// come out of an iteration that refines the communality estimates until they
// stop moving.
package factor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Model holds a fitted factor model. Loadings is p x k with one row per
// observed variable and one column per factor. Uniquenesses are the residual
// variance of each variable not explained by the factors, always in [0, 1].
type Model struct {
	Loadings      *mat.Dense
	Communalities []float64
	Uniquenesses  []float64
	Iterations    int
}

// Fit extracts the given number of factors from a correlation matrix. The
// iteration stops when the largest communality change drops below tol. If
// that does not happen within maxIter passes, Fit returns an error carrying
// the last change.
func Fit(corr mat.Symmetric, factors int, maxIter int, tol float64) (*Model, error) {
	p := corr.SymmetricDim()

	if factors < 1 || factors >= p {
		return nil, fmt.Errorf("factors=%d out of range for %d variables", factors, p)
	}

	h2 := initialCommunalities(corr)

	var loadings *mat.Dense
	delta := math.Inf(1)

	for iter := 1; iter <= maxIter; iter++ {

		// Reduced correlation matrix: off-diagonals of corr, communality
		// estimates on the diagonal.
		reduced := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			reduced.SetSym(i, i, h2[i])
			for j := i + 1; j < p; j++ {
				reduced.SetSym(i, j, corr.At(i, j))
			}
		}

		var eig mat.EigenSym
		if ok := eig.Factorize(reduced, true); !ok {
			return nil, errors.New("eigen-decomposition of reduced matrix failed")
		}

		values := eig.Values(nil)

		var vectors mat.Dense
		eig.VectorsTo(&vectors)

		// Loadings from the top factors, largest eigenvalue first. The
		// reduced matrix is not positive semi-definite, so trailing
		// eigenvalues can be negative; the retained ones are floored at 0.
		loadings = mat.NewDense(p, factors, nil)
		for m := 0; m < factors; m++ {
			idx := p - 1 - m
			scale := math.Sqrt(math.Max(values[idx], 0))
			for i := 0; i < p; i++ {
				loadings.Set(i, m, vectors.At(i, idx)*scale)
			}
		}

		delta = 0.0
		for i := 0; i < p; i++ {
			sum := 0.0
			for m := 0; m < factors; m++ {
				l := loadings.At(i, m)
				sum += l * l
			}
			if sum > 1 {
				sum = 1
			}
			delta = math.Max(delta, math.Abs(sum-h2[i]))
			h2[i] = sum
		}

		if delta < tol {
			uniq := make([]float64, p)
			for i := range h2 {
				uniq[i] = math.Min(1, math.Max(0, 1-h2[i]))
			}

			return &Model{
				Loadings:      loadings,
				Communalities: h2,
				Uniquenesses:  uniq,
				Iterations:    iter,
			}, nil
		}
	}

	return nil, fmt.Errorf("no convergence after %d iterations, last change %g", maxIter, delta)
}

// initialCommunalities seeds the iteration with squared multiple
// correlations, falling back to the largest absolute off-diagonal entry per
// row when the correlation matrix is singular.
func initialCommunalities(corr mat.Symmetric) []float64 {
	p := corr.SymmetricDim()
	h2 := make([]float64, p)

	var inv mat.Dense
	if err := inv.Inverse(mat.DenseCopyOf(corr)); err == nil {
		ok := true
		for i := 0; i < p; i++ {
			d := inv.At(i, i)
			if d <= 0 {
				ok = false
				break
			}
			h2[i] = math.Min(1, math.Max(0, 1-1/d))
		}
		if ok {
			return h2
		}
	}

	for i := 0; i < p; i++ {
		big := 0.0
		for j := 0; j < p; j++ {
			if i == j {
				continue
			}
			big = math.Max(big, math.Abs(corr.At(i, j)))
		}
		h2[i] = big
	}

	return h2
}

// Residuals returns corr - (L Lᵀ + diag(uniquenesses)), the part of the
// correlation structure the model fails to reproduce.
func (m *Model) Residuals(corr mat.Symmetric) *mat.Dense {
	p := corr.SymmetricDim()

	var fitted mat.Dense
	fitted.Mul(m.Loadings, m.Loadings.T())

	res := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			f := fitted.At(i, j)
			if i == j {
				f += m.Uniquenesses[i]
			}
			res.Set(i, j, corr.At(i, j)-f)
		}
	}

	return res
}
