// Package pca implements principal components analysis the way the classic
// textbooks describe it: eigen-decomposition of a correlation matrix,
// eigenvalues sorted in decreasing order, and per-subject scores obtained by
// projecting the standardized data onto the eigenvectors. The package also
// wraps gonum's packaged routine so the two can be checked against each
// other.
package pca

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Decomposition holds an eigen-decomposition of a correlation (or
// covariance) matrix with eigenvalues in decreasing order. Column j of
// Vectors is the eigenvector paired with Values[j]. Eigenvectors carry no
// canonical sign: v and -v are the same component.
type Decomposition struct {
	Values  []float64
	Vectors *mat.Dense
}

// Fit eigen-decomposes the given symmetric matrix. Eigenvalues of a valid
// correlation or covariance matrix are non-negative; values that come out as
// small negatives from floating point noise are clamped at zero.
func Fit(s mat.Symmetric) (*Decomposition, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(s, true); !ok {
		return nil, errors.New("eigen-decomposition failed to converge")
	}

	values := eig.Values(nil)

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// EigenSym reports ascending order. Reverse into the conventional
	// largest-first order.
	p := len(values)
	sorted := make([]float64, p)
	perm := mat.NewDense(p, p, nil)

	for j := 0; j < p; j++ {
		v := values[p-1-j]
		if v < 0 {
			if v < -1e-8 {
				return nil, fmt.Errorf("matrix is not positive semi-definite: eigenvalue %v", v)
			}
			v = 0
		}
		sorted[j] = v
		perm.Set(p-1-j, j, 1)
	}

	var ordered mat.Dense
	ordered.Mul(&vectors, perm)

	return &Decomposition{Values: sorted, Vectors: &ordered}, nil
}

// Proportions returns the fraction of total variance each component
// explains. The proportions sum to 1 across all components.
func (d *Decomposition) Proportions() []float64 {
	total := 0.0
	for _, v := range d.Values {
		total += v
	}

	props := make([]float64, len(d.Values))
	for i, v := range d.Values {
		props[i] = v / total
	}

	return props
}

// Cumulative returns the running sum of the variance proportions.
func (d *Decomposition) Cumulative() []float64 {
	props := d.Proportions()

	cum := make([]float64, len(props))
	sum := 0.0
	for i, v := range props {
		sum += v
		cum[i] = sum
	}

	return cum
}

// Kaiser returns the number of components the Kaiser criterion retains:
// those with an eigenvalue greater than 1.
func (d *Decomposition) Kaiser() int {
	k := 0
	for _, v := range d.Values {
		if v > 1 {
			k++
		}
	}

	return k
}

// Reconstruct rebuilds the decomposed matrix as V diag(values) Vᵀ. Up to
// floating point noise this reproduces the matrix given to Fit.
func (d *Decomposition) Reconstruct() *mat.Dense {
	p := len(d.Values)

	lambda := mat.NewDiagDense(p, d.Values)

	var vl, r mat.Dense
	vl.Mul(d.Vectors, lambda)
	r.Mul(&vl, d.Vectors.T())

	return &r
}

// Scores projects the standardized observations onto the first k
// eigenvectors. Score columns are mutually uncorrelated with mean
// approximately zero.
func Scores(z mat.Matrix, d *Decomposition, k int) (*mat.Dense, error) {
	_, p := z.Dims()
	if k < 1 || k > p {
		return nil, fmt.Errorf("k=%d out of range for %d variables", k, p)
	}

	loadings := d.Vectors.Slice(0, p, 0, k)

	var scores mat.Dense
	scores.Mul(z, loadings)

	return &scores, nil
}

// Library runs gonum's packaged principal components routine on the data
// matrix and reports the result in the same Decomposition form. When the
// data matrix is standardized, its covariance is the correlation matrix and
// the result matches Fit up to a per-column sign.
func Library(m mat.Matrix) (*Decomposition, error) {
	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.New("principal components failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	values := pc.VarsTo(nil)

	return &Decomposition{Values: values, Vectors: &vectors}, nil
}

// SameUpToSign reports whether each column of a matches the corresponding
// column of b up to a per-column sign flip, within the tolerance.
func SameUpToSign(a, b *mat.Dense, tol float64) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("dimension mismatch: %dx%d vs %dx%d", ar, ac, br, bc)
	}

	for j := 0; j < ac; j++ {

		// Pick the sign that aligns the largest entry of the column.
		sign := 1.0
		big := 0.0
		for i := 0; i < ar; i++ {
			if v := math.Abs(a.At(i, j)); v > big {
				big = v
				if a.At(i, j)*b.At(i, j) < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}

		for i := 0; i < ar; i++ {
			if diff := math.Abs(a.At(i, j) - sign*b.At(i, j)); diff > tol {
				return fmt.Errorf("column %d differs at row %d by %v", j, i, diff)
			}
		}
	}

	return nil
}
