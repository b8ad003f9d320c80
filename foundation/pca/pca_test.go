package pca_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/pca"
)

// bloodPressure simulates six correlated blood pressure readings: three
// systolic and three diastolic repeats per subject. Repeats of the same
// measure correlate near 0.95, the two blocks correlate around 0.35.
func bloodPressure(t *testing.T, n int) *mat.Dense {
	t.Helper()

	corr := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			switch {
			case i == j:
				corr.SetSym(i, j, 1)
			case i/3 == j/3:
				corr.SetSym(i, j, 0.95)
			default:
				corr.SetSym(i, j, 0.35)
			}
		}
	}

	dist, ok := distmv.NewNormal(make([]float64, 6), corr, rand.NewPCG(7, 13))
	require.True(t, ok, "construct multivariate normal")

	m := mat.NewDense(n, 6, nil)
	row := make([]float64, 6)
	for i := 0; i < n; i++ {
		dist.Rand(row)
		for j := 0; j < 6; j++ {
			m.Set(i, j, row[j])
		}
	}

	return m
}

func TestReconstruction(t *testing.T) {
	m := bloodPressure(t, 500)
	corr := describe.CorrelationMatrix(m)

	d, err := pca.Fit(corr)
	require.NoError(t, err)

	rec := d.Reconstruct()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			assert.InDelta(t, corr.At(i, j), rec.At(i, j), 1e-10)
		}
	}
}

func TestOrthonormality(t *testing.T) {
	m := bloodPressure(t, 500)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	var vtv mat.Dense
	vtv.Mul(d.Vectors.T(), d.Vectors)

	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, vtv.At(i, j), 1e-10)
		}
	}
}

func TestValuesSortedNonNegative(t *testing.T) {
	m := bloodPressure(t, 500)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	for i, v := range d.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, v, d.Values[i-1])
		}
	}
}

func TestProportionsSumToOne(t *testing.T) {
	m := bloodPressure(t, 500)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	sum := 0.0
	for _, p := range d.Proportions() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	cum := d.Cumulative()
	assert.InDelta(t, 1.0, cum[len(cum)-1], 1e-12)
}

func TestScoresDecorrelated(t *testing.T) {
	m := bloodPressure(t, 1000)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	z, err := describe.Standardize(m)
	require.NoError(t, err)

	scores, err := pca.Scores(z, d, 6)
	require.NoError(t, err)

	cov := describe.CovarianceMatrix(scores)

	n, _ := scores.Dims()
	col := make([]float64, n)
	for j := 0; j < 6; j++ {
		mat.Col(col, j, scores)
		assert.InDelta(t, 0.0, stat.Mean(col, nil), 1e-10, "score column %d mean", j)

		for i := 0; i < 6; i++ {
			if i == j {

				// Each score variance equals its eigenvalue.
				assert.InDelta(t, d.Values[j], cov.At(i, j), 1e-8)
				continue
			}
			assert.InDelta(t, 0.0, cov.At(i, j), 1e-8, "score covariance %d,%d", i, j)
		}
	}
}

func TestLibraryAgreesUpToSign(t *testing.T) {
	m := bloodPressure(t, 800)

	manual, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	z, err := describe.Standardize(m)
	require.NoError(t, err)

	library, err := pca.Library(z)
	require.NoError(t, err)

	for i := range manual.Values {
		assert.InDelta(t, manual.Values[i], library.Values[i], 1e-8)
	}

	assert.NoError(t, pca.SameUpToSign(manual.Vectors, library.Vectors, 1e-8))
}

func TestBloodPressureScenario(t *testing.T) {
	m := bloodPressure(t, 2000)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	props := d.Proportions()

	for i := 1; i < len(props); i++ {
		assert.Greater(t, props[0], props[i], "first component must dominate")
	}

	topThree := props[0] + props[1] + props[2]
	assert.Greater(t, topThree, 0.95, "top three components explain at least 95%%")
}

func TestKaiser(t *testing.T) {
	d := pca.Decomposition{Values: []float64{3.2, 1.4, 0.8, 0.4, 0.2}}
	assert.Equal(t, 2, d.Kaiser())
}

func TestScoresRange(t *testing.T) {
	m := bloodPressure(t, 100)

	d, err := pca.Fit(describe.CorrelationMatrix(m))
	require.NoError(t, err)

	z, err := describe.Standardize(m)
	require.NoError(t, err)

	if _, err := pca.Scores(z, d, 0); err == nil {
		t.Fatal("expected error for k=0")
	}

	if _, err := pca.Scores(z, d, 7); err == nil {
		t.Fatal("expected error for k beyond variable count")
	}
}

func TestSameUpToSignDetectsDifference(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	b := mat.NewDense(2, 2, []float64{-1, 0, 0, 1})
	c := mat.NewDense(2, 2, []float64{0.5, 0, 0, 1})

	assert.NoError(t, pca.SameUpToSign(a, b, 1e-12))
	assert.Error(t, pca.SameUpToSign(a, c, 1e-12))
}
