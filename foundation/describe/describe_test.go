package describe_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ardanlabs/stats-training/foundation/describe"
)

func randomMatrix(n, p int) *mat.Dense {
	rng := rand.New(rand.NewPCG(11, 23))

	m := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			m.Set(i, j, 10*float64(j)+5*rng.NormFloat64())
		}
	}

	return m
}

func TestSummarize(t *testing.T) {
	m := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	summaries, err := describe.Summarize(m, []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, "a", summaries[0].Name)
	assert.Equal(t, 4, summaries[0].N)
	assert.InDelta(t, 2.5, summaries[0].Mean, 1e-12)
	assert.InDelta(t, 1.0, summaries[0].Min, 1e-12)
	assert.InDelta(t, 4.0, summaries[0].Max, 1e-12)
	assert.InDelta(t, 25.0, summaries[1].Mean, 1e-12)

	_, err = describe.Summarize(m, []string{"a"})
	assert.Error(t, err)
}

func TestCorrelationMatrixInvariants(t *testing.T) {
	m := randomMatrix(200, 4)

	corr := describe.CorrelationMatrix(m)

	p := corr.SymmetricDim()
	for i := 0; i < p; i++ {
		assert.InDelta(t, 1.0, corr.At(i, i), 1e-12, "diagonal %d", i)

		for j := 0; j < p; j++ {
			assert.GreaterOrEqual(t, corr.At(i, j), -1.0)
			assert.LessOrEqual(t, corr.At(i, j), 1.0)
			assert.InDelta(t, corr.At(j, i), corr.At(i, j), 1e-12)
		}
	}
}

func TestStandardize(t *testing.T) {
	m := randomMatrix(300, 3)

	z, err := describe.Standardize(m)
	require.NoError(t, err)

	n, p := z.Dims()
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, z)

		mean, std := stat.MeanStdDev(col, nil)
		assert.InDelta(t, 0.0, mean, 1e-10)
		assert.InDelta(t, 1.0, std, 1e-10)
	}
}

func TestStandardizeZeroVariance(t *testing.T) {
	m := mat.NewDense(5, 2, []float64{
		1, 7,
		2, 7,
		3, 7,
		4, 7,
		5, 7,
	})

	_, err := describe.Standardize(m)
	assert.Error(t, err)
}

func TestStandardizedCovarianceIsCorrelation(t *testing.T) {
	m := randomMatrix(500, 3)

	corr := describe.CorrelationMatrix(m)

	z, err := describe.Standardize(m)
	require.NoError(t, err)

	cov := describe.CovarianceMatrix(z)

	p := corr.SymmetricDim()
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			assert.InDelta(t, corr.At(i, j), cov.At(i, j), 1e-10)
		}
	}
}
