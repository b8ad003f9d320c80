package factor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ardanlabs/stats-training/foundation/factor"
)

// twoFactorCorr builds a correlation matrix that satisfies a two factor
// model exactly: R = L Lᵀ + diag(uniquenesses).
func twoFactorCorr() (*mat.SymDense, *mat.Dense, []float64) {
	loadings := mat.NewDense(6, 2, []float64{
		0.90, 0.10,
		0.85, 0.15,
		0.80, 0.05,
		0.10, 0.85,
		0.15, 0.80,
		0.05, 0.75,
	})

	p, k := loadings.Dims()

	uniq := make([]float64, p)
	corr := mat.NewSymDense(p, nil)

	for i := 0; i < p; i++ {
		h2 := 0.0
		for m := 0; m < k; m++ {
			h2 += loadings.At(i, m) * loadings.At(i, m)
		}
		uniq[i] = 1 - h2

		for j := i; j < p; j++ {
			v := 0.0
			for m := 0; m < k; m++ {
				v += loadings.At(i, m) * loadings.At(j, m)
			}
			if i == j {
				v = 1
			}
			corr.SetSym(i, j, v)
		}
	}

	return corr, loadings, uniq
}

func TestFitRecoversStructure(t *testing.T) {
	corr, _, uniq := twoFactorCorr()

	model, err := factor.Fit(corr, 2, 500, 1e-8)
	require.NoError(t, err)

	for i, u := range model.Uniquenesses {
		assert.GreaterOrEqual(t, u, 0.0)
		assert.LessOrEqual(t, u, 1.0)
		assert.InDelta(t, uniq[i], u, 0.05, "uniqueness %d", i)
	}

	// The model reproduces the off-diagonal correlation structure.
	res := model.Residuals(corr)
	p, _ := res.Dims()
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if i == j {
				continue
			}
			assert.InDelta(t, 0.0, res.At(i, j), 0.05, "residual %d,%d", i, j)
		}
	}
}

func TestFitCommunalitiesMatchLoadings(t *testing.T) {
	corr, _, _ := twoFactorCorr()

	model, err := factor.Fit(corr, 2, 500, 1e-8)
	require.NoError(t, err)

	p, k := model.Loadings.Dims()
	for i := 0; i < p; i++ {
		h2 := 0.0
		for m := 0; m < k; m++ {
			h2 += model.Loadings.At(i, m) * model.Loadings.At(i, m)
		}
		assert.InDelta(t, h2, model.Communalities[i], 1e-10)
		assert.InDelta(t, 1-h2, model.Uniquenesses[i], 1e-10)
	}
}

func TestFitFactorRange(t *testing.T) {
	corr, _, _ := twoFactorCorr()

	_, err := factor.Fit(corr, 0, 100, 1e-6)
	assert.Error(t, err)

	_, err = factor.Fit(corr, 6, 100, 1e-6)
	assert.Error(t, err)
}

func TestFitNoConvergence(t *testing.T) {
	corr, _, _ := twoFactorCorr()

	_, err := factor.Fit(corr, 2, 1, 1e-15)
	assert.Error(t, err)

	// The error reports how far the communalities were still moving.
	assert.Contains(t, err.Error(), "last change")
}
