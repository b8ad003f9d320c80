package smooth_test

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardanlabs/stats-training/foundation/smooth"
)

func TestLowessRecoversLine(t *testing.T) {
	n := 200
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) / 10
		ys[i] = 2*xs[i] + 1
	}

	sx, sy, err := smooth.Lowess(xs, ys, 0.3)
	require.NoError(t, err)
	require.Len(t, sy, n)

	// A local linear fit reproduces a line exactly.
	for i := range sx {
		assert.InDelta(t, 2*sx[i]+1, sy[i], 1e-9)
	}
}

func TestLowessSmoothsNoise(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 9))

	n := 400
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = rng.Float64() * 10
		ys[i] = 0.5*xs[i] + rng.NormFloat64()
	}

	sx, sy, err := smooth.Lowess(xs, ys, 0.4)
	require.NoError(t, err)

	assert.True(t, sort.Float64sAreSorted(sx), "smoothed curve sorted by x")

	// The curve should hug the true trend far more tightly than the noise.
	for i := range sx {
		if sx[i] < 1 || sx[i] > 9 {
			continue
		}
		assert.InDelta(t, 0.5*sx[i], sy[i], 0.5)
	}
}

func TestLowessArguments(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{1, 2, 3, 4}

	_, _, err := smooth.Lowess(xs, ys[:3], 0.5)
	assert.Error(t, err)

	_, _, err = smooth.Lowess(xs[:2], ys[:2], 0.5)
	assert.Error(t, err)

	_, _, err = smooth.Lowess(xs, ys, 0)
	assert.Error(t, err)

	_, _, err = smooth.Lowess(xs, ys, 1.5)
	assert.Error(t, err)
}
