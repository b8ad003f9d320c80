// This example shows you how principal components analysis works by doing
// it by hand: eigen-decompose the correlation matrix, sort the eigenvalues,
// and project the standardized data onto the eigenvectors to get scores.
//
// # Running the example:
//
//	$ make example03
//
// # Notes:
//
//  Each eigenvalue is the variance of one derived variable (a component).
//  Dividing by their total gives the proportion of variance each component
//  explains, and those proportions sum to 1 across all components.
//
//  The eigenvectors are the loadings: the weight of each original variable
//  in the component. Their sign is arbitrary. Flipping a column changes
//  nothing about the analysis.
//
//  With six correlated blood pressure readings, the first component is a
//  general blood pressure level and explains most of the variance on its
//  own. The scree plot makes the drop-off visible.

package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/pca"
	"github.com/ardanlabs/stats-training/foundation/plots"
	"github.com/ardanlabs/stats-training/foundation/survey"
)

var (
	bpFile  = "zarf/data/bpx.sas7bdat"
	bpVars  = []string{"BPXSY1", "BPXSY2", "BPXSY3", "BPXDI1", "BPXDI2", "BPXDI3"}
	scree   = "zarf/outputs/example03/scree.png"
	scatter = "zarf/outputs/example03/scores.png"
)

func init() {
	if v := os.Getenv("SURVEY_BP_FILE"); v != "" {
		bpFile = v
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fmt.Printf("\nLoading %s\n", bpFile)

	raw, err := survey.LoadFile(bpFile)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	selected, err := raw.Select(bpVars...)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	complete, err := selected.DropMissing()
	if err != nil {
		return fmt.Errorf("drop missing: %w", err)
	}

	fmt.Printf("Using %d complete cases\n", complete.Rows())

	// -------------------------------------------------------------------------

	corr := describe.CorrelationMatrix(complete.Matrix())

	decomp, err := pca.Fit(corr)
	if err != nil {
		return fmt.Errorf("eigen-decomposition: %w", err)
	}

	props := decomp.Proportions()
	cum := decomp.Cumulative()

	fmt.Printf("\n%-10s %12s %12s %12s\n", "component", "eigenvalue", "proportion", "cumulative")
	for i, v := range decomp.Values {
		fmt.Printf("PC%-8d %12.4f %12.4f %12.4f\n", i+1, v, props[i], cum[i])
	}

	fmt.Printf("\nKaiser criterion retains %d components\n", decomp.Kaiser())

	// -------------------------------------------------------------------------

	// Sanity check the decomposition before using it: the eigenvectors
	// reproduce the correlation matrix and are orthonormal.

	var diff mat.Dense
	diff.Sub(decomp.Reconstruct(), corr)
	fmt.Printf("\nmax |V Λ Vᵀ - R|  = %.2e\n", maxAbs(&diff))

	var vtv mat.Dense
	vtv.Mul(decomp.Vectors.T(), decomp.Vectors)
	p := len(decomp.Values)
	var eyeDiff mat.Dense
	eyeDiff.Sub(&vtv, eye(p))
	fmt.Printf("max |VᵀV - I|     = %.2e\n", maxAbs(&eyeDiff))

	// -------------------------------------------------------------------------

	z, err := describe.Standardize(complete.Matrix())
	if err != nil {
		return fmt.Errorf("standardize: %w", err)
	}

	scores, err := pca.Scores(z, decomp, 2)
	if err != nil {
		return fmt.Errorf("scores: %w", err)
	}

	n, _ := scores.Dims()
	pc1 := make([]float64, n)
	pc2 := make([]float64, n)
	mat.Col(pc1, 0, scores)
	mat.Col(pc2, 1, scores)

	if err := plots.Scree(props, "Blood pressure PCA", scree); err != nil {
		return fmt.Errorf("scree: %w", err)
	}

	if err := plots.Scatter(pc1, pc2, "Component scores", "PC1", "PC2", scatter); err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	fmt.Printf("\nPlots written to %s and %s\n", scree, scatter)

	return nil
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	return m
}

func maxAbs(m mat.Matrix) float64 {
	r, c := m.Dims()

	big := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			big = math.Max(big, math.Abs(m.At(i, j)))
		}
	}

	return big
}
