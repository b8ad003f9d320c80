// This example shows you factor analysis on the body measures. Unlike PCA,
// the factor model is approximate: it explains the correlations with a small
// number of shared factors plus a per-variable uniqueness, and it has to be
// fit iteratively.
//
// # Running the example:
//
//	$ make example05
//
// # Notes:
//
//  A loading near 1 means the factor almost fully drives that variable. The
//  uniqueness is the leftover: variance the factors cannot explain, always
//  between 0 and 1. Height tends to separate from the weight-driven
//  variables, which is why two factors fit the body measures well.
//
//  The fit is convergence-dependent. If the communalities are still moving
//  after the iteration cap, the fit fails rather than reporting half-baked
//  numbers.

package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/factor"
	"github.com/ardanlabs/stats-training/foundation/survey"
)

var (
	bodyFile = "zarf/data/bmx.sas7bdat"
	bodyVars = []string{"BMXWT", "BMXHT", "BMXBMI", "BMXLEG", "BMXARML", "BMXARMC", "BMXWAIST"}

	factors = 2
	maxIter = 200
	tol     = 1e-6
)

func init() {
	if v := os.Getenv("SURVEY_BODY_FILE"); v != "" {
		bodyFile = v
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fmt.Printf("\nLoading %s\n", bodyFile)

	raw, err := survey.LoadFile(bodyFile)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	selected, err := raw.Select(bodyVars...)
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

	model, err := factor.Fit(corr, factors, maxIter, tol)
	if err != nil {
		return fmt.Errorf("factor fit: %w", err)
	}

	fmt.Printf("\nConverged in %d iterations\n", model.Iterations)

	fmt.Printf("\n%-10s", "variable")
	for m := 0; m < factors; m++ {
		fmt.Printf(" %10s", fmt.Sprintf("factor%d", m+1))
	}
	fmt.Printf(" %12s\n", "uniqueness")

	for i, name := range bodyVars {
		fmt.Printf("%-10s", name)
		for m := 0; m < factors; m++ {
			fmt.Printf(" %10.4f", model.Loadings.At(i, m))
		}
		fmt.Printf(" %12.4f\n", model.Uniquenesses[i])
	}

	// -------------------------------------------------------------------------

	res := model.Residuals(corr)
	fmt.Printf("\nmax |R - (L Lᵀ + Ψ)| = %.4f\n", maxAbs(res))

	return nil
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
