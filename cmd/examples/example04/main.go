// This example shows you that the hand-rolled eigen-decomposition from
// example03 and gonum's packaged principal components routine agree. Any
// disagreement is only a per-column sign, which carries no meaning.
//
// # Running the example:
//
//	$ make example04
//
// # Notes:
//
//  The packaged routine works on the data matrix, not the correlation
//  matrix. Feeding it standardized data makes its covariance equal to the
//  correlation matrix, so the two computations answer the same question.
//
//  Eigenvector signs are implementation-defined. Different libraries, or
//  the same library on different hardware, can flip any column. Treat that
//  as a convention, not a bug.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/pca"
	"github.com/ardanlabs/stats-training/foundation/survey"
)

var (
	bpFile = "zarf/data/bpx.sas7bdat"
	bpVars = []string{"BPXSY1", "BPXSY2", "BPXSY3", "BPXDI1", "BPXDI2", "BPXDI3"}
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

	z, err := describe.Standardize(complete.Matrix())
	if err != nil {
		return fmt.Errorf("standardize: %w", err)
	}

	// -------------------------------------------------------------------------

	manual, err := pca.Fit(describe.CorrelationMatrix(complete.Matrix()))
	if err != nil {
		return fmt.Errorf("manual decomposition: %w", err)
	}

	library, err := pca.Library(z)
	if err != nil {
		return fmt.Errorf("library decomposition: %w", err)
	}

	fmt.Printf("\n%-10s %14s %14s\n", "component", "manual", "library")
	for i := range manual.Values {
		fmt.Printf("PC%-8d %14.6f %14.6f\n", i+1, manual.Values[i], library.Values[i])
	}

	// -------------------------------------------------------------------------

	if err := pca.SameUpToSign(manual.Vectors, library.Vectors, 1e-8); err != nil {
		return fmt.Errorf("loadings disagree beyond sign: %w", err)
	}

	fmt.Print("\nLoadings agree up to per-column sign\n")

	return nil
}
