// This example shows you how to compute the correlation and covariance
// matrices of the blood pressure readings and render the correlation matrix
// as a heatmap.
//
// # Running the example:
//
//	$ make example02
//
// # Notes:
//
//  The correlation matrix is the covariance matrix of the standardized
//  variables. Its diagonal is exactly 1 and every off-diagonal entry sits in
//  [-1, 1]. The three systolic readings correlate strongly with each other,
//  the three diastolic readings do too, and the two blocks correlate more
//  weakly with each other. That block structure is what PCA will exploit in
//  the next example.

package main

import (
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/plots"
	"github.com/ardanlabs/stats-training/foundation/survey"
)

var (
	bpFile  = "zarf/data/bpx.sas7bdat"
	bpVars  = []string{"BPXSY1", "BPXSY2", "BPXSY3", "BPXDI1", "BPXDI2", "BPXDI3"}
	heatmap = "zarf/outputs/example02/correlation.png"
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

	m := complete.Matrix()

	corr := describe.CorrelationMatrix(m)
	cov := describe.CovarianceMatrix(m)

	fmt.Printf("\nCorrelation matrix:\n%v\n", mat.Formatted(corr, mat.Prefix(""), mat.Squeeze()))
	fmt.Printf("\nCovariance matrix:\n%v\n", mat.Formatted(cov, mat.Prefix(""), mat.Squeeze()))

	// -------------------------------------------------------------------------

	if err := plots.Heatmap(corr, complete.Names(), "Blood pressure correlations", heatmap); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}

	fmt.Printf("\nHeatmap written to %s\n", heatmap)

	return nil
}
