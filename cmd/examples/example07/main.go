// This example shows you the visualization pass of the analysis: raw
// scatterplots of paired readings and smoothed trend overlays that make the
// relationships visible through the noise.
//
// # Running the example:
//
//	$ make example07
//
// # Notes:
//
//  The smoother is lowess: at every point, a weighted linear regression over
//  the nearest fraction of the data. A span of 0.3 keeps the curve honest
//  without chasing individual subjects.
//
//  Nothing here feeds back into the numbers. Plots are presentation only.

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/stats-training/foundation/plots"
	"github.com/ardanlabs/stats-training/foundation/survey"
	"github.com/ardanlabs/stats-training/foundation/surveydb"
)

var (
	bpFile   = "zarf/data/bpx.sas7bdat"
	bodyFile = "zarf/data/bmx.sas7bdat"

	subject = "SEQN"
	span    = 0.3

	outputDir = "zarf/outputs/example07"
)

func init() {
	if v := os.Getenv("SURVEY_BP_FILE"); v != "" {
		bpFile = v
	}

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
	ctx := context.Background()

	fmt.Print("\nLoading survey files\n")

	tables, err := survey.LoadFiles(bpFile, bodyFile)
	if err != nil {
		return fmt.Errorf("load files: %w", err)
	}

	// -------------------------------------------------------------------------

	// First and second systolic readings against each other. The repeat
	// readings sit tightly along the diagonal.

	bp, err := tables[0].Select("BPXSY1", "BPXSY2")
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	bp, err = bp.DropMissing()
	if err != nil {
		return fmt.Errorf("drop missing: %w", err)
	}

	sy1, _ := bp.Column("BPXSY1")
	sy2, _ := bp.Column("BPXSY2")

	file := outputDir + "/systolic_repeats.png"
	if err := plots.ScatterSmooth(sy1.Data, sy2.Data, span, "Repeat systolic readings", "BPXSY1", "BPXSY2", file); err != nil {
		return fmt.Errorf("scatter smooth: %w", err)
	}

	fmt.Printf("- %s\n", file)

	// -------------------------------------------------------------------------

	// Systolic pressure against BMI needs both files joined by subject.

	db, err := surveydb.Open("")
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	sel0, err := tables[0].Select(subject, "BPXSY1")
	if err != nil {
		return fmt.Errorf("select bp: %w", err)
	}

	sel1, err := tables[1].Select(subject, "BMXBMI")
	if err != nil {
		return fmt.Errorf("select body: %w", err)
	}

	if _, err := surveydb.LoadTable(ctx, db, "bpx", bpFile, sel0); err != nil {
		return fmt.Errorf("stage bpx: %w", err)
	}

	if _, err := surveydb.LoadTable(ctx, db, "bmx", bodyFile, sel1); err != nil {
		return fmt.Errorf("stage bmx: %w", err)
	}

	joined, err := surveydb.JoinBySubject(ctx, db, subject, "bpx", []string{"BPXSY1"}, "bmx", []string{"BMXBMI"})
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	joined, err = joined.DropMissing()
	if err != nil {
		return fmt.Errorf("drop missing: %w", err)
	}

	sy, _ := joined.Column("BPXSY1")
	bmi, _ := joined.Column("BMXBMI")

	file = outputDir + "/systolic_bmi.png"
	if err := plots.ScatterSmooth(bmi.Data, sy.Data, span, "Systolic pressure by BMI", "BMI", "BPXSY1", file); err != nil {
		return fmt.Errorf("scatter smooth: %w", err)
	}

	fmt.Printf("- %s\n", file)

	return nil
}
