// This example shows you canonical correlation analysis between the blood
// pressure readings and the body measures. The two variable sets live in
// different files, so the first step is matching subjects: both tables are
// staged into duckdb and inner joined on the SEQN subject id.
//
// # Running the example:
//
//	$ make example06
//
// # Notes:
//
//  CCA finds one linear combination per set such that the two combinations
//  correlate as strongly as possible, then repeats in the orthogonal
//  complement. The first canonical correlation is the headline number: the
//  strongest linear relationship between "blood pressure as a whole" and
//  "body size as a whole".

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/ardanlabs/stats-training/foundation/cca"
	"github.com/ardanlabs/stats-training/foundation/plots"
	"github.com/ardanlabs/stats-training/foundation/survey"
	"github.com/ardanlabs/stats-training/foundation/surveydb"
)

var (
	bpFile   = "zarf/data/bpx.sas7bdat"
	bodyFile = "zarf/data/bmx.sas7bdat"

	subject  = "SEQN"
	bpVars   = []string{"BPXSY1", "BPXSY2", "BPXSY3", "BPXDI1", "BPXDI2", "BPXDI3"}
	bodyVars = []string{"BMXWT", "BMXHT", "BMXBMI", "BMXLEG", "BMXARML", "BMXARMC", "BMXWAIST"}

	scatter = "zarf/outputs/example06/variates.png"
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

	fmt.Print("Staging tables into duckdb\n")

	db, err := surveydb.Open("")
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	stage := []struct {
		name string
		path string
		vars []string
		tbl  survey.Table
	}{
		{name: "bpx", path: bpFile, vars: bpVars, tbl: tables[0]},
		{name: "bmx", path: bodyFile, vars: bodyVars, tbl: tables[1]},
	}

	for _, s := range stage {
		selected, err := s.tbl.Select(append([]string{subject}, s.vars...)...)
		if err != nil {
			return fmt.Errorf("select %s: %w", s.name, err)
		}

		loadID, err := surveydb.LoadTable(ctx, db, s.name, s.path, selected)
		if err != nil {
			return fmt.Errorf("stage %s: %w", s.name, err)
		}

		fmt.Printf("- %s staged: load %s\n", s.name, loadID)
	}

	// -------------------------------------------------------------------------

	joined, err := surveydb.JoinBySubject(ctx, db, subject, "bpx", bpVars, "bmx", bodyVars)
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	complete, err := joined.DropMissing()
	if err != nil {
		return fmt.Errorf("drop missing: %w", err)
	}

	fmt.Printf("\n%d subjects appear in both files with complete data\n", complete.Rows())

	bp, err := complete.Select(bpVars...)
	if err != nil {
		return fmt.Errorf("select bp: %w", err)
	}

	body, err := complete.Select(bodyVars...)
	if err != nil {
		return fmt.Errorf("select body: %w", err)
	}

	// -------------------------------------------------------------------------

	result, err := cca.Fit(bp.Matrix(), body.Matrix())
	if err != nil {
		return fmt.Errorf("cca: %w", err)
	}

	fmt.Printf("\n%-10s %12s\n", "pair", "correlation")
	for i, r := range result.Correlations {
		fmt.Printf("CV%-8d %12.4f\n", i+1, r)
	}

	fmt.Printf("\nFirst blood pressure loading vector:\n%v\n",
		mat.Formatted(result.Left.ColView(0), mat.Squeeze()))
	fmt.Printf("\nFirst body measures loading vector:\n%v\n",
		mat.Formatted(result.Right.ColView(0), mat.Squeeze()))

	// -------------------------------------------------------------------------

	n, _ := result.LeftScores.Dims()
	u := make([]float64, n)
	v := make([]float64, n)
	mat.Col(u, 0, result.LeftScores)
	mat.Col(v, 0, result.RightScores)

	if err := plots.Scatter(u, v, "First canonical pair", "blood pressure variate", "body variate", scatter); err != nil {
		return fmt.Errorf("scatter: %w", err)
	}

	fmt.Printf("\nScatter written to %s\n", scatter)

	return nil
}
