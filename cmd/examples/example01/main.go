// This example shows you how to load the two survey data files, select the
// variables we care about, and reduce them to complete cases. Every later
// example starts from this exact pipeline.
//
// # Running the example:
//
//	$ make example01
//
// # Notes:
//
//  The blood pressure file carries three systolic and three diastolic
//  readings per subject. The body measures file carries weight, height, BMI
//  and limb measurements. Both key their rows by the SEQN subject id.
//
//  Rows with any missing value in the selected variables are dropped. That
//  is the only missing-data handling in this entire analysis: no imputation,
//  no partial cases.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/stats-training/foundation/describe"
	"github.com/ardanlabs/stats-training/foundation/survey"
)

var configFile = "zarf/config/analysis.yaml"

func init() {
	if v := os.Getenv("ANALYSIS_CONFIG"); v != "" {
		configFile = v
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := survey.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("\nLoading %d survey files\n", len(cfg.Sources))

	paths := make([]string, len(cfg.Sources))
	for i, src := range cfg.Sources {
		paths[i] = src.Path
	}

	tables, err := survey.LoadFiles(paths...)
	if err != nil {
		return fmt.Errorf("load files: %w", err)
	}

	// -------------------------------------------------------------------------

	for i, src := range cfg.Sources {
		raw := tables[i]

		fmt.Printf("\n%s: %d rows, %d numeric columns\n", src.Table, raw.Rows(), len(raw.Columns))

		selected, err := raw.Select(append([]string{cfg.Subject}, src.Variables...)...)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}

		complete, err := selected.DropMissing()
		if err != nil {
			return fmt.Errorf("drop missing: %w", err)
		}

		fmt.Printf("%s: %d complete cases after dropping missing rows\n\n", src.Table, complete.Rows())

		// ---------------------------------------------------------------------

		analysis, err := complete.Select(src.Variables...)
		if err != nil {
			return fmt.Errorf("select variables: %w", err)
		}

		summaries, err := describe.Summarize(analysis.Matrix(), analysis.Names())
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		fmt.Printf("%-10s %8s %10s %10s %10s %10s\n", "variable", "n", "mean", "std", "min", "max")
		for _, s := range summaries {
			fmt.Printf("%-10s %8d %10.3f %10.3f %10.3f %10.3f\n", s.Name, s.N, s.Mean, s.Std, s.Min, s.Max)
		}
	}

	return nil
}
