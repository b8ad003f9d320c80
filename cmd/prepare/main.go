// This program stages the raw survey files into a duckdb database so the
// examples and any ad hoc SQL can work against one store. Each staged table
// is recorded in a loads metadata table with a unique load id, the source
// path, the row count, and a timestamp.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/stats-training/foundation/survey"
	"github.com/ardanlabs/stats-training/foundation/surveydb"
)

var (
	configFile = "zarf/config/analysis.yaml"
	dbFile     = "zarf/data/survey.duckdb"
)

func init() {
	if v := os.Getenv("ANALYSIS_CONFIG"); v != "" {
		configFile = v
	}

	if v := os.Getenv("SURVEY_DB"); v != "" {
		dbFile = v
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := survey.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("\nStaging %d survey files into %s\n", len(cfg.Sources), dbFile)

	db, err := surveydb.Open(dbFile)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	// -------------------------------------------------------------------------

	for _, src := range cfg.Sources {
		t, err := survey.LoadFile(src.Path)
		if err != nil {
			return fmt.Errorf("load %s: %w", src.Path, err)
		}

		selected, err := t.Select(append([]string{cfg.Subject}, src.Variables...)...)
		if err != nil {
			return fmt.Errorf("select %s: %w", src.Table, err)
		}

		loadID, err := surveydb.LoadTable(ctx, db, src.Table, src.Path, selected)
		if err != nil {
			return fmt.Errorf("stage %s: %w", src.Table, err)
		}

		fmt.Printf("- %s: %d rows, load %s\n", src.Table, selected.Rows(), loadID)
	}

	return nil
}
