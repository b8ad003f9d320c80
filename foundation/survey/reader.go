package survey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kshedden/datareader"
	"golang.org/x/sync/errgroup"
)

// LoadFile reads a survey data file into a table. The file format is chosen
// by extension: .sas7bdat (SAS), .dta (Stata), or .csv. Columns that cannot
// be represented as float64 are skipped.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var series []*datareader.Series

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".sas7bdat":
		rdr, err := datareader.NewSAS7BDATReader(f)
		if err != nil {
			return Table{}, fmt.Errorf("sas reader: %w", err)
		}
		rdr.TrimStrings = true
		rdr.ConvertDates = true

		series, err = rdr.Read(-1)
		if err != nil {
			return Table{}, fmt.Errorf("sas read: %w", err)
		}

	case ".dta":
		rdr, err := datareader.NewStataReader(f)
		if err != nil {
			return Table{}, fmt.Errorf("stata reader: %w", err)
		}

		series, err = rdr.Read(-1)
		if err != nil {
			return Table{}, fmt.Errorf("stata read: %w", err)
		}

	case ".csv":
		rdr := datareader.NewCSVReader(f)
		rdr.HasHeader = true

		series, err = rdr.Read(-1)
		if err != nil {
			return Table{}, fmt.Errorf("csv read: %w", err)
		}

	default:
		return Table{}, fmt.Errorf("unsupported file extension %q", ext)
	}

	return fromSeries(series)
}

// LoadFiles reads several survey files concurrently and returns the tables
// in the same order as the given paths.
func LoadFiles(paths ...string) ([]Table, error) {
	tables := make([]Table, len(paths))

	var g errgroup.Group

	for i, path := range paths {
		g.Go(func() error {
			t, err := LoadFile(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			tables[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return tables, nil
}

func fromSeries(series []*datareader.Series) (Table, error) {
	var cols []Column

	for _, s := range series {
		data, missing, err := s.AsFloat64Slice()
		if err != nil {

			// Non numeric column, the analysis has no use for it.
			continue
		}

		if missing == nil {
			missing = make([]bool, len(data))
		}

		cols = append(cols, Column{
			Name:    s.Name,
			Data:    data,
			Missing: missing,
		})
	}

	if len(cols) == 0 {
		return Table{}, fmt.Errorf("no numeric columns in file")
	}

	return Table{Columns: cols}, nil
}
