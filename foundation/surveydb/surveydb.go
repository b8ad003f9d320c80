// Package surveydb provides basic duckdb support for staging survey tables
// and joining two variable sets on the subject identifier.
package surveydb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ardanlabs/stats-training/foundation/survey"
)

// Open opens (or creates) a duckdb database at the given path. An empty path
// opens an in-memory database.
func Open(dbPath string) (*sqlx.DB, error) {
	connector, err := duckdb.NewConnector(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating connector: %w", err)
	}

	db := sqlx.NewDb(sql.OpenDB(connector), "duckdb")

	if _, err := db.Exec(loadsTableSQL()); err != nil {
		return nil, fmt.Errorf("error creating loads table: %w", err)
	}

	return db, nil
}

// LoadTable stages a survey table into the database under the given name,
// replacing any previous load of that name, and records the load in the
// loads metadata table. The returned id identifies this load.
func LoadTable(ctx context.Context, db *sqlx.DB, name string, source string, t survey.Table) (string, error) {
	names := t.Names()

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
		return "", fmt.Errorf("error dropping table: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL(name, names)); err != nil {
		return "", fmt.Errorf("error creating table: %w", err)
	}

	// -------------------------------------------------------------------------

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error starting tx: %w", err)
	}
	defer tx.Rollback()

	insert := insertSQL(name, len(names))

	// Masked entries are staged as SQL NULL so the mask survives the
	// round trip. Stata files mark missings with sentinel values, so the
	// raw float can look like real data.
	args := make([]any, len(names))
	for i := 0; i < t.Rows(); i++ {
		for j, c := range t.Columns {
			if c.Missing[i] {
				args[j] = nil
				continue
			}
			args[j] = c.Data[i]
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			return "", fmt.Errorf("error inserting row %d: %w", i, err)
		}
	}

	// -------------------------------------------------------------------------

	loadID := uuid.NewString()

	const record = "INSERT INTO loads VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, record, loadID, name, source, t.Rows(), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("error recording load: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("error committing tx: %w", err)
	}

	return loadID, nil
}

// JoinBySubject inner joins two staged tables on the subject identifier and
// returns the matched rows as a new table. The subject column comes first,
// followed by the left variables, then the right variables.
func JoinBySubject(ctx context.Context, db *sqlx.DB, subject string, left string, leftVars []string, right string, rightVars []string) (survey.Table, error) {
	query := joinSQL(subject, left, leftVars, right, rightVars)

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return survey.Table{}, fmt.Errorf("error querying join: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 1+len(leftVars)+len(rightVars))
	names = append(names, subject)
	names = append(names, leftVars...)
	names = append(names, rightVars...)

	cols := make([]survey.Column, len(names))
	for i, name := range names {
		cols[i] = survey.Column{Name: name}
	}

	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return survey.Table{}, fmt.Errorf("error scanning row: %w", err)
		}

		for j, v := range vals {
			switch f := v.(type) {
			case float64:
				cols[j].Data = append(cols[j].Data, f)
				cols[j].Missing = append(cols[j].Missing, false)
			case nil:
				cols[j].Data = append(cols[j].Data, math.NaN())
				cols[j].Missing = append(cols[j].Missing, true)
			default:
				return survey.Table{}, fmt.Errorf("column %s: unexpected type %T", names[j], v)
			}
		}
	}

	if err := rows.Err(); err != nil {
		return survey.Table{}, fmt.Errorf("error reading rows: %w", err)
	}

	t := survey.Table{Columns: cols}

	if t.Rows() == 0 {
		return survey.Table{}, fmt.Errorf("join of %s and %s matched no subjects", left, right)
	}

	return t, nil
}

// =============================================================================

func loadsTableSQL() string {
	return `
		CREATE TABLE IF NOT EXISTS loads (
			load_id    VARCHAR(36),
			table_name VARCHAR(64),
			source     VARCHAR(256),
			row_count  INTEGER,
			created_at TIMESTAMP
		)`
}

func createTableSQL(name string, columns []string) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s DOUBLE", c)
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
}

func insertSQL(name string, columns int) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", columns), ", ")

	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, marks)
}

func joinSQL(subject string, left string, leftVars []string, right string, rightVars []string) string {
	sel := make([]string, 0, 1+len(leftVars)+len(rightVars))
	sel = append(sel, fmt.Sprintf("a.%s", subject))
	for _, v := range leftVars {
		sel = append(sel, fmt.Sprintf("a.%s", v))
	}
	for _, v := range rightVars {
		sel = append(sel, fmt.Sprintf("b.%s", v))
	}

	return fmt.Sprintf("SELECT %s FROM %s a INNER JOIN %s b ON a.%s = b.%s ORDER BY a.%s",
		strings.Join(sel, ", "), left, right, subject, subject, subject)
}
