package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// LoadSQLite builds a store from a snapshot written by WriteSQLite. Rows are
// read in rowid order, which is the order they had in the source files.
func LoadSQLite(ctx context.Context, db *sql.DB) (*Store, error) {
	frames := make([]dataframe.DataFrame, 0, len(kinds))
	for _, k := range Kinds() {
		df, err := readTable(ctx, db, k.String())
		if err != nil {
			return nil, &ConfigError{Dataset: k.String(), Err: err}
		}
		frames = append(frames, df)
	}
	return New(frames[0], frames[1], frames[2], frames[3])
}

func readTable(ctx context.Context, db *sql.DB, table string) (dataframe.DataFrame, error) {
	rows, err := db.QueryContext(ctx, `SELECT * FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("columns %s: %w", table, err)
	}

	var records [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("scan %s: %w", table, err)
		}

		record := make([]string, len(values))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("rows %s: %w", table, err)
	}

	return fromRecords(header, records), nil
}

// WriteSQLite replaces the snapshot tables with the store contents in a
// single transaction. Only the required columns are kept.
func (s *Store) WriteSQLite(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range Kinds() {
		if err := s.writeTable(ctx, tx, k); err != nil {
			return fmt.Errorf("write %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *Store) writeTable(ctx context.Context, tx *sql.Tx, k Kind) error {
	table := k.String()
	cols := k.Required()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO `+table+` (`+strings.Join(cols, ", ")+`) VALUES (`+placeholders+`)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := make([][]string, len(cols))
	for i, col := range cols {
		values[i] = s.Column(k, col)
	}

	args := make([]any, len(cols))
	for row := 0; row < s.Len(k); row++ {
		for i := range cols {
			args[i] = values[i][row]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes every dataset into dir using the file names LoadCSV expects.
func (s *Store) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, k := range Kinds() {
		if err := writeFrame(filepath.Join(dir, k.File()), s.frames[k]); err != nil {
			return fmt.Errorf("write %s: %w", k, err)
		}
	}
	return nil
}

func writeFrame(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
