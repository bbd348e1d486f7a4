// Package dataset loads the four movie datasets served by the API and keeps
// them in memory, read-only, for the lifetime of the process.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names after normalization.
const (
	ColTitle       = "title"
	ColMonth       = "month"
	ColDayOfWeek   = "day_of_week"
	ColVoteCount   = "vote_count"
	ColVoteAverage = "vote_average"
	ColReleaseYear = "release_year"
	ColPopularity  = "popularity"
)

// Kind identifies one of the four datasets.
type Kind int

const (
	MonthlyReleases Kind = iota
	DailyReleases
	VoteStats
	ScoreStats
)

type kindInfo struct {
	name     string
	file     string
	required []string
}

var kinds = [...]kindInfo{
	MonthlyReleases: {name: "monthly_releases", file: "PeliculasPorMesListo.csv", required: []string{ColTitle, ColMonth}},
	DailyReleases:   {name: "daily_releases", file: "PeliculasPorDiaListo.csv", required: []string{ColTitle, ColDayOfWeek}},
	VoteStats:       {name: "vote_stats", file: "FuncionVotos.csv", required: []string{ColTitle, ColVoteCount, ColVoteAverage}},
	ScoreStats:      {name: "score_stats", file: "FuncionScore.csv", required: []string{ColTitle, ColReleaseYear, ColPopularity}},
}

// Kinds lists every dataset in load order.
func Kinds() []Kind {
	return []Kind{MonthlyReleases, DailyReleases, VoteStats, ScoreStats}
}

func (k Kind) String() string { return kinds[k].name }

// File is the CSV file name of the dataset inside the data directory.
func (k Kind) File() string { return kinds[k].file }

// Required returns the columns the dataset must carry after normalization.
func (k Kind) Required() []string {
	return append([]string(nil), kinds[k].required...)
}

// ErrConfiguration marks every failure that prevents the store from loading.
var ErrConfiguration = errors.New("dataset configuration")

// ConfigError reports which dataset failed to load and why.
type ConfigError struct {
	Dataset string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Dataset, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

// Row is a single record keyed by normalized column name.
type Row map[string]string

// Store holds the loaded datasets. Frames are never handed out, so the store
// stays immutable and needs no locking.
type Store struct {
	frames [len(kinds)]dataframe.DataFrame
}

// New builds a store from in-memory frames, given in Kinds() order. Column
// names are lowercased and the required columns of each dataset are checked.
func New(monthly, daily, votes, scores dataframe.DataFrame) (*Store, error) {
	s := &Store{}
	for i, df := range []dataframe.DataFrame{monthly, daily, votes, scores} {
		k := Kind(i)
		prepared, err := prepare(k, df)
		if err != nil {
			return nil, err
		}
		s.frames[k] = prepared
	}
	return s, nil
}

// LoadCSV reads the four dataset files from dir.
func LoadCSV(dir string) (*Store, error) {
	frames := make([]dataframe.DataFrame, 0, len(kinds))
	for _, k := range Kinds() {
		df, err := readCSV(filepath.Join(dir, k.File()))
		if err != nil {
			return nil, &ConfigError{Dataset: k.String(), Err: err}
		}
		frames = append(frames, df)
	}
	return New(frames[0], frames[1], frames[2], frames[3])
}

func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: missing header row", path)
	}
	return fromRecords(records[0], records[1:]), nil
}

// fromRecords keeps every value as a string; numeric columns are parsed at
// query time.
func fromRecords(header []string, rows [][]string) dataframe.DataFrame {
	if len(rows) == 0 {
		cols := make([]series.Series, 0, len(header))
		for _, name := range header {
			cols = append(cols, series.New([]string{}, series.String, name))
		}
		return dataframe.New(cols...)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)
	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

func prepare(k Kind, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, &ConfigError{Dataset: k.String(), Err: df.Err}
	}

	for _, name := range df.Names() {
		norm := normalizeColumn(name)
		if norm == name {
			continue
		}
		df = df.Rename(norm, name)
		if df.Err != nil {
			return df, &ConfigError{Dataset: k.String(), Err: fmt.Errorf("rename column %q: %w", name, df.Err)}
		}
	}

	if missing := missingColumns(df.Names(), k.Required()); len(missing) > 0 {
		return df, &ConfigError{
			Dataset: k.String(),
			Err:     fmt.Errorf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}
	return df, nil
}

func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

func missingColumns(have, required []string) []string {
	set := make(map[string]bool, len(have))
	for _, name := range have {
		set[name] = true
	}
	var missing []string
	for _, name := range required {
		if !set[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Len returns the number of rows of a dataset.
func (s *Store) Len(k Kind) int {
	return s.frames[k].Nrow()
}

// Stats returns the row count of every dataset keyed by dataset name.
func (s *Store) Stats() map[string]int {
	out := make(map[string]int, len(kinds))
	for _, k := range Kinds() {
		out[k.String()] = s.Len(k)
	}
	return out
}

// CountEqual counts rows whose column equals value exactly.
func (s *Store) CountEqual(k Kind, column, value string) int {
	if s.frames[k].Nrow() == 0 {
		return 0
	}
	return s.frames[k].Filter(dataframe.F{
		Colname:    column,
		Comparator: series.Eq,
		Comparando: value,
	}).Nrow()
}

// FirstMatch returns the first row, in dataset order, whose column satisfies
// match. Missing values never match.
func (s *Store) FirstMatch(k Kind, column string, match func(string) bool) (Row, bool) {
	if s.frames[k].Nrow() == 0 {
		return nil, false
	}
	sub := s.frames[k].Filter(dataframe.F{
		Colname:    column,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return !el.IsNA() && match(el.String())
		},
	})
	if sub.Err != nil || sub.Nrow() == 0 {
		return nil, false
	}

	row := make(Row, sub.Ncol())
	for _, name := range sub.Names() {
		row[name] = sub.Col(name).Elem(0).String()
	}
	return row, true
}

// Column returns every value of a column in dataset order.
func (s *Store) Column(k Kind, column string) []string {
	col := s.frames[k].Col(column)
	if col.Err != nil {
		return nil
	}
	return col.Records()
}
