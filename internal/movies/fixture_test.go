package movies_test

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"peliculas/internal/dataset"
	"peliculas/internal/movies"
)

func frame(records ...[]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

// newTestService builds a service over small fixture tables. Column names are
// mixed case on purpose.
func newTestService(t *testing.T) *movies.Service {
	t.Helper()

	store, err := dataset.New(
		frame(
			[]string{"Title", "Month"},
			[]string{"Toy Story", "October"},
			[]string{"Jumanji", "December"},
			[]string{"Heat", "December"},
			[]string{"Sabrina", "december"},
		),
		frame(
			[]string{"title", "day_of_week"},
			[]string{"Toy Story", "Monday"},
			[]string{"Jumanji", "Friday"},
			[]string{"Heat", "Friday"},
			[]string{"Sabrina", "Wednesday"},
		),
		frame(
			[]string{"TITLE", "Vote_Count", "Vote_Average"},
			[]string{"Toy Story", "5415", "7.7"},
			[]string{"Inception", "2000000", "8.8"},
			[]string{"Obscure Film", "1999", "9.9"},
			[]string{"Threshold", "2000", "7.256"},
			[]string{"Float Count", "2500.0", "6.5"},
			[]string{"toy story", "12", "1.0"},
			[]string{"Broken", "lots", "5.0"},
		),
		frame(
			[]string{"title", "release_year", "popularity"},
			[]string{"Toy Story", "1995", "21.3"},
			[]string{"Jumanji", "1995.0", "17.015539"},
			[]string{"TOY STORY", "2020", "1.0"},
		),
	)
	require.NoError(t, err)
	return movies.NewService(store)
}
