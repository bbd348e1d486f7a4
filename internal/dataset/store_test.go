package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peliculas/internal/dataset"
)

var fixtureFiles = map[string]string{
	"PeliculasPorMesListo.csv": "Title,Month\nToy Story,October\nJumanji,December\nHeat,December\n",
	"PeliculasPorDiaListo.csv": "title,DAY_OF_WEEK\nToy Story,Monday\nJumanji,Friday\n",
	"FuncionVotos.csv":         "\ufefftitle,vote_count,vote_average,extra\nToy Story,5415,7.7,x\nJumanji,2413,6.9,y\ntoy story,10,1.0,z\n",
	"FuncionScore.csv":         "title,release_year,popularity\nToy Story,1995,21.946943\n",
}

func writeFixtures(t *testing.T, overrides map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtureFiles {
		if o, ok := overrides[name]; ok {
			body = o
		}
		if body == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadCSVNormalizesColumns(t *testing.T) {
	store, err := dataset.LoadCSV(writeFixtures(t, nil))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"monthly_releases": 3,
		"daily_releases":   2,
		"vote_stats":       3,
		"score_stats":      1,
	}, store.Stats())

	assert.Equal(t, 2, store.CountEqual(dataset.MonthlyReleases, dataset.ColMonth, "December"))
	assert.Equal(t, 0, store.CountEqual(dataset.MonthlyReleases, dataset.ColMonth, "december"))
	assert.Equal(t, 1, store.CountEqual(dataset.DailyReleases, dataset.ColDayOfWeek, "Friday"))
	assert.Equal(t, []string{"Toy Story", "Jumanji", "toy story"}, store.Column(dataset.VoteStats, dataset.ColTitle))
}

func TestLoadCSVKeepsValuesAsRead(t *testing.T) {
	store, err := dataset.LoadCSV(writeFixtures(t, nil))
	require.NoError(t, err)

	row, ok := store.FirstMatch(dataset.ScoreStats, dataset.ColTitle, func(v string) bool { return v == "Toy Story" })
	require.True(t, ok)
	assert.Equal(t, "1995", row[dataset.ColReleaseYear])
	assert.Equal(t, "21.946943", row[dataset.ColPopularity])
}

func TestFirstMatchReturnsFirstRowInOrder(t *testing.T) {
	store, err := dataset.LoadCSV(writeFixtures(t, nil))
	require.NoError(t, err)

	row, ok := store.FirstMatch(dataset.VoteStats, dataset.ColTitle, func(v string) bool {
		return strings.ToLower(v) == "toy story"
	})
	require.True(t, ok)
	assert.Equal(t, "Toy Story", row[dataset.ColTitle])
	assert.Equal(t, "5415", row[dataset.ColVoteCount])

	_, ok = store.FirstMatch(dataset.VoteStats, dataset.ColTitle, func(string) bool { return false })
	assert.False(t, ok)
}

func TestLoadCSVMissingFile(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"FuncionVotos.csv": ""})

	_, err := dataset.LoadCSV(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrConfiguration))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var cfgErr *dataset.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "vote_stats", cfgErr.Dataset)
}

func TestLoadCSVMissingRequiredColumn(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"FuncionScore.csv": "title,year,popularity\nToy Story,1995,21.9\n",
	})

	_, err := dataset.LoadCSV(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrConfiguration))
	assert.Contains(t, err.Error(), "release_year")
	assert.Contains(t, err.Error(), "score_stats")
}

func TestLoadCSVHeaderOnlyDataset(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"PeliculasPorDiaListo.csv": "title,day_of_week\n",
	})

	store, err := dataset.LoadCSV(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len(dataset.DailyReleases))
	assert.Equal(t, 0, store.CountEqual(dataset.DailyReleases, dataset.ColDayOfWeek, "Monday"))
	assert.Empty(t, store.Column(dataset.DailyReleases, dataset.ColTitle))
}

func TestKindRequiredIsACopy(t *testing.T) {
	cols := dataset.VoteStats.Required()
	cols[0] = "changed"
	assert.Equal(t, []string{"title", "vote_count", "vote_average"}, dataset.VoteStats.Required())
	assert.Equal(t, "FuncionVotos.csv", dataset.VoteStats.File())
}
