package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peliculas/pkg/database"
)

func TestOpenReadOnlyMissingSnapshotCreatesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "peliculas.db")

	_, err := database.OpenReadOnly(database.Config{Path: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "data directory must not be created")
}

func TestOpenReadOnlyRejectsWrites(t *testing.T) {
	cfg := database.Config{Path: filepath.Join(t.TempDir(), "snap.db")}

	rw, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(rw))
	_, err = rw.Exec(`INSERT INTO vote_stats (title, vote_count, vote_average) VALUES ('Heat', '3000', '7.9')`)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	ro, err := database.OpenReadOnly(cfg)
	require.NoError(t, err)
	defer ro.Close()

	var title string
	require.NoError(t, ro.QueryRow(`SELECT title FROM vote_stats`).Scan(&title))
	assert.Equal(t, "Heat", title)

	_, err = ro.Exec(`DELETE FROM vote_stats`)
	assert.Error(t, err)
}
