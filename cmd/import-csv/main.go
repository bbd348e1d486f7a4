package main

import (
	"context"
	"flag"
	"log"
	"time"

	"peliculas/internal/dataset"
	"peliculas/pkg/database"
)

// import-csv copies the four CSV datasets into a SQLite snapshot that the
// API server can boot from with datasets.source = "sqlite".
func main() {
	var (
		dataDir = flag.String("data", "data", "directory holding the dataset CSV files")
		dbPath  = flag.String("db", database.DefaultConfig().Path, "output SQLite snapshot path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := dataset.LoadCSV(*dataDir)
	if err != nil {
		log.Fatalf("load datasets failed: %v", err)
	}

	db := database.MustOpen(database.Config{Path: *dbPath})
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	if err := store.WriteSQLite(ctx, db); err != nil {
		log.Fatalf("write snapshot failed: %v", err)
	}

	log.Printf("imported %v from %s into %s", store.Stats(), *dataDir, *dbPath)
}
