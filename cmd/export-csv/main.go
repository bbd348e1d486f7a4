package main

import (
	"context"
	"flag"
	"log"
	"time"

	"peliculas/internal/dataset"
	"peliculas/pkg/database"
)

func main() {
	var (
		dbPath = flag.String("db", database.DefaultConfig().Path, "input SQLite snapshot path")
		outDir = flag.String("out", "data/export", "output directory for the dataset CSV files")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.OpenReadOnly(database.Config{Path: *dbPath})
	if err != nil {
		log.Fatalf("open snapshot failed: %v", err)
	}
	defer db.Close()

	store, err := dataset.LoadSQLite(ctx, db)
	if err != nil {
		log.Fatalf("load snapshot failed: %v", err)
	}
	if err := store.WriteCSV(*outDir); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("exported %v from %s to %s", store.Stats(), *dbPath, *outDir)
}
