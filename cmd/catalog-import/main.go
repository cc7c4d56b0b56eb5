package main

import (
	"context"
	"flag"
	"log"

	"github.com/licitatech/tendermatch/internal/seed"
	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog/sqlite"
)

func main() {
	var (
		dbPath   = flag.String("db", "catalog.db", "Catalog database path")
		seedPath = flag.String("seed", "", "Equipment seed YAML file (required)")
	)
	flag.Parse()

	if *seedPath == "" {
		log.Fatal("--seed required")
	}

	ctx := context.Background()

	items, err := seed.LoadFromYAML(*seedPath)
	if err != nil {
		log.Fatal("Failed to load seed file:", err)
	}
	log.Printf("Loaded %d equipment records from %s", len(items), *seedPath)

	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open catalog database:", err)
	}
	defer store.Close()

	imported := 0
	for _, e := range items {
		if _, err := store.Upsert(ctx, e); err != nil {
			log.Printf("Failed to import %s: %v", e.Code, err)
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d/%d records in %s", imported, len(items), *dbPath)
}
