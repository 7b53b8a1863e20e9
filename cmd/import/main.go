// Catalog importer: loads an xlsx product list into the database.
//
// Usage: go run ./cmd/import -file products.xlsx
package main

import (
	"context"
	"flag"
	"log"

	"lagerbot-backend/internal/config"
	"lagerbot-backend/internal/database"
	"lagerbot-backend/internal/store"
)

func main() {
	file := flag.String("file", "", "path to the xlsx file to import")
	flag.Parse()

	if *file == "" {
		log.Fatal("[FATAL] -file is required")
	}

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	report, err := store.New(db).ImportCatalog(context.Background(), *file)
	if err != nil {
		log.Fatalf("[FATAL] import failed: %v", err)
	}

	log.Printf("import finished: %d products created, %d rows skipped", report.Created, len(report.Skipped))
	for _, name := range report.Skipped {
		log.Printf("skipped: %s", name)
	}
}
