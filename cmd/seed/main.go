package main

import (
	"context"
	"log"

	"hotelbookings/internal/config"
	"hotelbookings/internal/database"
	"hotelbookings/internal/dataset"
	"hotelbookings/internal/repository"
)

// Reloads the bookings table from the CSV, wiping any CRUD state.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	repo := repository.NewBookingRepository(db)
	ctx := context.Background()

	log.Println("Cleaning up old bookings...")
	if err := repo.Reset(ctx); err != nil {
		log.Fatal("Reset failed:", err)
	}

	rows, err := dataset.NewLoader(cfg.CSVPath).Load()
	if err != nil {
		log.Fatal("CSV load failed:", err)
	}

	if err := repo.BulkImport(ctx, rows); err != nil {
		log.Fatal("Import failed:", err)
	}
	log.Printf("Seed complete: %d bookings imported", len(rows))
}
