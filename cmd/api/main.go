package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelbookings/internal/config"
	"hotelbookings/internal/database"
	"hotelbookings/internal/dataset"
	"hotelbookings/internal/middleware"
	"hotelbookings/internal/modules/analysis"
	"hotelbookings/internal/modules/auth"
	"hotelbookings/internal/modules/booking"
	"hotelbookings/internal/modules/stats"
	jwtsvc "hotelbookings/internal/pkg/jwt"
	"hotelbookings/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	loader := dataset.NewLoader(cfg.CSVPath)

	if err := seedIfEmpty(bookingRepo, loader); err != nil {
		log.Fatal("Seed failed:", err)
	}

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	authHandler := auth.NewHandler(cfg.Admin, j)
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, loader))
	statsHandler := stats.NewHandler(loader)
	analysisHandler := analysis.NewHandler(loader)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hotel Booking API"})
	})

	root := r.Group("")
	{
		authHandler.RegisterRoutes(root)
		bookingHandler.RegisterRoutes(root, middleware.RequireAdmin(cfg.Admin, j))
		statsHandler.RegisterRoutes(root)
		analysisHandler.RegisterRoutes(root)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// seedIfEmpty imports the CSV once, on first boot against a fresh
// database. Subsequent runs keep whatever CRUD state has accumulated.
func seedIfEmpty(repo *repository.BookingRepository, loader *dataset.Loader) error {
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	rows, err := loader.Load()
	if err != nil {
		return err
	}
	log.Printf("Seeding %d bookings from CSV...", len(rows))
	return repo.BulkImport(ctx, rows)
}
