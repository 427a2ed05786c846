package analysis

import (
	"net/http"

	"hotelbookings/internal/dataset"
	"hotelbookings/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// DatasetLoader produces a freshly derived table per request.
type DatasetLoader interface {
	Load() (dataset.Table, error)
}

// Handler serves the /bookings/analysis frequency breakdowns.
type Handler struct {
	loader DatasetLoader
}

func NewHandler(loader DatasetLoader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/bookings/analysis")
	g.GET("/top_countries_bookings", h.TopCountriesBookings)
	g.GET("/total_bookings_by_arrival_month", h.TotalBookingsByArrivalMonth)
	g.GET("/top_popular_meal_packages", h.TopPopularMealPackages)
}

// TopCountriesBookings returns the five countries with the most
// bookings and their counts.
func (h *Handler) TopCountriesBookings(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, topCounts(t, func(r *dataset.Record) string { return r.Country }))
}

// TotalBookingsByArrivalMonth counts bookings per arrival month name.
func (h *Handler) TotalBookingsByArrivalMonth(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, t.CountBy(func(r *dataset.Record) string { return r.ArrivalDateMonth }))
}

// TopPopularMealPackages returns the five most frequent meal packages
// and their counts.
func (h *Handler) TopPopularMealPackages(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, topCounts(t, func(r *dataset.Record) string { return r.Meal }))
}

func topCounts(t dataset.Table, key func(*dataset.Record) string) map[string]int {
	out := make(map[string]int)
	for _, vc := range t.TopN(key, 5) {
		out[vc.Value] = vc.Count
	}
	return out
}

func (h *Handler) load(c *gin.Context) (dataset.Table, bool) {
	t, err := h.loader.Load()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dataset")
		return nil, false
	}
	return t, true
}
