package stats

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

// Handler serves the /bookings/stats scalar summaries.
type Handler struct {
	loader DatasetLoader
}

func NewHandler(loader DatasetLoader) *Handler {
	return &Handler{loader: loader}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/bookings/stats")
	g.GET("/total_number_of_bookings", h.TotalNumberOfBookings)
	g.GET("/avg_length_of_stay", h.AvgLengthOfStay)
	g.GET("/avg_daily_rate", h.AvgDailyRate)
}

func (h *Handler) TotalNumberOfBookings(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_number_of_bookings": len(t)})
}

func (h *Handler) AvgLengthOfStay(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	mean := t.Mean(func(r *dataset.Record) float64 { return float64(r.LengthOfStay) })
	c.JSON(http.StatusOK, gin.H{"avg_length_of_stay": mean})
}

func (h *Handler) AvgDailyRate(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	mean := t.Mean(func(r *dataset.Record) float64 { return r.ADR })
	c.JSON(http.StatusOK, gin.H{"adr": mean})
}

func (h *Handler) load(c *gin.Context) (dataset.Table, bool) {
	t, err := h.loader.Load()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dataset")
		return nil, false
	}
	return t, true
}
