package booking

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbookings/internal/pkg/response"
	"hotelbookings/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the /bookings surface. requireAdmin guards the
// credential-gated analytics endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	b := rg.Group("/bookings")

	b.GET("", h.List)
	b.POST("", h.Create)
	b.GET("/search", h.Search)
	b.GET("/nationality", h.ByNationality)

	b.GET("/popular_meal_package", h.PopularMealPackage)
	b.GET("/total_revenue", h.TotalRevenue)
	b.GET("/top_countries", h.TopCountries)
	b.GET("/avg_length_of_stay", h.AvgLengthOfStay)
	b.GET("/repeated_guests_percentage", h.RepeatedGuestsPercentage)
	b.GET("/total_guests_by_year", h.TotalGuestsByYear)

	gated := b.Group("/")
	gated.Use(requireAdmin)
	{
		gated.GET("avg_daily_rate_resort", h.AvgDailyRateResort)
		gated.GET("count_by_hotel_meal", h.CountByHotelMeal)
		gated.GET("total_revenue_resort_by_country", h.TotalRevenueResortByCountry)
		gated.GET("most_common_arrival_day_city", h.MostCommonArrivalDayCity)
		gated.GET("count_by_hotel_repeated_guest", h.CountByHotelRepeatedGuest)
	}

	b.GET("/:id", h.Get)
	b.DELETE("/:id", h.Delete)
}

// List handles GET /bookings with limit (default and cap 100) and
// offset (default 0) pagination over the persisted store.
func (h *Handler) List(c *gin.Context) {
	limit, offset := pageParams(c)

	bs, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bs)
}

// Create handles POST /bookings.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid booking payload")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Error(c, http.StatusConflict, "CONFLICT", "Booking id already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Get handles GET /bookings/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /bookings/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete booking")
		return
	}
	c.Status(http.StatusNoContent)
}

// Search handles GET /bookings/search. Every supplied parameter adds
// one predicate; with none supplied the full persisted set comes back.
func (h *Handler) Search(c *gin.Context) {
	var f repository.SearchFilters

	if v, ok := c.GetQuery("booking_date"); ok {
		f.BookingDate = &v
	}
	if v, ok := c.GetQuery("guest_name"); ok {
		f.GuestName = &v
	}
	if v, ok := c.GetQuery("length_of_stay"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "length_of_stay must be an integer")
			return
		}
		f.LengthOfStay = &n
	}
	if v, ok := c.GetQuery("daily_rate"); ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "daily_rate must be a number")
			return
		}
		f.DailyRate = &rate
	}

	bs, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search bookings")
		return
	}
	c.JSON(http.StatusOK, bs)
}

// ByNationality handles GET /bookings/nationality over the derived
// table rather than the persisted store.
func (h *Handler) ByNationality(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "country is required")
		return
	}
	limit, offset := pageParams(c)

	rows, err := h.service.ByNationality(country, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dataset")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset = 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
