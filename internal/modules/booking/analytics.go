package booking

import (
	"net/http"

	"hotelbookings/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Analytics handlers. Every request loads and derives the dataset from
// scratch; a failed load is terminal for the request.

func (h *Handler) PopularMealPackage(c *gin.Context) {
	meal, err := h.service.PopularMealPackage()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"popular_meal_package": meal})
}

func (h *Handler) TotalRevenue(c *gin.Context) {
	data, err := h.service.TotalRevenue()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) TopCountries(c *gin.Context) {
	data, err := h.service.TopCountries()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) AvgLengthOfStay(c *gin.Context) {
	data, err := h.service.AvgLengthOfStay()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) RepeatedGuestsPercentage(c *gin.Context) {
	pct, err := h.service.RepeatedGuestsPercentage()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"percentage_of_repeated_guests": pct})
}

func (h *Handler) TotalGuestsByYear(c *gin.Context) {
	data, err := h.service.TotalGuestsByYear()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) AvgDailyRateResort(c *gin.Context) {
	data, err := h.service.AvgDailyRateResort()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) CountByHotelMeal(c *gin.Context) {
	data, err := h.service.CountByHotelMeal()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) TotalRevenueResortByCountry(c *gin.Context) {
	data, err := h.service.TotalRevenueResortByCountry()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) MostCommonArrivalDayCity(c *gin.Context) {
	day, err := h.service.MostCommonArrivalDayCity()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"most_common_arrival_day_city": day})
}

func (h *Handler) CountByHotelRepeatedGuest(c *gin.Context) {
	data, err := h.service.CountByHotelRepeatedGuest()
	if err != nil {
		datasetError(c)
		return
	}
	c.JSON(http.StatusOK, data)
}

func datasetError(c *gin.Context) {
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dataset")
}
