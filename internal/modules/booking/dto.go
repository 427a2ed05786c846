package booking

// CreateBookingRequest carries the fields of a create call. The binding
// tags enforce the persisted schema: an ISO-like date of at least 10
// characters, a non-negative stay, a guest name of at least 3
// characters and a non-negative rate.
type CreateBookingRequest struct {
	BookingDate  string  `json:"booking_date" binding:"required,min=10"`
	LengthOfStay int     `json:"length_of_stay" binding:"gte=0"`
	GuestName    string  `json:"guest_name" binding:"required,min=3"`
	DailyRate    float64 `json:"daily_rate" binding:"gte=0"`
}
