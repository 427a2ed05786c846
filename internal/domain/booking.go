package domain

// Booking is the persisted subset of a raw dataset row. Records are
// created at seed time (one per CSV row) or through the create endpoint
// and are only ever removed, never updated.
type Booking struct {
	ID           int64   `json:"id"`
	BookingDate  string  `json:"booking_date"`
	LengthOfStay int     `json:"length_of_stay"`
	GuestName    string  `json:"guest_name"`
	DailyRate    float64 `json:"daily_rate"`
}
