package dataset

import (
	"strconv"
	"time"
)

// Record is one row of the hotel bookings CSV plus the fields derived
// from it. Raw columns that only feed the derivation are kept for the
// seed importer but dropped from JSON output, matching the shape the
// nationality endpoint serves.
type Record struct {
	Hotel                       string  `json:"hotel"`
	IsCanceled                  int     `json:"is_canceled"`
	LeadTime                    int     `json:"lead_time"`
	ArrivalDateYear             int     `json:"arrival_date_year"`
	ArrivalDateMonth            string  `json:"arrival_date_month"`
	ArrivalDateDayOfMonth       int     `json:"-"`
	ArrivalDateWeekNumber       int     `json:"-"`
	StaysInWeekendNights        int     `json:"-"`
	StaysInWeekNights           int     `json:"-"`
	Adults                      int     `json:"adults"`
	Children                    int     `json:"children"`
	Babies                      int     `json:"babies"`
	Meal                        string  `json:"meal"`
	Country                     string  `json:"country"`
	MarketSegment               string  `json:"market_segment"`
	DistributionChannel         string  `json:"distribution_channel"`
	IsRepeatedGuest             int     `json:"is_repeated_guest"`
	PreviousCancellations       int     `json:"previous_cancellations"`
	PreviousBookingsNotCanceled int     `json:"previous_bookings_not_canceled"`
	ReservedRoomType            string  `json:"reserved_room_type"`
	AssignedRoomType            string  `json:"assigned_room_type"`
	BookingChanges              int     `json:"booking_changes"`
	DepositType                 string  `json:"deposit_type"`
	Agent                       string  `json:"agent"`
	Company                     string  `json:"company"`
	DaysInWaitingList           int     `json:"days_in_waiting_list"`
	CustomerType                string  `json:"customer_type"`
	ADR                         float64 `json:"adr"`
	RequiredCarParkingSpaces    int     `json:"required_car_parking_spaces"`
	TotalOfSpecialRequests      int     `json:"total_of_special_requests"`
	ReservationStatus           string  `json:"reservation_status"`
	ReservationStatusDate       string  `json:"reservation_status_date"`
	Name                        string  `json:"name"`
	Email                       string  `json:"email"`
	PhoneNumber                 string  `json:"phone_number"`
	CreditCard                  string  `json:"credit_card"`

	// Derived fields, see derive.go.
	ArrivalDate  string `json:"arrival_date"`
	BookingDate  string `json:"booking_date"`
	LengthOfStay int    `json:"length_of_stay"`

	// Parsed arrival date; zero when the raw components did not resolve.
	arrival time.Time
}

// HasArrivalDate reports whether the raw year/month/day resolved to a
// valid calendar date.
func (r *Record) HasArrivalDate() bool { return !r.arrival.IsZero() }

// ArrivalWeekday returns the weekday index of the arrival date with
// Monday = 0. Only meaningful when HasArrivalDate.
func (r *Record) ArrivalWeekday() int {
	return (int(r.arrival.Weekday()) + 6) % 7
}

// BookingYear returns the four-digit year of the derived booking date,
// or "" when the date did not resolve.
func (r *Record) BookingYear() string {
	if len(r.BookingDate) < 4 {
		return ""
	}
	return r.BookingDate[:4]
}

// Revenue is the daily rate over the whole stay.
func (r *Record) Revenue() float64 { return r.ADR * float64(r.LengthOfStay) }

// Guests is the total occupant count of the booking.
func (r *Record) Guests() int { return r.Adults + r.Children + r.Babies }

// RawBookingDate is the unnormalized year-month-day concatenation the
// seed importer persists, e.g. "2015-July-1".
func (r *Record) RawBookingDate() string {
	return strconv.Itoa(r.ArrivalDateYear) + "-" + r.ArrivalDateMonth + "-" + strconv.Itoa(r.ArrivalDateDayOfMonth)
}
