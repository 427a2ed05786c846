package dataset

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is how derived dates are serialized.
const DateLayout = "2006-01-02"

// Derive computes length_of_stay, arrival_date and booking_date from
// the raw columns. Date derivation is lenient: when the year/month/day
// components do not form a valid calendar date the date fields stay
// empty and the row is kept, mirroring the source data's tolerance for
// inconsistent month representations.
func (r *Record) Derive() {
	r.LengthOfStay = r.StaysInWeekendNights + r.StaysInWeekNights

	month, ok := parseMonth(r.ArrivalDateMonth)
	if !ok || r.ArrivalDateYear <= 0 {
		return
	}

	arrival := time.Date(r.ArrivalDateYear, month, r.ArrivalDateDayOfMonth, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (e.g. February 30
	// becomes March 2); such rows do not have a valid arrival date.
	if arrival.Year() != r.ArrivalDateYear || arrival.Month() != month || arrival.Day() != r.ArrivalDateDayOfMonth {
		return
	}

	r.arrival = arrival
	r.ArrivalDate = arrival.Format(DateLayout)
	r.BookingDate = arrival.AddDate(0, 0, -r.LeadTime).Format(DateLayout)
}

// parseMonth accepts full month names ("July"), three-letter
// abbreviations ("Jul") in any case, and numeric months ("7", "07").
func parseMonth(s string) (time.Month, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return m, true
		}
	}
	return 0, false
}
