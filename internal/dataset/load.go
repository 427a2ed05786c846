package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Loader reads the raw dataset from a CSV file. Every Load call parses
// the file from scratch; nothing is cached between requests.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load() (Table, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", l.path, err)
	}
	return t, nil
}

// Read parses CSV data into a derived table. Columns are resolved by
// header name, so column order and extra columns do not matter; missing
// columns read as zero values. Numeric cells that do not parse (e.g.
// "NA" children or "NULL" agents) read as zero rather than failing.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var t Table
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}

		row := rowReader{cells: cells, idx: idx}
		rec := Record{
			Hotel:                       row.str("hotel"),
			IsCanceled:                  row.num("is_canceled"),
			LeadTime:                    row.num("lead_time"),
			ArrivalDateYear:             row.num("arrival_date_year"),
			ArrivalDateMonth:            row.str("arrival_date_month"),
			ArrivalDateDayOfMonth:       row.num("arrival_date_day_of_month"),
			ArrivalDateWeekNumber:       row.num("arrival_date_week_number"),
			StaysInWeekendNights:        row.num("stays_in_weekend_nights"),
			StaysInWeekNights:           row.num("stays_in_week_nights"),
			Adults:                      row.num("adults"),
			Children:                    row.num("children"),
			Babies:                      row.num("babies"),
			Meal:                        row.str("meal"),
			Country:                     row.str("country"),
			MarketSegment:               row.str("market_segment"),
			DistributionChannel:         row.str("distribution_channel"),
			IsRepeatedGuest:             row.num("is_repeated_guest"),
			PreviousCancellations:       row.num("previous_cancellations"),
			PreviousBookingsNotCanceled: row.num("previous_bookings_not_canceled"),
			ReservedRoomType:            row.str("reserved_room_type"),
			AssignedRoomType:            row.str("assigned_room_type"),
			BookingChanges:              row.num("booking_changes"),
			DepositType:                 row.str("deposit_type"),
			Agent:                       row.str("agent"),
			Company:                     row.str("company"),
			DaysInWaitingList:           row.num("days_in_waiting_list"),
			CustomerType:                row.str("customer_type"),
			ADR:                         row.float("adr"),
			RequiredCarParkingSpaces:    row.num("required_car_parking_spaces"),
			TotalOfSpecialRequests:      row.num("total_of_special_requests"),
			ReservationStatus:           row.str("reservation_status"),
			ReservationStatusDate:       row.str("reservation_status_date"),
			Name:                        row.str("name"),
			Email:                       row.str("email"),
			PhoneNumber:                 row.first("phone-number", "phone_number"),
			CreditCard:                  row.str("credit_card"),
		}
		rec.Derive()
		t = append(t, rec)
	}
	return t, nil
}

type rowReader struct {
	cells []string
	idx   map[string]int
}

func (r rowReader) str(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// first returns the first of the named columns that exists in the file.
// The source data ships the phone column as "phone-number".
func (r rowReader) first(cols ...string) string {
	for _, col := range cols {
		if _, ok := r.idx[col]; ok {
			return r.str(col)
		}
	}
	return ""
}

func (r rowReader) num(col string) int {
	n, _ := strconv.Atoi(r.str(col))
	return n
}

func (r rowReader) float(col string) float64 {
	v, _ := strconv.ParseFloat(r.str(col), 64)
	return v
}
