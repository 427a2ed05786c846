package booking

import (
	"context"
	"errors"
	"strings"

	"hotelbookings/internal/dataset"
	"hotelbookings/internal/domain"
	"hotelbookings/internal/repository"
)

const (
	resortHotel = "Resort Hotel"
	cityHotel   = "City Hotel"
)

type Service struct {
	repo   Repository
	loader DatasetLoader
}

func NewService(repo Repository, loader DatasetLoader) *Service {
	return &Service{repo: repo, loader: loader}
}

/* ---------- PERSISTED STORE ---------- */

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{
		BookingDate:  req.BookingDate,
		LengthOfStay: req.LengthOfStay,
		GuestName:    req.GuestName,
		DailyRate:    req.DailyRate,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Search combines the supplied predicates with AND. With none supplied
// it returns the entire persisted set.
func (s *Service) Search(ctx context.Context, f repository.SearchFilters) ([]domain.Booking, error) {
	return s.repo.Search(ctx, f)
}

/* ---------- DATASET ANALYTICS ---------- */

// ByNationality returns the derived rows for one country, uppercased
// for the match, paginated in original row order.
func (s *Service) ByNationality(country string, limit, offset int) (dataset.Table, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	country = strings.ToUpper(country)
	matched := t.Filter(func(r *dataset.Record) bool { return r.Country == country })
	page := matched.Page(limit, offset)
	if page == nil {
		page = dataset.Table{}
	}
	return page, nil
}

// PopularMealPackage is the most frequent meal code over all bookings.
func (s *Service) PopularMealPackage() (string, error) {
	t, err := s.loader.Load()
	if err != nil {
		return "", err
	}
	return t.Mode(func(r *dataset.Record) string { return r.Meal }), nil
}

// TotalRevenue sums adr * length_of_stay per hotel type and arrival
// month.
func (s *Service) TotalRevenue() (map[string]map[string]float64, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	return t.GroupSum(
		func(r *dataset.Record) string { return r.Hotel },
		func(r *dataset.Record) string { return r.ArrivalDateMonth },
		(*dataset.Record).Revenue,
	), nil
}

// TopCountries ranks the five countries with the most bookings, keyed
// by rank starting at 1.
func (s *Service) TopCountries() (map[int]string, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	out := make(map[int]string)
	for i, vc := range t.TopN(func(r *dataset.Record) string { return r.Country }, 5) {
		out[i+1] = vc.Value
	}
	return out, nil
}

// AvgLengthOfStay averages the stay per hotel type and booking year,
// over non-canceled bookings with a resolved booking date.
func (s *Service) AvgLengthOfStay() (map[string]map[string]float64, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	kept := t.Filter(func(r *dataset.Record) bool {
		return r.IsCanceled == 0 && r.BookingYear() != ""
	})
	return kept.GroupMean(
		func(r *dataset.Record) string { return r.Hotel },
		func(r *dataset.Record) string { return r.BookingYear() },
		func(r *dataset.Record) float64 { return float64(r.LengthOfStay) },
	), nil
}

// RepeatedGuestsPercentage is the share of repeated guests among all
// bookings, rounded to two decimals. An empty dataset yields 0.
func (s *Service) RepeatedGuestsPercentage() (float64, error) {
	t, err := s.loader.Load()
	if err != nil {
		return 0, err
	}
	return t.Percentage(func(r *dataset.Record) bool { return r.IsRepeatedGuest == 1 }), nil
}

// TotalGuestsByYear sums adults+children+babies per booking year over
// non-canceled bookings.
func (s *Service) TotalGuestsByYear() (map[string]int, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	kept := t.Filter(func(r *dataset.Record) bool {
		return r.IsCanceled == 0 && r.BookingYear() != ""
	})
	sums := kept.SumBy(
		func(r *dataset.Record) string { return r.BookingYear() },
		func(r *dataset.Record) float64 { return float64(r.Guests()) },
	)

	out := make(map[string]int, len(sums))
	for year, g := range sums {
		out[year] = int(g)
	}
	return out, nil
}

// AvgDailyRateResort averages adr per arrival month for resort hotel
// bookings.
func (s *Service) AvgDailyRateResort() (map[string]float64, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	resort := t.Filter(func(r *dataset.Record) bool { return r.Hotel == resortHotel })
	return resort.MeanBy(
		func(r *dataset.Record) string { return r.ArrivalDateMonth },
		func(r *dataset.Record) float64 { return r.ADR },
	), nil
}

// CountByHotelMeal counts bookings per hotel type and meal package.
func (s *Service) CountByHotelMeal() (map[string]map[string]int, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	return t.GroupCount(
		func(r *dataset.Record) string { return r.Hotel },
		func(r *dataset.Record) string { return r.Meal },
	), nil
}

// TotalRevenueResortByCountry sums revenue per country for resort
// hotel bookings.
func (s *Service) TotalRevenueResortByCountry() (map[string]float64, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	resort := t.Filter(func(r *dataset.Record) bool { return r.Hotel == resortHotel })
	return resort.SumBy(
		func(r *dataset.Record) string { return r.Country },
		(*dataset.Record).Revenue,
	), nil
}

// MostCommonArrivalDayCity is the modal weekday (Monday=0) of city
// hotel arrivals. Rows without a resolved arrival date are skipped.
func (s *Service) MostCommonArrivalDayCity() (int, error) {
	t, err := s.loader.Load()
	if err != nil {
		return 0, err
	}

	city := t.Filter(func(r *dataset.Record) bool {
		return r.Hotel == cityHotel && r.HasArrivalDate()
	})
	day, _ := city.ModeInt((*dataset.Record).ArrivalWeekday)
	return day, nil
}

// CountByHotelRepeatedGuest counts bookings per hotel type and repeated
// guest flag ("0"/"1").
func (s *Service) CountByHotelRepeatedGuest() (map[string]map[string]int, error) {
	t, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	return t.GroupCount(
		func(r *dataset.Record) string { return r.Hotel },
		func(r *dataset.Record) string {
			if r.IsRepeatedGuest == 1 {
				return "1"
			}
			return "0"
		},
	), nil
}
