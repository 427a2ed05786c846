package repository

import (
	"context"
	"errors"

	"hotelbookings/internal/dataset"
	"hotelbookings/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned for lookups and deletes of absent ids.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate is returned when an insert collides with an existing
	// id (possible on PostgreSQL after seeding with explicit ids).
	ErrDuplicate = errors.New("booking already exists")
)

// MaxPageSize caps list pagination.
const MaxPageSize = 100

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	BookingDate  string  `gorm:"column:booking_date"`
	LengthOfStay int     `gorm:"column:length_of_stay"`
	GuestName    string  `gorm:"column:guest_name"`
	DailyRate    float64 `gorm:"column:daily_rate"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:           m.ID,
		BookingDate:  m.BookingDate,
		LengthOfStay: m.LengthOfStay,
		GuestName:    m.GuestName,
		DailyRate:    m.DailyRate,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:           b.ID,
		BookingDate:  b.BookingDate,
		LengthOfStay: b.LengthOfStay,
		GuestName:    b.GuestName,
		DailyRate:    b.DailyRate,
	}
}

// AutoMigrate creates or updates the bookings table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&bookingModel{})
}

// List returns bookings in storage (id) order. The limit is clamped to
// MaxPageSize; an out-of-range offset yields an empty slice.
func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// Create persists b and writes the assigned id back into it.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchFilters are the optional predicates of a search. Nil fields are
// not applied; the rest combine with AND. String fields match as SQL
// LIKE patterns, numeric fields by equality.
type SearchFilters struct {
	BookingDate  *string
	LengthOfStay *int
	GuestName    *string
	DailyRate    *float64
}

// Search returns all bookings matching the supplied predicates, in
// storage order. With no predicates it returns the entire table.
func (r *BookingRepository) Search(ctx context.Context, f SearchFilters) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.BookingDate != nil {
		q = q.Where("booking_date LIKE ?", *f.BookingDate)
	}
	if f.GuestName != nil {
		q = q.Where("guest_name LIKE ?", *f.GuestName)
	}
	if f.LengthOfStay != nil {
		q = q.Where("length_of_stay = ?", *f.LengthOfStay)
	}
	if f.DailyRate != nil {
		q = q.Where("daily_rate = ?", *f.DailyRate)
	}

	var ms []bookingModel
	if tx := q.Order("id").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&n)
	return n, tx.Error
}

// Reset removes all persisted bookings.
func (r *BookingRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM bookings").Error
}

// BulkImport seeds one booking per dataset row: guest_name from the
// guest name column, daily_rate from adr, booking_date as the raw
// year-month-day concatenation, id equal to the 1-based row position.
func (r *BookingRepository) BulkImport(ctx context.Context, rows dataset.Table) error {
	if len(rows) == 0 {
		return nil
	}

	ms := make([]bookingModel, 0, len(rows))
	for i := range rows {
		ms = append(ms, bookingModel{
			ID:           int64(i) + 1,
			BookingDate:  rows[i].RawBookingDate(),
			LengthOfStay: rows[i].StaysInWeekendNights + rows[i].StaysInWeekNights,
			GuestName:    rows[i].Name,
			DailyRate:    rows[i].ADR,
		})
	}
	return r.db.WithContext(ctx).CreateInBatches(ms, 500).Error
}
