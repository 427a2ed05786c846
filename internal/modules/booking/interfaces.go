package booking

import (
	"context"

	"hotelbookings/internal/dataset"
	"hotelbookings/internal/domain"
	"hotelbookings/internal/repository"
)

// Repository is the persisted booking store consumed by the service.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f repository.SearchFilters) ([]domain.Booking, error)
}

// DatasetLoader produces a freshly derived table for each call; the
// analytics endpoints never share a table between requests.
type DatasetLoader interface {
	Load() (dataset.Table, error)
}
