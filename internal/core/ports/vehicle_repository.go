package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// VehicleRepository defines persistence operations for the fleet catalog.
// Plate uniqueness is the repository's responsibility: Create and Replace
// must fail with domain.ErrPlateTaken when another vehicle already holds the
// plate, checked at write time (a concurrent writer may race a prior read).
type VehicleRepository interface {
	List(ctx context.Context) ([]*domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	// Replace overwrites every field of the vehicle with the given id.
	// Returns domain.ErrVehicleNotFound when the id does not exist.
	Replace(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}
