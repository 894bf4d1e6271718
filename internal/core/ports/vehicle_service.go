package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// VehicleInput carries the full candidate shape for create and replace.
// Update semantics are full replacement: every field is required, there is
// no partial patch.
type VehicleInput struct {
	Make  string
	Model string
	Year  int
	Plate string
}

// VehicleService defines use-case operations for fleet management.
// Authorization (staff only) is enforced at the transport layer; the service
// assumes an already-authorized actor and only needs its id for auditing.
type VehicleService interface {
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, actorID int64, in VehicleInput) (*domain.Vehicle, error)
	Replace(ctx context.Context, actorID int64, id int64, in VehicleInput) (*domain.Vehicle, error)
	// Delete removes the vehicle and cascades removal of its bookings.
	Delete(ctx context.Context, actorID int64, id int64) error
}
