package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// BookingRepository defines persistence operations for reservations.
type BookingRepository interface {
	// ListByUser returns every booking owned by the given user, oldest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// DeleteByVehicle removes all bookings referencing the vehicle and
	// returns how many were removed (cascade on vehicle deletion).
	DeleteByVehicle(ctx context.Context, vehicleID int64) (int64, error)
}
