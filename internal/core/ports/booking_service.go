package ports

import (
	"context"
	"time"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// CreateBookingInput carries a reservation candidate. UserID is the
// authenticated caller's identity, never client input.
type CreateBookingInput struct {
	UserID        int64
	VehicleID     int64
	StartDatetime time.Time
	EndDatetime   time.Time
}

// BookingService defines use-case operations for reservations.
type BookingService interface {
	// ListOwn returns only bookings owned by the given user, regardless of role.
	ListOwn(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
}
