package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// BookingService implements reservation listing and creation.
type BookingService struct {
	bookings ports.BookingRepository
	vehicles ports.VehicleRepository
	audit    ports.AuditTrail
	logger   zerolog.Logger
}

func NewBookingService(bookings ports.BookingRepository, vehicles ports.VehicleRepository, audit ports.AuditTrail, logger zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, vehicles: vehicles, audit: audit, logger: logger}
}

// ListOwn returns only the caller's bookings. Staff get no wider view here:
// the reservation list is scoped to its owner regardless of role.
func (s *BookingService) ListOwn(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// Create validates the reservation window and the vehicle reference, then
// persists the booking with the caller as owner. A vehicle id that does not
// exist is a field-validation failure, not a not-found on the booking.
//
// Overlapping reservations on the same vehicle are not rejected; that is a
// known scope limitation of the current behavior.
func (s *BookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if err := domain.ValidatePeriod(in.StartDatetime, in.EndDatetime); err != nil {
		return nil, err
	}

	if _, err := s.vehicles.FindByID(ctx, in.VehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, domain.ErrUnknownVehicle
		}
		return nil, fmt.Errorf("check vehicle %d: %w", in.VehicleID, err)
	}

	created, err := s.bookings.Create(ctx, &domain.Booking{
		VehicleID:     in.VehicleID,
		UserID:        in.UserID,
		StartDatetime: in.StartDatetime.UTC(),
		EndDatetime:   in.EndDatetime.UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", created.ID).
		Int64("vehicle_id", created.VehicleID).
		Int64("user_id", created.UserID).
		Msg("booking created")

	s.audit.Record(domain.AuditEntry{
		ActorID:   in.UserID,
		Action:    domain.AuditActionCreate,
		Entity:    domain.AuditEntityBooking,
		EntityID:  created.ID,
		Timestamp: time.Now().UTC(),
	})

	return created, nil
}
