package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// VehicleService implements fleet catalog management.
type VehicleService struct {
	vehicles ports.VehicleRepository
	bookings ports.BookingRepository
	audit    ports.AuditTrail
	logger   zerolog.Logger
}

func NewVehicleService(vehicles ports.VehicleRepository, bookings ports.BookingRepository, audit ports.AuditTrail, logger zerolog.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, bookings: bookings, audit: audit, logger: logger}
}

func (s *VehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

// Create validates the candidate shape and persists it. The repository owns
// the plate-uniqueness check so a concurrent create cannot slip between a
// read and the insert.
func (s *VehicleService) Create(ctx context.Context, actorID int64, in ports.VehicleInput) (*domain.Vehicle, error) {
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}

	created, err := s.vehicles.Create(ctx, &domain.Vehicle{
		Make:  in.Make,
		Model: in.Model,
		Year:  in.Year,
		Plate: in.Plate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("vehicle_id", created.ID).Str("plate", created.Plate).Msg("vehicle created")
	s.recordAudit(actorID, domain.AuditActionCreate, created.ID)
	return created, nil
}

// Replace overwrites all fields of an existing vehicle. Full replacement
// semantics: there is no partial patch. The id must resolve before field
// constraints are checked, so a PUT on an absent id is a not-found even when
// the body is invalid.
func (s *VehicleService) Replace(ctx context.Context, actorID int64, id int64, in ports.VehicleInput) (*domain.Vehicle, error) {
	if _, err := s.vehicles.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}

	updated, err := s.vehicles.Replace(ctx, &domain.Vehicle{
		ID:    id,
		Make:  in.Make,
		Model: in.Model,
		Year:  in.Year,
		Plate: in.Plate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("vehicle_id", id).Msg("vehicle replaced")
	s.recordAudit(actorID, domain.AuditActionUpdate, id)
	return updated, nil
}

// Delete removes the vehicle and cascades removal of its bookings. The
// bookings go first so a failed cascade leaves the vehicle in place rather
// than orphaning bookings that reference a deleted vehicle.
func (s *VehicleService) Delete(ctx context.Context, actorID int64, id int64) error {
	if _, err := s.vehicles.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.bookings.DeleteByVehicle(ctx, id)
	if err != nil {
		return fmt.Errorf("cascade bookings for vehicle %d: %w", id, err)
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("vehicle_id", id).Int64("bookings_removed", removed).Msg("vehicle deleted")
	s.recordAudit(actorID, domain.AuditActionDelete, id)
	return nil
}

func (s *VehicleService) recordAudit(actorID int64, action string, vehicleID int64) {
	s.audit.Record(domain.AuditEntry{
		ActorID:   actorID,
		Action:    action,
		Entity:    domain.AuditEntityVehicle,
		EntityID:  vehicleID,
		Timestamp: time.Now().UTC(),
	})
}

func validateVehicleInput(in ports.VehicleInput) error {
	if strings.TrimSpace(in.Make) == "" || strings.TrimSpace(in.Model) == "" || strings.TrimSpace(in.Plate) == "" {
		return domain.ErrInvalidVehicle
	}
	if in.Year <= 0 {
		return domain.ErrInvalidVehicle
	}
	return nil
}
