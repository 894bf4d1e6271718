package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubVehicleRepo struct {
	vehicles map[int64]*domain.Vehicle
	nextID   int64
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[int64]*domain.Vehicle)}
}

func cloneVehicle(v *domain.Vehicle) *domain.Vehicle {
	clone := *v
	return &clone
}

func (r *stubVehicleRepo) List(_ context.Context) ([]*domain.Vehicle, error) {
	out := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, cloneVehicle(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	return cloneVehicle(v), nil
}

// Create enforces plate uniqueness the way the real Mongo index would.
func (r *stubVehicleRepo) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	for _, existing := range r.vehicles {
		if existing.Plate == v.Plate {
			return nil, domain.ErrPlateTaken
		}
	}
	r.nextID++
	clone := cloneVehicle(v)
	clone.ID = r.nextID
	r.vehicles[clone.ID] = cloneVehicle(clone)
	return clone, nil
}

func (r *stubVehicleRepo) Replace(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if _, ok := r.vehicles[v.ID]; !ok {
		return nil, domain.ErrVehicleNotFound
	}
	for id, existing := range r.vehicles {
		if id != v.ID && existing.Plate == v.Plate {
			return nil, domain.ErrPlateTaken
		}
	}
	r.vehicles[v.ID] = cloneVehicle(v)
	return cloneVehicle(v), nil
}

func (r *stubVehicleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

type stubBookingRepo struct {
	bookings  map[int64]*domain.Booking
	nextID    int64
	deleteErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	stored := clone
	r.bookings[clone.ID] = &stored
	return &clone, nil
}

func (r *stubBookingRepo) DeleteByVehicle(_ context.Context, vehicleID int64) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var removed int64
	for id, b := range r.bookings {
		if b.VehicleID == vehicleID {
			delete(r.bookings, id)
			removed++
		}
	}
	return removed, nil
}

// stubAuditTrail records entries synchronously for assertions.
type stubAuditTrail struct {
	entries []domain.AuditEntry
}

func (a *stubAuditTrail) Record(entry domain.AuditEntry) {
	a.entries = append(a.entries, entry)
}

func newVehicleService(vehicles *stubVehicleRepo, bookings *stubBookingRepo, audit *stubAuditTrail) *VehicleService {
	return NewVehicleService(vehicles, bookings, audit, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestVehicleService_Create_Success(t *testing.T) {
	repo := newStubVehicleRepo()
	audit := &stubAuditTrail{}
	svc := newVehicleService(repo, newStubBookingRepo(), audit)

	created, err := svc.Create(context.Background(), 7, ports.VehicleInput{
		Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if created.Plate != "ABC-123" {
		t.Fatalf("unexpected plate: %s", created.Plate)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.ActorID != 7 || entry.Action != domain.AuditActionCreate || entry.Entity != domain.AuditEntityVehicle {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestVehicleService_Create_InvalidInput(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), newStubBookingRepo(), &stubAuditTrail{})

	cases := []ports.VehicleInput{
		{Make: "", Model: "Civic", Year: 2021, Plate: "XYZ-789"},
		{Make: "Honda", Model: "", Year: 2021, Plate: "XYZ-789"},
		{Make: "Honda", Model: "Civic", Year: 0, Plate: "XYZ-789"},
		{Make: "Honda", Model: "Civic", Year: -3, Plate: "XYZ-789"},
		{Make: "Honda", Model: "Civic", Year: 2021, Plate: ""},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), 1, in); !errors.Is(err, domain.ErrInvalidVehicle) {
			t.Fatalf("input %+v: expected ErrInvalidVehicle, got %v", in, err)
		}
	}
}

func TestVehicleService_Create_DuplicatePlate(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, newStubBookingRepo(), &stubAuditTrail{})

	if _, err := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Honda", Model: "Civic", Year: 2021, Plate: "ABC-123"}); !errors.Is(err, domain.ErrPlateTaken) {
		t.Fatalf("expected ErrPlateTaken, got %v", err)
	}
}

func TestVehicleService_Replace_FullReplacement(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, newStubBookingRepo(), &stubAuditTrail{})

	created, _ := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"})

	updated, err := svc.Replace(context.Background(), 1, created.ID, ports.VehicleInput{Make: "Toyota", Model: "Corolla", Year: 2022, Plate: "ABC-123"})
	if err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	if updated.Model != "Corolla" {
		t.Fatalf("expected model Corolla, got %s", updated.Model)
	}
	// Keeping its own plate is not a conflict.
	if updated.Plate != "ABC-123" {
		t.Fatalf("unexpected plate: %s", updated.Plate)
	}
}

func TestVehicleService_Replace_NotFound(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), newStubBookingRepo(), &stubAuditTrail{})

	if _, err := svc.Replace(context.Background(), 1, 999, ports.VehicleInput{Make: "Toyota", Model: "Corolla", Year: 2022, Plate: "ABC-123"}); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

// An absent id is reported before field constraints, so a replace of a
// missing vehicle with an invalid body is a not-found, never a validation
// failure.
func TestVehicleService_Replace_NotFoundBeforeValidation(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), newStubBookingRepo(), &stubAuditTrail{})

	if _, err := svc.Replace(context.Background(), 1, 999, ports.VehicleInput{}); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestVehicleService_Replace_PlateHeldByOther(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, newStubBookingRepo(), &stubAuditTrail{})

	_, _ = svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"})
	second, _ := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Honda", Model: "Civic", Year: 2021, Plate: "XYZ-789"})

	if _, err := svc.Replace(context.Background(), 1, second.ID, ports.VehicleInput{Make: "Honda", Model: "Civic", Year: 2021, Plate: "ABC-123"}); !errors.Is(err, domain.ErrPlateTaken) {
		t.Fatalf("expected ErrPlateTaken, got %v", err)
	}
}

func TestVehicleService_Delete_CascadesBookings(t *testing.T) {
	vehicles := newStubVehicleRepo()
	bookings := newStubBookingRepo()
	audit := &stubAuditTrail{}
	svc := newVehicleService(vehicles, bookings, audit)

	created, _ := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"})
	_, _ = bookings.Create(context.Background(), &domain.Booking{VehicleID: created.ID, UserID: 42})
	_, _ = bookings.Create(context.Background(), &domain.Booking{VehicleID: created.ID, UserID: 43})

	if err := svc.Delete(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := vehicles.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("vehicle still present after delete")
	}
	left, _ := bookings.ListByUser(context.Background(), 42)
	if len(left) != 0 {
		t.Fatalf("expected cascade to remove bookings, %d left", len(left))
	}
	left, _ = bookings.ListByUser(context.Background(), 43)
	if len(left) != 0 {
		t.Fatalf("expected cascade to remove bookings, %d left", len(left))
	}
}

// The cascade runs before the vehicle row is removed, so a cascade failure
// leaves the vehicle (and nothing orphaned) behind.
func TestVehicleService_Delete_CascadeFailureKeepsVehicle(t *testing.T) {
	vehicles := newStubVehicleRepo()
	bookings := newStubBookingRepo()
	svc := newVehicleService(vehicles, bookings, &stubAuditTrail{})

	created, _ := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"})
	bookings.deleteErr = errors.New("write concern error")

	if err := svc.Delete(context.Background(), 1, created.ID); err == nil {
		t.Fatalf("expected cascade error")
	}
	if _, err := vehicles.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("vehicle should survive a failed cascade: %v", err)
	}
}

func TestVehicleService_Delete_NotFound(t *testing.T) {
	svc := newVehicleService(newStubVehicleRepo(), newStubBookingRepo(), &stubAuditTrail{})

	if err := svc.Delete(context.Background(), 1, 999); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestVehicleService_Get_Idempotent(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := newVehicleService(repo, newStubBookingRepo(), &stubAuditTrail{})

	created, _ := svc.Create(context.Background(), 1, ports.VehicleInput{Make: "Toyota", Model: "Camry", Year: 2022, Plate: "ABC-123"})

	first, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first get failed: %v", err)
	}
	second, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("second get failed: %v", err)
	}
	if *first != *second {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
}
