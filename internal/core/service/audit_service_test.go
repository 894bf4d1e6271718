package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

type stubAuditRepo struct {
	inserted  []domain.AuditEntry
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *entry)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	entry := domain.AuditEntry{
		ActorID:   1,
		Action:    domain.AuditActionDelete,
		Entity:    domain.AuditEntityVehicle,
		EntityID:  9,
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), entry); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].EntityID != 9 {
		t.Fatalf("entry not persisted: %+v", repo.inserted)
	}
}

func TestAuditService_Process_InsertFails(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewAuditService(&stubAuditRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuditEntry{EntityID: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}
