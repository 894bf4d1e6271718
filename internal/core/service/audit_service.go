package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries to the
// audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit entry. Failures are returned to the
// dispatcher, which logs them without retrying.
func (s *auditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("process audit entry: %w", err)
	}

	s.log.Debug().
		Int64("actor_id", entry.ActorID).
		Str("entity", entry.Entity).
		Str("action", entry.Action).
		Int64("entity_id", entry.EntityID).
		Msg("audit entry recorded")

	return nil
}
